package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "studiosync/internal/app"
	"studiosync/internal/bootstrap"
	"studiosync/internal/cache"
	"studiosync/internal/platform/rabbitmq"
	"studiosync/internal/repository"
	"studiosync/internal/transport/http/handler"
	"studiosync/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	// The whole sync API is opt-in; a disabled deployment still answers
	// health checks.
	if !app.Config.Sync.Enabled {
		return router
	}

	userRepo := repository.NewUserRepository(app.MySQL)
	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireHour)*time.Hour,
	)

	snapshotCache := cache.NewSnapshotCache(
		app.Redis,
		time.Duration(app.Config.Redis.SnapshotTTLSeconds)*time.Second,
	)
	eventPublisher := rabbitmq.NewSyncEventPublisher(app.MQConn, app.Config.RabbitMQ.SyncAuditQueue)
	syncService := appsvc.NewSyncService(
		repository.NewTopicRepository(app.MySQL),
		repository.NewSettingRepository(app.MySQL),
		repository.NewAssistantRepository(app.MySQL),
		repository.NewKnowledgeRepository(app.MySQL),
		repository.NewFileRepository(app.MySQL),
		snapshotCache,
		eventPublisher,
	)

	authHandler := handler.NewAuthHandler(authService)
	syncHandler := handler.NewSyncHandler(syncService)
	authRequired := middleware.AuthJWT(app.Config.Auth.JWTSecret, userRepo)

	v1 := router.Group("/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authRequired, authHandler.Me)
	authGroup.PUT("/profile", authRequired, authHandler.UpdateProfile)
	authGroup.POST("/password", authRequired, authHandler.ChangePassword)

	syncGroup := v1.Group("/sync")
	syncGroup.Use(authRequired)
	syncGroup.GET("/topics", syncHandler.GetTopics)
	syncGroup.POST("/topics", syncHandler.SyncTopics)
	syncGroup.GET("/settings", syncHandler.GetSettings)
	syncGroup.POST("/settings", syncHandler.SyncSettings)
	syncGroup.GET("/assistants", syncHandler.GetAssistants)
	syncGroup.POST("/assistants", syncHandler.SyncAssistants)
	syncGroup.GET("/knowledge", syncHandler.GetKnowledge)
	syncGroup.POST("/knowledge", syncHandler.SyncKnowledge)
	syncGroup.GET("/files", syncHandler.GetFiles)
	syncGroup.POST("/files", syncHandler.SyncFiles)
	syncGroup.POST("/all", syncHandler.SyncAll)

	return router
}
