package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"studiosync/internal/app"
	"studiosync/internal/repository"
	"studiosync/internal/testutil"
	"studiosync/internal/transport/http/middleware"
	"studiosync/internal/transport/http/response"
)

const testJWTSecret = "handler-test-secret"

// newTestRouter wires the v1 routes the way the server does, backed by an
// in-memory database and without cache or broker.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)

	userRepo := repository.NewUserRepository(db)
	authService := app.NewAuthService(userRepo, testJWTSecret, time.Hour)
	syncService := app.NewSyncService(
		repository.NewTopicRepository(db),
		repository.NewSettingRepository(db),
		repository.NewAssistantRepository(db),
		repository.NewKnowledgeRepository(db),
		repository.NewFileRepository(db),
		nil,
		nil,
	)

	authHandler := NewAuthHandler(authService)
	syncHandler := NewSyncHandler(syncService)
	authRequired := middleware.AuthJWT(testJWTSecret, userRepo)

	router := gin.New()
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

type envelope struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Data    json.RawMessage    `json:"data"`
	Error   *response.APIError `json:"error"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

// registerUser registers through the API and returns the issued token.
func registerUser(t *testing.T, router *gin.Engine, email, username string) string {
	t.Helper()
	status, env := doJSON(t, router, http.MethodPost, "/v1/auth/register", "", gin.H{
		"email":    email,
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, status)
	require.True(t, env.Success)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}
