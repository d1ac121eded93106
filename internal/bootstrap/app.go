package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"studiosync/internal/config"
	"studiosync/internal/model"
	mysqlClient "studiosync/internal/platform/mysql"
	rabbitmqClient "studiosync/internal/platform/rabbitmq"
	redisClient "studiosync/internal/platform/redis"
	"studiosync/internal/repository"
	"studiosync/internal/worker"
)

type App struct {
	Config      *config.Config
	MySQL       *gorm.DB
	Redis       *redis.Client
	MQConn      *amqp.Connection
	AuditWorker *worker.SyncAuditWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN(), cfg.MySQL.ConnectionLimit)
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(
		&model.User{},
		&model.Topic{},
		&model.Setting{},
		&model.Assistant{},
		&model.KnowledgeBase{},
		&model.KnowledgeNote{},
		&model.File{},
		&model.SyncLog{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	syncLogRepo := repository.NewSyncLogRepository(mysqlDB)
	auditWorker := worker.NewSyncAuditWorker(mqConn, syncLogRepo, cfg.RabbitMQ.SyncAuditQueue)
	if err := auditWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start sync audit worker failed: %w", err)
	}

	return &App{
		Config:      cfg,
		MySQL:       mysqlDB,
		Redis:       redisCli,
		MQConn:      mqConn,
		AuditWorker: auditWorker,
		StartedAt:   time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.AuditWorker != nil {
		a.AuditWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
