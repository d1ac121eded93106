package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"studiosync/internal/model"
)

var dbSeq atomic.Int64

// NewDB opens a fresh in-memory database with the full schema migrated.
// Every call gets its own uniquely named database, so tests stay independent
// while the connection pool still sees one shared store.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Topic{},
		&model.Setting{},
		&model.Assistant{},
		&model.KnowledgeBase{},
		&model.KnowledgeNote{},
		&model.File{},
		&model.SyncLog{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	return db
}
