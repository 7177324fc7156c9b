// Package testutil provides shared helpers for integration tests. Helpers skip
// the calling test when TEST_DATABASE_URL is not set.
package testutil

import (
	"context"
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"voyage/internal/infra"
)

var (
	migrateOnce sync.Once
	migrateErr  error
)

// NewTx returns a gorm handle bound to a transaction that is rolled back when
// the test finishes. Migrations are applied once per test binary.
func NewTx(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("testutil.NewTx: open: %v", err)
	}
	t.Cleanup(func() { infra.ClosePostgresql(db) })

	migrateOnce.Do(func() {
		migrateErr = infra.RunMigrations(context.Background(), db)
	})
	if migrateErr != nil {
		t.Fatalf("testutil.NewTx: migrate: %v", migrateErr)
	}

	tx := db.Begin()
	if tx.Error != nil {
		t.Fatalf("testutil.NewTx: begin: %v", tx.Error)
	}
	t.Cleanup(func() { tx.Rollback() })

	return tx
}
