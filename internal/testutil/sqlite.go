// Package testutil holds helpers shared by package and integration tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/akeren/waitlist-api/internal/database"
	"github.com/akeren/waitlist-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteHandle opens a private in-memory database with every model migrated.
// It is closed when the test ends.
func NewSQLiteHandle(t testing.TB) database.Handle {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite pool: %v", err)
	}
	// One connection keeps the shared in-memory database alive and serialises writers.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(models.ModelRegistry...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })

	return database.Connected(db)
}

// SeedWaitlist inserts entries as given; zero fields are filled by model hooks.
func SeedWaitlist(t testing.TB, handle database.Handle, entries ...*models.WaitlistEntry) {
	t.Helper()

	if len(entries) == 0 {
		return
	}
	if err := handle.Raw().Create(entries).Error; err != nil {
		t.Fatalf("seed waitlist: %v", err)
	}
}

func SeedFeatureRequests(t testing.TB, handle database.Handle, requests ...*models.FeatureRequest) {
	t.Helper()

	if len(requests) == 0 {
		return
	}
	if err := handle.Raw().Create(requests).Error; err != nil {
		t.Fatalf("seed feature requests: %v", err)
	}
}

func StringPtr(s string) *string {
	return &s
}
