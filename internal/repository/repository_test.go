package repository

import (
	"os"
	"testing"

	"github.com/fadilmartias/job-intel/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with the pipeline's
// tables migrated. A single connection keeps every query on the same memory DB.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

// newPostgresTestDB connects to the database named by TEST_DATABASE_URL and
// empties the quota table. Tests are skipped when it is unset.
func newPostgresTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Migrate(db))
	require.NoError(t, db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.QuotaCounter{}).Error)
	return db
}

func findCounter(t *testing.T, db *gorm.DB, userID, feature string) model.QuotaCounter {
	t.Helper()
	var counter model.QuotaCounter
	require.NoError(t, db.First(&counter, "user_id = ? AND feature = ?", userID, feature).Error)
	return counter
}
