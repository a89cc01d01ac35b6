// Package testutil provides store fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/metrics"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewSQLite opens a private, migrated in-memory sqlite database with foreign
// keys enforced. It is closed when the test ends.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := config.Config{
		DBDriver:    "sqlite",
		DatabaseDSN: fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()),
	}
	db, err := database.Open(cfg, metrics.New())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
