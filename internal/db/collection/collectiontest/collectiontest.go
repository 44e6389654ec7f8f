// Package collectiontest provides an in-memory account database for tests.
package collectiontest

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GhostNetwork/account/internal/db/collection"
)

// New creates a migrated in-memory SQLite database and returns its Accessor.
// The pool is limited to one connection so every statement sees the same memory database.
func New(t *testing.T) *collection.Accessor {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	acc := collection.FromDB(db)
	require.NoError(t, acc.Migrate(context.Background()), "failed to migrate test database")

	t.Cleanup(func() {
		_ = acc.Close()
	})

	return acc
}
