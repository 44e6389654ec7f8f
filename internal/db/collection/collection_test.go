package collection_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GhostNetwork/account/internal/db/collection"
	"github.com/GhostNetwork/account/internal/db/collection/collectiontest"
	"github.com/GhostNetwork/account/internal/db/models"
)

func TestMigrateCreatesEveryCollection(t *testing.T) {
	acc := collectiontest.New(t)

	db, err := acc.DB(context.Background())
	require.NoError(t, err)

	for _, name := range []string{
		collection.Users,
		collection.Roles,
		collection.UserClaims,
		collection.RoleClaims,
		collection.UserLogins,
		collection.UserTokens,
		collection.UserRoles,
		collection.Clients,
	} {
		assert.True(t, db.Migrator().HasTable(name), "collection %s missing", name)
	}
}

func TestLazyOpen(t *testing.T) {
	acc := collection.New(
		sqlite.Open(filepath.Join(t.TempDir(), "account.db")),
		collection.WithLogger(gormlogger.Discard),
		collection.WithAutoMigrate(true),
	)
	t.Cleanup(func() { _ = acc.Close() })

	c, err := acc.Collection(context.Background(), collection.Roles)
	require.NoError(t, err)
	require.NoError(t, c.Create(&models.Role{ID: "r1", Name: "Admin", NormalizedName: "ADMIN"}).Error)

	first, err := acc.DB(context.Background())
	require.NoError(t, err)

	second, err := acc.DB(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestConcurrentOpenSharesConnection(t *testing.T) {
	acc := collection.New(
		sqlite.Open(filepath.Join(t.TempDir(), "account.db")),
		collection.WithLogger(gormlogger.Discard),
		collection.WithAutoMigrate(true),
	)
	t.Cleanup(func() { _ = acc.Close() })

	const workers = 16
	handles := make([]*gorm.DB, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			db, err := acc.DB(context.Background())
			assert.NoError(t, err)
			handles[i] = db
		}()
	}
	wg.Wait()

	for _, db := range handles[1:] {
		assert.Same(t, handles[0], db)
	}

	require.NoError(t, acc.Close())

	reopened, err := acc.DB(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, handles[0], reopened)
	assert.True(t, reopened.Migrator().HasTable(collection.Users))
}

func TestCloseForgetsWrappedConnection(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	acc := collection.FromDB(db)
	got, err := acc.DB(context.Background())
	require.NoError(t, err)
	assert.Same(t, db, got)

	require.NoError(t, acc.Close())

	_, err = acc.DB(context.Background())
	require.ErrorIs(t, err, collection.ErrNoDatabase)
}

func TestNoDatabase(t *testing.T) {
	var acc collection.Accessor

	_, err := acc.Collection(context.Background(), collection.Users)
	require.ErrorIs(t, err, collection.ErrNoDatabase)
	require.NoError(t, acc.Close())
}

func TestUniqueViolationIsConflict(t *testing.T) {
	acc := collectiontest.New(t)
	ctx := context.Background()

	c, err := acc.Collection(ctx, collection.Roles)
	require.NoError(t, err)
	require.NoError(t, c.Create(&models.Role{ID: "r1", NormalizedName: "ADMIN"}).Error)

	c, err = acc.Collection(ctx, collection.Roles)
	require.NoError(t, err)
	err = collection.Translate(c.Create(&models.Role{ID: "r2", NormalizedName: "ADMIN"}).Error)
	require.ErrorIs(t, err, collection.ErrConflict)
}

func TestTransactionRollsBack(t *testing.T) {
	acc := collectiontest.New(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := acc.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Table(collection.Roles).Create(&models.Role{ID: "r1", NormalizedName: "ADMIN"}).Error; err != nil {
			return err
		}

		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int64

	c, err := acc.Collection(ctx, collection.Roles)
	require.NoError(t, err)
	require.NoError(t, c.Count(&count).Error)
	assert.Zero(t, count)
}

func TestCancelledContextAbortsStatement(t *testing.T) {
	acc := collectiontest.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, err := acc.Collection(ctx, collection.Users)
	require.NoError(t, err)

	var users []models.User
	err = c.Find(&users).Error
	require.ErrorIs(t, err, context.Canceled)
}

func TestTranslate(t *testing.T) {
	testCases := []struct {
		name string
		in   error
		want error
	}{
		{name: "duplicated key", in: gorm.ErrDuplicatedKey, want: collection.ErrConflict},
		{name: "sqlite unique", in: errors.New("constraint failed: UNIQUE constraint failed: users.id (1555)"), want: collection.ErrConflict},
		{name: "postgres unique", in: errors.New(`ERROR: duplicate key value violates unique constraint "users_pkey"`), want: collection.ErrConflict},
		{name: "mysql unique", in: errors.New("Error 1062 (23000): Duplicate entry 'x' for key 'PRIMARY'"), want: collection.ErrConflict},
		{name: "record not found", in: gorm.ErrRecordNotFound, want: collection.ErrNotFound},
		{name: "already translated", in: fmt.Errorf("wrapped: %w", collection.ErrConflict), want: collection.ErrConflict},
		{name: "other errors pass through", in: context.DeadlineExceeded, want: context.DeadlineExceeded},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := collection.Translate(tc.in)
			require.ErrorIs(t, got, tc.want)
			require.ErrorIs(t, got, tc.in)
		})
	}

	require.NoError(t, collection.Translate(nil))
}

func TestIsTransient(t *testing.T) {
	assert.True(t, collection.IsTransient(context.DeadlineExceeded))
	assert.True(t, collection.IsTransient(fmt.Errorf("query: %w", context.DeadlineExceeded)))
	assert.False(t, collection.IsTransient(context.Canceled))
	assert.False(t, collection.IsTransient(collection.ErrConflict))
	assert.False(t, collection.IsTransient(nil))
}
