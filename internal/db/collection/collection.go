// Package collection opens the named collections of the account database.
//
// One Accessor exists per process. It resolves the gorm connection lazily on
// first use and hands out context bound handles per collection, so every
// statement is aborted when the caller's context is cancelled.
package collection

import (
	"context"
	"sync"
	"sync/atomic"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GhostNetwork/account/internal/db/models"
)

// Collection names, one per entity.
const (
	Users      = "users"
	Roles      = "roles"
	UserClaims = "user_claims"
	RoleClaims = "role_claims"
	UserLogins = "user_logins"
	UserTokens = "user_tokens"
	UserRoles  = "user_roles"
	Clients    = "clients"
)

// Models returns one zero value per collection in migration order.
func Models() []any {
	return []any{
		&models.User{},
		&models.Role{},
		&models.UserClaim{},
		&models.RoleClaim{},
		&models.UserLogin{},
		&models.UserToken{},
		&models.UserRole{},
		&models.Client{},
	}
}

// Option configures an Accessor.
type Option func(*Accessor)

// WithLogger sets the gorm statement logger.
func WithLogger(l gormlogger.Interface) Option {
	return func(a *Accessor) {
		a.logger = l
	}
}

// WithAutoMigrate migrates all collections right after the connection is opened.
func WithAutoMigrate(enabled bool) Option {
	return func(a *Accessor) {
		a.autoMigrate = enabled
	}
}

// Accessor is the lazily resolved handle to the account database.
// It is safe for concurrent use.
type Accessor struct {
	dialector   gorm.Dialector
	logger      gormlogger.Interface
	autoMigrate bool

	mu sync.Mutex // serializes open and close
	db atomic.Pointer[gorm.DB]
}

// New returns an Accessor that opens dialector on first use.
func New(dialector gorm.Dialector, opts ...Option) *Accessor {
	a := &Accessor{dialector: dialector}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// FromDB wraps an already opened connection.
func FromDB(db *gorm.DB) *Accessor {
	a := &Accessor{}
	a.db.Store(db)

	return a
}

// DB returns the shared connection, opening it on first use.
// A failed open is not cached; the next call tries again.
func (a *Accessor) DB(ctx context.Context) (*gorm.DB, error) {
	if db := a.db.Load(); db != nil {
		return db, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if db := a.db.Load(); db != nil {
		return db, nil
	}

	if a.dialector == nil {
		return nil, ErrNoDatabase
	}

	db, err := gorm.Open(a.dialector, &gorm.Config{
		Logger:         a.logger,
		TranslateError: true,
	})
	if err != nil {
		return nil, Translate(err)
	}

	if a.autoMigrate {
		if err = migrate(ctx, db); err != nil {
			return nil, err
		}
	}

	a.db.Store(db)

	return db, nil
}

// Session returns the connection bound to ctx. Unlike a collection handle it
// may be reused for several statements, each starting with Table(name).
func (a *Accessor) Session(ctx context.Context) (*gorm.DB, error) {
	db, err := a.DB(ctx)
	if err != nil {
		return nil, err
	}

	return db.WithContext(ctx), nil
}

// Collection returns a handle to the named collection bound to ctx.
// The handle carries statement state; use it for a single chain.
func (a *Accessor) Collection(ctx context.Context, name string) (*gorm.DB, error) {
	db, err := a.Session(ctx)
	if err != nil {
		return nil, err
	}

	return db.Table(name), nil
}

// Transaction runs fn in one database transaction bound to ctx.
// Inside fn use tx.Table(name) for every statement.
func (a *Accessor) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	db, err := a.DB(ctx)
	if err != nil {
		return err
	}

	return Translate(db.WithContext(ctx).Transaction(fn))
}

// Migrate creates or updates every collection and its indexes.
func (a *Accessor) Migrate(ctx context.Context) error {
	db, err := a.DB(ctx)
	if err != nil {
		return err
	}

	return migrate(ctx, db)
}

// Close releases the underlying connection pool, if it was opened.
func (a *Accessor) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	db := a.db.Load()
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err //nolint: wrapcheck
	}

	a.db.Store(nil)

	return sqlDB.Close() //nolint: wrapcheck
}

func migrate(ctx context.Context, db *gorm.DB) error {
	return Translate(db.WithContext(ctx).AutoMigrate(Models()...))
}
