// Package daemon wires configuration, database and stores into one process.
package daemon

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/GhostNetwork/account/internal/config"
	"github.com/GhostNetwork/account/internal/db/collection"
	"github.com/GhostNetwork/account/internal/db/controller/clients"
	"github.com/GhostNetwork/account/internal/db/controller/rolestore"
	"github.com/GhostNetwork/account/internal/db/controller/userstore"
	"github.com/GhostNetwork/account/internal/db/dsn"
	"github.com/GhostNetwork/account/internal/logger/adapter/gormlog"
	"github.com/GhostNetwork/account/internal/oauth/resolver"
	"github.com/GhostNetwork/account/internal/secret"
	"github.com/GhostNetwork/account/internal/settings/secrets"
)

// ErrConfigNil is returned by New without a configuration.
var ErrConfigNil = errors.New("config is nil")

// Daemon holds the stores and services of the account service. The database
// is opened on first use and shared by every store.
type Daemon struct {
	cfg *config.Config
	acc *collection.Accessor

	Users    *userstore.Store
	Roles    *rolestore.Store
	Clients  *clients.Repository
	Static   *resolver.StaticSource
	Resolver *resolver.Composed
	Secrets  *secrets.Service
}

// Option configures a Daemon.
type Option func(*options)

type options struct {
	acc        *collection.Accessor
	registerer prometheus.Registerer
}

// WithAccessor uses acc instead of opening the configured database.
func WithAccessor(acc *collection.Accessor) Option {
	return func(o *options) {
		o.acc = acc
	}
}

// WithRegisterer registers the resolver metrics with reg instead of the default registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// New creates a new Daemon instance with the provided configuration.
// No connection is made until a store is used.
func New(cfg *config.Config, opts ...Option) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	o := options{registerer: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&o)
	}

	acc := o.acc
	if acc == nil {
		dialector, err := dsn.Dialector(cfg.DB)
		if err != nil {
			return nil, err
		}

		log.Debug().Str("engine", dialector.Name()).Str("db", cfg.DB.Name).Msg("database configured")

		acc = collection.New(dialector,
			collection.WithLogger(gormlog.New(cfg.DB.SlowQuery)),
			collection.WithAutoMigrate(cfg.DB.AutoMigrate),
		)
	}

	hasher, err := secret.New(cfg.Secrets.Hasher)
	if err != nil {
		return nil, err
	}

	static, err := staticClients(cfg.Clients)
	if err != nil {
		return nil, err
	}

	repo := clients.New(acc)

	var (
		persisted  resolver.Source = resolver.NewPersistedSource(repo, cfg.Clients.Scopes)
		secretOpts []secrets.Option
	)
	if cfg.Clients.CacheTTL > 0 {
		cached := resolver.NewCachedSource(persisted, cfg.Clients.CacheTTL)
		persisted = cached
		secretOpts = append(secretOpts, secrets.WithInvalidator(cached.Invalidate))
	}

	return &Daemon{
		cfg:      cfg,
		acc:      acc,
		Users:    userstore.New(acc),
		Roles:    rolestore.New(acc),
		Clients:  repo,
		Static:   static,
		Resolver: resolver.NewComposed([]resolver.Source{static, persisted}, resolver.WithMetrics(resolver.NewMetrics(o.registerer))),
		Secrets:  secrets.New(repo, hasher, cfg.Secrets, secretOpts...),
	}, nil
}

// Migrate creates the collections and seeds the configured roles.
func (d *Daemon) Migrate(ctx context.Context) error {
	if err := d.acc.Migrate(ctx); err != nil {
		return err
	}

	return seed(ctx, d.cfg, d.Roles)
}

// DefaultClientURI returns the home page of the configured default client.
func (d *Daemon) DefaultClientURI() (string, bool) {
	return d.Static.ClientURI(d.cfg.Clients.Default)
}

// Close releases the database connection.
func (d *Daemon) Close() error {
	return d.acc.Close()
}

func staticClients(cfg config.Clients) (*resolver.StaticSource, error) {
	var descriptors []resolver.Descriptor

	if cfg.StaticFile != "" {
		var err error
		if descriptors, err = resolver.LoadStaticFile(cfg.StaticFile); err != nil {
			return nil, err
		}
	}

	static, err := resolver.NewStaticSource(descriptors)
	if err != nil {
		return nil, err
	}

	if cfg.Default != "" {
		if _, ok := static.ClientURI(cfg.Default); !ok {
			log.Warn().Str("client", cfg.Default).Msg("default client is not a static client with a client uri")
		}
	}

	log.Debug().Int("clients", static.Len()).Msg("static clients loaded")

	return static, nil
}
