package config

import (
	"time"

	"github.com/GhostNetwork/account/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode bool // enable dev mode for development
	DB      DB
	Log     logger.Log
	Clients Clients
	Secrets Secrets
	Roles   []string // role names seeded on migrate
}

// Clients holds the OAuth client resolution settings.
type Clients struct {
	StaticFile string        // optional json or yaml file of statically defined clients
	Default    string        // static client whose uri is the default redirect target
	Scopes     []string      // scopes granted to persisted clients
	CacheTTL   time.Duration // 0 disables caching of persisted clients
}

// Secrets holds the settings for user owned long-lived API secrets.
type Secrets struct {
	Hasher         string `validate:"oneof=sha256 argon2id"`
	ValidityMonths int    `validate:"gte=0,lte=120"`
	Length         int    `validate:"gte=16,lte=128"`
}
