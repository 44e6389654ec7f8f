// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GhostNetwork/account/internal/config"
)

// Supported engines.
const (
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// ErrUnsupportedEngine is returned for engines without a gorm driver.
var ErrUnsupportedEngine = errors.New("unsupported database engine")

// Create builds the engine and Data Source Name from the configuration.
// A URL wins over the host parts; its scheme, when present, selects the engine.
// The database name falls back to config.DefaultDBName.
func Create(cfg config.DB) (engine, dsn string, err error) {
	name := cfg.Name
	if name == "" {
		name = config.DefaultDBName
	}

	if cfg.URL != "" {
		return fromURL(cfg.URL, cfg.Engine, name)
	}

	switch cfg.Engine {
	case EngineMySQL:
		return EngineMySQL, mysqlDSN(cfg.User, cfg.Password, hostPort(cfg.Host, cfg.Port), name, cfg.Extras), nil
	case EnginePostgres:
		out := fmt.Sprintf("host=%s user=%s password=%s dbname=%s",
			pgValue(cfg.Host), pgValue(cfg.User), pgValue(cfg.Password), pgValue(name))
		if cfg.Port != 0 {
			out += fmt.Sprintf(" port=%d", cfg.Port)
		}

		if cfg.Extras != "" {
			out += " " + cfg.Extras
		}

		return EnginePostgres, out, nil
	case EngineSQLite:
		return EngineSQLite, sqlitePath(name), nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedEngine, cfg.Engine)
	}
}

// Dialector opens the gorm dialector for the configuration.
func Dialector(cfg config.DB) (gorm.Dialector, error) {
	engine, dsn, err := Create(cfg)
	if err != nil {
		return nil, err
	}

	switch engine {
	case EngineMySQL:
		return mysql.Open(dsn), nil
	case EnginePostgres:
		return postgres.Open(dsn), nil
	default:
		return sqlite.Open(dsn), nil
	}
}

func fromURL(raw, engine, name string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil || !isURL(raw) {
		// opaque driver DSN, trust the configured engine
		if engine == "" {
			return "", "", fmt.Errorf("%w: no engine for %q", ErrUnsupportedEngine, raw)
		}

		return engine, raw, nil
	}

	switch u.Scheme {
	case "postgres", "postgresql":
		if strings.Trim(u.Path, "/") == "" {
			u.Path = "/" + name
		}

		return EnginePostgres, u.String(), nil
	case "mysql":
		db := strings.Trim(u.Path, "/")
		if db == "" {
			db = name
		}

		var user, password string
		if u.User != nil {
			user = u.User.Username()
			password, _ = u.User.Password()
		}

		return EngineMySQL, mysqlDSN(user, password, u.Host, db, u.RawQuery), nil
	case "sqlite", "file":
		if u.Scheme == "file" {
			return EngineSQLite, raw, nil
		}

		return EngineSQLite, sqlitePath(strings.TrimPrefix(raw, "sqlite://")), nil
	default:
		return "", "", fmt.Errorf("%w: scheme %q", ErrUnsupportedEngine, u.Scheme)
	}
}

func isURL(raw string) bool {
	return strings.Contains(raw, "://") || strings.HasPrefix(raw, "file:")
}

// mysqlDSN builds a go-sql-driver DSN. parseTime is forced, lockout instants are scanned into time.Time.
func mysqlDSN(user, password, host, name, extras string) string {
	if !strings.Contains(extras, "parseTime") {
		if extras != "" {
			extras += "&"
		}

		extras += "parseTime=true"
	}

	return fmt.Sprintf("%s:%s@tcp(%s)/%s?%s", user, password, host, name, extras)
}

func hostPort(host string, port int) string {
	if port == 0 {
		return host
	}

	return fmt.Sprintf("%s:%d", host, port)
}

func sqlitePath(name string) string {
	if name == ":memory:" || filepath.Ext(name) != "" {
		return name
	}

	return name + ".db"
}

// pgValue quotes a libpq key/value connection parameter when it is empty or
// contains whitespace, quotes or backslashes.
func pgValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " \t\n\r'\\") {
		return v
	}

	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v) + "'"
}
