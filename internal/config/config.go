// Package config handles input from etc/main.toml and GHOST_ACCOUNT_* environment variables.
package config

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. GHOST_ACCOUNT_DB_URL.
const EnvPrefix = "GHOST_ACCOUNT"

// ReadConfig from config directory. A missing main.toml is not an error,
// the environment alone may configure the service.
func ReadConfig(path string) (Config, error) {
	var (
		c   Config
		err error
	)

	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigName("main")
	v.SetConfigType("toml")
	v.AddConfigPath(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "failed to read main config file")
		}
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	return c, validate(&c)
}

// setDefaults registers every key so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("devmode", false)

	v.SetDefault("db.url", "")
	v.SetDefault("db.engine", "postgres")
	v.SetDefault("db.extras", "")
	v.SetDefault("db.host", "")
	v.SetDefault("db.port", 0)
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "")
	v.SetDefault("db.automigrate", true)
	v.SetDefault("db.slowquery", "200ms")

	v.SetDefault("log.loglevel", "info")
	v.SetDefault("log.appname", "ghost-account")
	v.SetDefault("log.servicename", "account")
	v.SetDefault("log.reportcaller", false)
	v.SetDefault("log.console.enabled", true)
	v.SetDefault("log.console.useconsolewriter", false)
	v.SetDefault("log.file.enabled", false)
	v.SetDefault("log.file.path", "./log")

	v.SetDefault("clients.staticfile", "")
	v.SetDefault("clients.default", "")
	v.SetDefault("clients.scopes", []string{"openid", "profile", "api"})
	v.SetDefault("clients.cachettl", "0s")

	v.SetDefault("secrets.hasher", "sha256")
	v.SetDefault("secrets.validitymonths", 3) //nolint: mnd
	v.SetDefault("secrets.length", 32)        //nolint: mnd

	v.SetDefault("roles", []string{})
}

// validate the config and fill in derived defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	if c.DB.URL == "" && c.DB.Host == "" && (c.DB.Engine != "sqlite" || c.DB.Name == "") {
		return errors.Wrap(ErrNoDatabase, invalidErrMessage)
	}

	if c.DB.Name == "" {
		c.DB.Name = DefaultDBName
	}

	if c.Secrets.ValidityMonths == 0 {
		return errors.Wrap(ErrSecretValidityCanNotBeZero, invalidErrMessage)
	}

	return nil
}

// DumpConfigJSON config as JSON String. Credentials are redacted.
func DumpConfigJSON(c Config) (string, error) {
	var buffer bytes.Buffer

	if c.DB.Password != "" {
		c.DB.Password = redacted
	}

	if c.DB.URL != "" {
		c.DB.URL = redactURL(c.DB.URL)
	}

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

const redacted = "********"

// redactURL hides the password of a connection URL, opaque DSNs are fully redacted.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return redacted
	}

	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), redacted)
	}

	return u.String()
}
