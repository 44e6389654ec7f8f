package config

import (
	"errors"
)

var (
	// ErrNoDatabase error if neither db.url nor db.host (or a sqlite db.name) is configured.
	ErrNoDatabase = errors.New("config db.url or db.host must be set")

	// ErrSecretValidityCanNotBeZero error if secrets.validityMonths is 0.
	ErrSecretValidityCanNotBeZero = errors.New("config secrets.validityMonths can not be 0")
)
