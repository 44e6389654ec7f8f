package collection

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when an operation requires an entity that does not exist.
	// Point lookups never return it, they return nil instead.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write violates a unique constraint.
	ErrConflict = errors.New("conflict")

	// ErrInvalid is returned for input that is rejected before it reaches storage.
	ErrInvalid = errors.New("invalid")

	// ErrNoDatabase is returned when the Accessor has neither a connection nor a dialector.
	ErrNoDatabase = errors.New("no database configured")
)

// duplicateMarkers are the driver messages of unique violations, lower case.
// Used when the dialector does not translate errors itself.
var duplicateMarkers = []string{ //nolint:gochecknoglobals
	"unique constraint",
	"duplicate key value",
	"duplicate entry",
}

// Translate maps driver errors onto the package taxonomy. Unknown errors are returned unchanged.
func Translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrConflict), errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalid):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey), isDuplicate(err):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return err
	}
}

func isDuplicate(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range duplicateMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}

// IsTransient reports whether err is a connectivity or timeout fault the caller may retry.
// This package never retries on its own.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr)
}
