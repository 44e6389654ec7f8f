// Package gormlog bridges gorm's statement logger to the zerolog logger set up by package logger.
package gormlog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Logger implements gorm's logger.Interface on top of the global zerolog logger.
type Logger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// New returns a Logger at warn level. Statements slower than slowThreshold are
// logged as warnings, a zero threshold disables slow statement detection.
func New(slowThreshold time.Duration) *Logger {
	return &Logger{
		level:         gormlogger.Warn,
		slowThreshold: slowThreshold,
	}
}

// LogMode returns a copy of the logger with the given level.
func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	c := *l
	c.level = level

	return &c
}

// Info logs at debug level, gorm uses it for migration chatter.
func (l *Logger) Info(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		log.Debug().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

// Warn logs at warn level.
func (l *Logger) Warn(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		log.Warn().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

// Error logs at error level.
func (l *Logger) Error(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		log.Error().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

// Trace logs one executed statement. Record not found is a regular lookup outcome, not an error.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		log.Error().Err(err).Str("component", "gorm").Dur("elapsed", elapsed).
			Int64("rows", rows).Str("sql", sql).Msg("statement failed")
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		log.Warn().Str("component", "gorm").Dur("elapsed", elapsed).Dur("threshold", l.slowThreshold).
			Int64("rows", rows).Str("sql", sql).Msg("slow statement")
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		log.Trace().Str("component", "gorm").Dur("elapsed", elapsed).
			Int64("rows", rows).Str("sql", sql).Msg("statement")
	}
}
