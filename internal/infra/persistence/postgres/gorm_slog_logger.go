package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"storefront/config"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// slowQueryThreshold flags catalog queries that should have hit an index.
const slowQueryThreshold = 200 * time.Millisecond

// gormSlogLogger routes gorm's output through the service logger so query
// logs share the shape of everything else the process emits.
type gormSlogLogger struct {
	logger *slog.Logger
	level  gormlogger.LogLevel
}

func newGormSlogLogger(baseLogger *slog.Logger, cfg *config.Config) gormlogger.Interface {
	level := gormlogger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = gormlogger.Info
	}

	return &gormSlogLogger{logger: baseLogger, level: level}
}

func (l *gormSlogLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.logf(ctx, gormlogger.Info, slog.LevelInfo, msg, args...)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.logf(ctx, gormlogger.Warn, slog.LevelWarn, msg, args...)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.logf(ctx, gormlogger.Error, slog.LevelError, msg, args...)
}

func (l *gormSlogLogger) logf(ctx context.Context, min gormlogger.LogLevel, level slog.Level, msg string, args ...any) {
	if l.logger == nil || l.level < min {
		return
	}

	l.logger.Log(ctx, level, "gorm: "+fmt.Sprintf(msg, args...))
}

// Trace logs each statement once it finishes. Record-not-found is an expected
// outcome for lookups and is not reported as a query failure.
func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, fn func() (string, int64), err error) {
	if l.logger == nil || l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fn()
		l.logger.LogAttrs(ctx, slog.LevelError, "gorm query failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", elapsed),
			slog.Int64("rows", rows),
			slog.String("sql", sql),
		)
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		sql, rows := fn()
		l.logger.LogAttrs(ctx, slog.LevelWarn, "gorm slow query",
			slog.Duration("elapsed", elapsed),
			slog.Duration("threshold", slowQueryThreshold),
			slog.Int64("rows", rows),
			slog.String("sql", sql),
		)
	case l.level >= gormlogger.Info:
		sql, rows := fn()
		l.logger.LogAttrs(ctx, slog.LevelInfo, "gorm query",
			slog.Duration("elapsed", elapsed),
			slog.Int64("rows", rows),
			slog.String("sql", sql),
		)
	}
}
