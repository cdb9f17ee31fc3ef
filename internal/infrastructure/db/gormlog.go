package db

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// printf adapts a logrus level method to gorm's logger.Writer.
type printf func(format string, args ...any)

func (p printf) Printf(format string, args ...any) { p(format, args...) }

// gormLogger keeps gorm's message formatting but writes each kind of line at
// the matching logrus level: failed queries as errors, slow ones as warnings.
type gormLogger struct {
	info, warn, err logger.Interface
}

func newGormLogger(l *logrus.Logger) logger.Interface {
	entry := l.WithField("component", "gorm")
	cfg := logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  gormLevel(l.GetLevel()),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	}
	return &gormLogger{
		info: logger.New(printf(entry.Infof), cfg),
		warn: logger.New(printf(entry.Warnf), cfg),
		err:  logger.New(printf(entry.Errorf), cfg),
	}
}

func (g *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{
		info: g.info.LogMode(level),
		warn: g.warn.LogMode(level),
		err:  g.err.LogMode(level),
	}
}

func (g *gormLogger) Info(ctx context.Context, msg string, args ...any) {
	g.info.Info(ctx, msg, args...)
}

func (g *gormLogger) Warn(ctx context.Context, msg string, args ...any) {
	g.warn.Warn(ctx, msg, args...)
}

func (g *gormLogger) Error(ctx context.Context, msg string, args ...any) {
	g.err.Error(ctx, msg, args...)
}

func (g *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		g.err.Trace(ctx, begin, fc, err)
	case time.Since(begin) > slowQueryThreshold:
		g.warn.Trace(ctx, begin, fc, err)
	default:
		g.info.Trace(ctx, begin, fc, err)
	}
}

func gormLevel(lvl logrus.Level) logger.LogLevel {
	switch {
	case lvl >= logrus.DebugLevel:
		return logger.Info
	case lvl >= logrus.WarnLevel:
		return logger.Warn
	case lvl >= logrus.ErrorLevel:
		return logger.Error
	default:
		return logger.Silent
	}
}
