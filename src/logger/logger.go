package logger

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// GormLogrusLogger routes gorm's query log through logrus so the audit store
// logs in the same shape as the rest of the service.
type GormLogrusLogger struct {
	logger *logrus.Logger
}

func NewGormLogrusLogger() *GormLogrusLogger {
	return &GormLogrusLogger{
		logger: logrus.New(),
	}
}

func (l *GormLogrusLogger) LogMode(level logger.LogLevel) logger.Interface {
	newLogger := *l
	return &newLogger
}

func (l *GormLogrusLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.logger.WithContext(ctx).Infof(msg, data...)
}

func (l *GormLogrusLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.logger.WithContext(ctx).Warnf(msg, data...)
}

func (l *GormLogrusLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.logger.WithContext(ctx).Errorf(msg, data...)
}

func (l *GormLogrusLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := logrus.Fields{
		"elapsed": elapsed,
		"rows":    rows,
		"sql":     sql,
	}

	if err != nil {
		l.logger.WithContext(ctx).WithFields(fields).Error(err)
	} else if elapsed > slowQueryThreshold {
		l.logger.WithContext(ctx).WithFields(fields).Warnf("SLOW SQL >= %v", slowQueryThreshold)
	} else {
		l.logger.WithContext(ctx).WithFields(fields).Info("SQL")
	}
}
