package logger

import (
	"fmt"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

type gormWriter struct{}

func (gormWriter) Printf(format string, args ...interface{}) {
	WithComponent("gorm").Info(fmt.Sprintf(format, args...))
}

// NewGormLogger routes gorm's slow query and error output through slog.
func NewGormLogger(level string, slowThreshold time.Duration) gormlogger.Interface {
	logLevel := gormlogger.Warn
	switch level {
	case "debug":
		logLevel = gormlogger.Info
	case "error":
		logLevel = gormlogger.Error
	}

	return gormlogger.New(gormWriter{}, gormlogger.Config{
		SlowThreshold:             slowThreshold,
		LogLevel:                  logLevel,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
