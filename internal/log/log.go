// Package log provides centralized logging functionality using zap logger.
package log

import (
	"fmt"

	"go.uber.org/zap"
)

var log *zap.SugaredLogger

// Init initializes the package-level logger.
func Init(debug bool) error {
	var zapLogger *zap.Logger
	var err error

	if debug {
		zapLogger, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	} else {
		zapLogger, err = zap.NewProduction(zap.AddCallerSkip(1))
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}

	log = zapLogger.Sugar()
	return nil
}

func logger() *zap.SugaredLogger {
	if log == nil {
		base, _ := zap.NewProduction(zap.AddCallerSkip(1))
		log = base.Sugar()
	}
	return log
}

// Sync flushes any buffered log entries.
func Sync() {
	if log != nil {
		log.Sync()
	}
}

// Info logs a message at info level.
func Info(args ...interface{}) {
	logger().Info(args...)
}

// Infof logs a formatted message at info level.
func Infof(template string, args ...interface{}) {
	logger().Infof(template, args...)
}

// Warn logs a message at warn level.
func Warn(args ...interface{}) {
	logger().Warn(args...)
}

// Warnf logs a formatted message at warn level.
func Warnf(template string, args ...interface{}) {
	logger().Warnf(template, args...)
}

// Error logs a message at error level.
func Error(args ...interface{}) {
	logger().Error(args...)
}

// Errorf logs a formatted message at error level.
func Errorf(template string, args ...interface{}) {
	logger().Errorf(template, args...)
}

// Debugf logs a formatted message at debug level.
func Debugf(template string, args ...interface{}) {
	logger().Debugf(template, args...)
}

// Fatalf logs a formatted message at fatal level and exits.
func Fatalf(template string, args ...interface{}) {
	logger().Fatalf(template, args...)
}
