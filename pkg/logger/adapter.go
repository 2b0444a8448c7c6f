package logger

import (
	"go.uber.org/zap"
)

// LoggerAdapter provides a unified interface for both single and multi-logger.
// A nil adapter discards every event.
type LoggerAdapter struct {
	multiLogger  *MultiLogger
	singleLogger *zap.Logger
	useMulti     bool
}

// NewLoggerAdapter creates a new logger adapter
func NewLoggerAdapter(multiLogger *MultiLogger) *LoggerAdapter {
	return &LoggerAdapter{
		multiLogger: multiLogger,
		useMulti:    true,
	}
}

// NewSingleLoggerAdapter routes every category to one logger
func NewSingleLoggerAdapter(logger *zap.Logger) *LoggerAdapter {
	return &LoggerAdapter{
		singleLogger: logger,
		useMulti:     false,
	}
}

// Download returns the download lifecycle logger
func (la *LoggerAdapter) Download() *zap.Logger {
	if la == nil {
		return zap.NewNop()
	}
	if la.useMulti {
		return la.multiLogger.Download()
	}
	return la.singleLogger
}

// Task returns the task registry logger
func (la *LoggerAdapter) Task() *zap.Logger {
	if la == nil {
		return zap.NewNop()
	}
	if la.useMulti {
		return la.multiLogger.Task()
	}
	return la.singleLogger
}

// Error returns the error logger
func (la *LoggerAdapter) Error() *zap.Logger {
	if la == nil {
		return zap.NewNop()
	}
	if la.useMulti {
		return la.multiLogger.Error()
	}
	return la.singleLogger
}

// LogDownloadEvent logs a chapter or episode lifecycle event
func (la *LoggerAdapter) LogDownloadEvent(event string, fields ...zap.Field) {
	la.Download().Info(event, fields...)
}

// LogTaskEvent logs a task registry change
func (la *LoggerAdapter) LogTaskEvent(event string, fields ...zap.Field) {
	la.Task().Info(event, fields...)
}

// LogAppError logs an application error
func (la *LoggerAdapter) LogAppError(msg string, fields ...zap.Field) {
	la.Error().Error(msg, fields...)
}

// Sync flushes all loggers
func (la *LoggerAdapter) Sync() error {
	if la == nil {
		return nil
	}
	if la.useMulti {
		return la.multiLogger.Sync()
	}
	return la.singleLogger.Sync()
}

// GetMultiLogger returns the underlying multi-logger (if available)
func (la *LoggerAdapter) GetMultiLogger() *MultiLogger {
	if la == nil {
		return nil
	}
	return la.multiLogger
}
