package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log         = zap.NewNop()
	initialized bool
	mu          sync.RWMutex
)

// Init builds the process logger for the given environment.
// "production" gets the JSON encoder at info level, "test" discards output,
// anything else uses the colored development encoder.
func Init(env string) {
	var (
		l   *zap.Logger
		err error
	)

	switch env {
	case "production":
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		l, err = cfg.Build(zap.AddCallerSkip(1))
	case "test":
		l = zap.NewNop()
	default:
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l, err = cfg.Build(zap.AddCallerSkip(1))
	}

	if err != nil {
		l = zap.NewExample()
	}

	mu.Lock()
	log = l
	initialized = true
	mu.Unlock()
}

// Get returns the current logger, initializing a development logger on first use.
func Get() *zap.Logger {
	mu.RLock()
	ready := initialized
	mu.RUnlock()
	if !ready {
		Init("development")
	}

	mu.RLock()
	defer mu.RUnlock()
	return log
}

func With(fields ...zap.Field) *zap.Logger {
	return Get().With(fields...)
}

func Debug(msg string, fields ...zap.Field) {
	Get().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Get().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Get().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Get().Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	Get().Fatal(msg, fields...)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Get().Sync()
}
