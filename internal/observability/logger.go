// Package observability sets up the process-wide zap logger.
package observability

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/san-kum/constellate/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	globalLogger atomic.Pointer[zap.Logger]
	once         sync.Once
)

// InitializeLogger builds the global logger once. Console output goes to
// stderr so it never mixes with rendered output on stdout.
func InitializeLogger(cfg config.LogConfig) {
	var console zapcore.WriteSyncer
	if cfg.Console {
		console = zapcore.Lock(os.Stderr)
	}
	Initialize(cfg, console)
}

// Initialize builds the global logger with an explicit console writer.
// A nil console disables console output.
func Initialize(cfg config.LogConfig, console zapcore.WriteSyncer) {
	once.Do(func() {
		logger := New(cfg, console)
		globalLogger.Store(logger)
		zap.ReplaceGlobals(logger)
	})
}

// New builds a logger without touching global state.
func New(cfg config.LogConfig, console zapcore.WriteSyncer) *zap.Logger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	var cores []zapcore.Core
	if console != nil {
		cores = append(cores, zapcore.NewCore(getEncoder(cfg.Format), console, level))
	}
	if cfg.File != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(getEncoder("json"), fileWriter, level))
	}
	if len(cores) == 0 {
		return zap.NewNop()
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel)).Named("constellate")
}

func getEncoder(format string) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	if format == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewJSONEncoder(encoderConfig)
}

// GetLogger returns the global logger, or a no-op logger before
// initialization.
func GetLogger() *zap.Logger {
	if logger := globalLogger.Load(); logger != nil {
		return logger
	}
	return zap.NewNop()
}

// Sync flushes buffered entries.
func Sync() {
	logger := globalLogger.Load()
	if logger == nil {
		return
	}
	// stderr sync fails on terminals; nothing useful to do about it
	if err := logger.Sync(); err != nil && !isIgnorableSyncError(err) {
		fmt.Fprintln(os.Stderr, "error: failed to sync logger:", err)
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return msg == "sync /dev/stderr: invalid argument" || msg == "sync /dev/stderr: inappropriate ioctl for device"
}

// ResetForTest clears the global logger so a test can initialize again.
func ResetForTest() {
	once = sync.Once{}
	globalLogger.Store(nil)
}
