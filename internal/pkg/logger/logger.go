package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	globalLogger *slog.Logger // Возвращаем один глобальный логгер
	zapLogger    *zap.Logger
	initMu       sync.Mutex
)

// Options configures the global logger.
type Options struct {
	Level      string
	File       string // пусто = только stdout
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init builds the zap core (JSON to stdout, optionally teed into a rotated file),
// bridges it into slog and installs both as the package-wide loggers.
func Init(opts Options) *zap.Logger {
	initMu.Lock()
	defer initMu.Unlock()

	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	invalidLevel := err != nil
	if invalidLevel {
		level = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	cores := []zapcore.Core{zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)}
	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), level))
	}

	core := zapcore.NewTee(cores...)
	zapLogger = zap.New(core)
	globalLogger = slog.New(zapslog.NewHandler(core))
	slog.SetDefault(globalLogger) // Устанавливаем как стандартный slog логгер

	if invalidLevel {
		globalLogger.Warn("Invalid log level string, defaulting to INFO", "input", opts.Level)
	}
	return zapLogger
}

// InitSlog initializes the global logger with a specified log level, stdout only.
func InitSlog(levelStr string) {
	Init(Options{Level: levelStr})
}

// ensureInitialized проверяет, инициализирован ли логгер.
func ensureInitialized() {
	if globalLogger == nil {
		InitSlog("INFO") // Initialize with default if not already done
	}
}

// Sync flushes buffered entries.
func Sync() {
	if zapLogger != nil {
		_ = zapLogger.Sync()
	}
}

// Debug logs a message at DebugLevel.
func Debug(msg string, args ...any) {
	ensureInitialized()
	if globalLogger.Enabled(context.Background(), slog.LevelDebug) {
		globalLogger.Debug(msg, args...)
	}
}

// Info logs a message at InfoLevel.
func Info(msg string, args ...any) {
	ensureInitialized()
	if globalLogger.Enabled(context.Background(), slog.LevelInfo) {
		globalLogger.Info(msg, args...)
	}
}

// Warn logs a message at WarnLevel.
func Warn(msg string, args ...any) {
	ensureInitialized()
	if globalLogger.Enabled(context.Background(), slog.LevelWarn) {
		globalLogger.Warn(msg, args...)
	}
}

// Error logs a message at ErrorLevel.
func Error(msg string, args ...any) {
	ensureInitialized()
	if globalLogger.Enabled(context.Background(), slog.LevelError) {
		globalLogger.Error(msg, args...)
	}
}

// Fatal logs a message at ErrorLevel then exits.
func Fatal(msg string, args ...any) {
	ensureInitialized()
	// Логируем всегда перед выходом, независимо от Enabled, т.к. это Fatal
	globalLogger.Error(msg, args...)
	Sync()
	os.Exit(1)
}
