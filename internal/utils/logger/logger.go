package logger

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type contextKey string

const LoggerKey = contextKey("logger")

var (
	mu           sync.RWMutex
	globalLogger *zap.SugaredLogger
)

// NewCore builds the console/file core described by cfg. The returned core
// never writes to MongoDB, so it is safe as the appender's error channel.
// NewCore 根据 cfg 构建控制台/文件 core。返回的 core 从不写入 MongoDB，因此可安全用作 appender 的错误通道。
func NewCore(cfg LoggingConfig) zapcore.Core {
	// Default to stderr if not configured or disabled
	writeSyncer := zapcore.AddSync(os.Stderr)

	if cfg.Enabled && cfg.Path != "" {
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0755); err == nil {
			writeSyncer = zapcore.AddSync(&lumberjack.Logger{
				Filename:   cfg.Path,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   cfg.Compress,
			})
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	return zapcore.NewCore(encoder, writeSyncer, ParseLevel(cfg.Level))
}

// ParseLevel maps a config level name to a zap level, defaulting to info.
// ParseLevel 将配置中的级别名称映射为 zap 级别，默认 info。
func ParseLevel(name string) zapcore.Level {
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// Init initializes the global logger based on configuration.
// Init 根据配置初始化全局日志记录器。
func Init(cfg LoggingConfig) {
	l := zap.New(NewCore(cfg), zap.AddCaller()).Sugar()

	mu.Lock()
	globalLogger = l
	mu.Unlock()

	l.Debugf("[LOG] Logging initialized (Level: %s, Path: %s)", ParseLevel(cfg.Level), cfg.Path)
}

// Sync flushes any buffered log entries.
// Sync 刷新所有缓存的日志条目。
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	if globalLogger != nil {
		return globalLogger.Sync()
	}
	return nil
}

// Get returns the logger from context or global logger
// Get 从 Context 或全局日志记录器返回 Logger。
func Get(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if logger, ok := ctx.Value(LoggerKey).(*zap.SugaredLogger); ok {
			return logger
		}
	}
	mu.RLock()
	l := globalLogger
	mu.RUnlock()
	if l == nil {
		// Fallback to basic logger if not initialized
		dev, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewExample().Sugar()
		}
		return dev.Sugar()
	}
	return l
}

// WithContext adds logger to context
// WithContext 将 Logger 添加到 Context。
func WithContext(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}
