package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/philipparndt/goplane/internal/config"
)

const loggerName = "goplane"

var (
	global atomic.Pointer[zap.Logger]
	once   sync.Once
)

// Initialize sets up the global logger writing to stdout
func Initialize(cfg config.LoggerConfig) *zap.Logger {
	return InitializeWith(cfg, zapcore.Lock(os.Stdout))
}

// InitializeWith sets up the global logger writing console output to w. Only
// the first call has an effect.
func InitializeWith(cfg config.LoggerConfig, w zapcore.WriteSyncer) *zap.Logger {
	once.Do(func() {
		global.Store(New(cfg, w))
	})
	return Get()
}

// New builds a logger without touching the global one
func New(cfg config.LoggerConfig, w zapcore.WriteSyncer) *zap.Logger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	cores := []zapcore.Core{zapcore.NewCore(encoder(cfg.Format), w, level)}
	if cfg.File != "" {
		// files are always json
		file := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(encoder("json"), file, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel)).Named(loggerName)
}

func encoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")
	if format == "json" {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	ec.EncodeName = func(name string, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(name + ".")
	}
	return zapcore.NewConsoleEncoder(ec)
}

// Get returns the global logger, or a no-op logger before Initialize
func Get() *zap.Logger {
	if l := global.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// Named returns a child of the global logger
func Named(name string) *zap.Logger {
	return Get().Named(name)
}

// Sync flushes buffered entries, ignoring the errors stdout returns on some
// platforms
func Sync() {
	l := global.Load()
	if l == nil {
		return
	}
	if err := l.Sync(); err != nil {
		msg := err.Error()
		if !strings.Contains(msg, "sync /dev/stdout") &&
			!strings.Contains(msg, "invalid argument") &&
			!strings.Contains(msg, "inappropriate ioctl") &&
			!strings.Contains(msg, "operation not supported") {
			fmt.Fprintln(os.Stderr, "Error: failed to sync logger:", err)
		}
	}
}

// ResetForTest clears the global logger so Initialize can run again
func ResetForTest() {
	global.Store(nil)
	once = sync.Once{}
}
