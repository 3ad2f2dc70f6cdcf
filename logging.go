package pdfcompare

import (
	"gopkg.in/natefinch/lumberjack.v2"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig configures NewLogger's output sink (§6 ambient logging).
type LogConfig struct {
	// Path is the rotated log file; empty discards all output.
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	Debug      bool
}

// DefaultLogConfig returns sane rotation defaults for a long-running
// comparison service.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Path:       "./logs/pdfcompare.log",
		MaxSizeMB:  100,
		MaxBackups: 5,
		MaxAgeDays: 28,
		Compress:   true,
	}
}

// NewLogger builds the structured logger every component above takes
// by constructor injection, writing JSON lines to a lumberjack-rotated
// file (or discarding them entirely when Path is empty).
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	level := zap.InfoLevel
	if cfg.Debug {
		level = zap.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	var sink zapcore.WriteSyncer
	if cfg.Path == "" {
		sink = zapcore.AddSync(zapcore.Lock(zapcore.AddSync(nopSyncWriter{})))
	} else {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
	}

	core := zapcore.NewCore(encoder, sink, level)
	return zap.New(core, zap.AddCaller()), nil
}

// nopSyncWriter discards writes; used when LogConfig.Path is empty so
// NewLogger never depends on stderr being attached to a terminal.
type nopSyncWriter struct{}

func (nopSyncWriter) Write(p []byte) (int, error) { return len(p), nil }
