// Package logging builds the process-wide zap logger from LoggingConfig.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/andrescamacho/starfleet-go/internal/infrastructure/config"
)

// New builds a logger. File output rotates through lumberjack when rotation
// is enabled. The returned cleanup flushes buffered entries.
func New(cfg config.LoggingConfig) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	sink, closeSink, err := writer(cfg)
	if err != nil {
		return nil, nil, err
	}

	core := zapcore.NewCore(encoder(cfg.Format), sink, zap.NewAtomicLevelAt(level))

	var opts []zap.Option
	if cfg.IncludeCaller {
		opts = append(opts, zap.AddCaller())
	}
	if cfg.IncludeStacktrace {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}
	if cfg.Service != "" {
		opts = append(opts, zap.Fields(zap.String("service", cfg.Service)))
	}

	logger := zap.New(core, opts...)
	cleanup := func() {
		_ = logger.Sync()
		closeSink()
	}
	return logger, cleanup, nil
}

func encoder(format string) zapcore.Encoder {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "text" {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(encCfg)
	}
	return zapcore.NewJSONEncoder(encCfg)
}

func writer(cfg config.LoggingConfig) (zapcore.WriteSyncer, func(), error) {
	switch cfg.Output {
	case "stderr":
		return zapcore.Lock(os.Stderr), func() {}, nil
	case "file":
		if cfg.Rotation.Enabled {
			w := &lumberjack.Logger{
				Filename:   cfg.FilePath,
				MaxSize:    cfg.Rotation.MaxSize,
				MaxBackups: cfg.Rotation.MaxBackups,
				MaxAge:     cfg.Rotation.MaxAge,
				Compress:   cfg.Rotation.Compress,
			}
			return zapcore.AddSync(w), func() { _ = w.Close() }, nil
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return zapcore.Lock(f), func() { _ = f.Close() }, nil
	default:
		return zapcore.Lock(os.Stdout), func() {}, nil
	}
}
