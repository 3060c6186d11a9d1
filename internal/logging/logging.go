// Package logging builds the zap logger used by the itinerary command.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the level, encoding and destination of the logger.
type Options struct {
	Level      string // DEBUG, INFO, WARN, ERROR
	Format     string // json or text
	OutputPath string // stdout, stderr or a file path
}

// New returns a logger for opts and a function that flushes it and closes
// any file it opened.
func New(opts Options) (*zap.Logger, func(), error) {
	sink, closeSink, err := buildWriteSyncer(opts.OutputPath)
	if err != nil {
		return nil, nil, err
	}

	core := zapcore.NewCore(buildEncoder(opts.Format), sink, ParseLevel(opts.Level))
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	cleanup := func() {
		_ = logger.Sync()
		closeSink()
	}
	return logger, cleanup, nil
}

// ParseLevel maps a level name to a zap level, defaulting to INFO.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func buildEncoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder

	if strings.EqualFold(format, "text") {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}

func buildWriteSyncer(path string) (zapcore.WriteSyncer, func(), error) {
	switch strings.ToLower(strings.TrimSpace(path)) {
	case "", "stderr":
		return zapcore.Lock(os.Stderr), func() {}, nil
	case "stdout":
		return zapcore.Lock(os.Stdout), func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	return zapcore.AddSync(file), func() { _ = file.Close() }, nil
}
