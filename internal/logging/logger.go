// Package logging builds the zap loggers used across shopsense. The TUI
// owns stdout, so its logger always writes to a file under the config
// directory; one-shot commands get a console logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"shopsense/internal/config"
)

// Console builds a production logger writing to stderr.
func Console(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = levelFor(cfg.Level, verbose)
	zc.OutputPaths = []string{"stderr"}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// File builds a logger writing to the configured log file, defaulting to
// shopsense.log in the config directory.
func File(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	path := cfg.File
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "shopsense.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	zc.Level = levelFor(cfg.Level, verbose)
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func levelFor(name string, verbose bool) zap.AtomicLevel {
	if verbose {
		return zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		level = zapcore.InfoLevel
	}
	return zap.NewAtomicLevelAt(level)
}
