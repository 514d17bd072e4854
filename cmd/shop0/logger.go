package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/garrettladley/shop0/internal/config"
	"github.com/garrettladley/shop0/internal/xslog"
)

// newLogger writes to cfg.LogFile when set, else stderr so stdout stays
// clean for command output. The returned func closes the file.
func newLogger(cfg config.Config) (*slog.Logger, func(), error) {
	if cfg.LogFile == "" {
		return xslog.NewLogger(os.Stderr, cfg.LogLevel), func() {}, nil
	}

	logger, closer, err := xslog.NewFileLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", cfg.LogFile, err)
	}
	return logger, func() { _ = closer.Close() }, nil
}

func readConfig() (config.Config, *slog.Logger, func(), error) {
	cfg, err := config.Read()
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("failed to read config: %w", err)
	}
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	slog.SetDefault(logger)
	return cfg, logger, closeLog, nil
}
