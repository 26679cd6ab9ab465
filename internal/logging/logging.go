// (c) 2024, adapted for this module, grounded on the teacher's own
// gopkg.in/natefinch/lumberjack.v2 dependency (log rotation) and the
// github.com/ethereum/go-ethereum/log structured logger the whole
// geth/coreth/erigon family imports. See the file LICENSE for licensing
// terms.

// Package logging configures the structured logger core/state and
// cmd/evmrun use: terminal output for interactive runs, an optional
// rotating file handler for long-lived ones.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where log output goes and how verbose it is.
type Config struct {
	Level slog.Level

	// FilePath, if non-empty, tees output through a rotating file
	// handler in addition to the terminal.
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DefaultConfig logs INFO and above to the terminal only.
func DefaultConfig() Config {
	return Config{Level: slog.LevelInfo}
}

// Setup installs the configured handler as go-ethereum/log's default
// logger and returns it for callers that want a scoped child logger.
func Setup(cfg Config) log.Logger {
	var writer io.Writer = os.Stderr
	if cfg.FilePath != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    orDefault(cfg.MaxSizeMB, 100),
			MaxBackups: orDefault(cfg.MaxBackups, 5),
			MaxAge:     orDefault(cfg.MaxAgeDays, 28),
		}
		writer = io.MultiWriter(os.Stderr, rotator)
	}

	handler := log.NewTerminalHandlerWithLevel(writer, cfg.Level, false)
	logger := log.NewLogger(handler)
	log.SetDefault(logger)
	return logger
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
