// Package logging builds the application logger from configuration. The
// dashboard owns the terminal while running, so interactive sessions log
// to a file rather than stderr.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction.
type Options struct {
	Level   string // debug, info, warn or error; invalid values mean info
	File    string // log file path; empty keeps the stderr default
	Verbose bool   // force debug regardless of Level

	// Interactive routes output to File so log lines never corrupt the
	// TUI. Non-interactive commands keep stderr.
	Interactive bool
}

// New constructs a production zap logger per the options.
func New(opts Options) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()

	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	if opts.Interactive && opts.File != "" {
		cfg.OutputPaths = []string{opts.File}
		cfg.ErrorOutputPaths = []string{opts.File}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
