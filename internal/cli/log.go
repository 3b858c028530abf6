// Package cli implements the spritepack command-line interface.
//
// The CLI reads a sprite manifest (CSV, Excel, TOML or DXF), packs the
// sprites onto one canvas and writes the layout in the requested formats.
// It is built with cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - pack: Import a manifest, pack it and write the outputs
//   - export: Write the outputs of a saved project without repacking
//   - inspect: Check a coordinate file and print its canvas size
//   - config: Show, locate or initialise the configuration file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports every placement the packer makes. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logLevel resolves the configured level name. verbose always wins; an
// empty or unknown name falls back to info.
func logLevel(name string, verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// progress logs the elapsed time of an operation when it completes.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Packed 42 sprites (1.234s)".
func (p *progress) done(msg string, keyvals ...interface{}) {
	p.logger.Info(msg, append([]interface{}{"took", time.Since(p.start).Round(time.Millisecond)}, keyvals...)...)
}

type ctxKey int

const (
	loggerKey ctxKey = iota
	settingsKey
)

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
