// Package rtlog provides the runtime's structured diagnostic logging.
//
// Logging is discarded by default; call Init to send it somewhere. This
// mirrors the teacher's own logger package, minus the log-file rotation a
// library with no disk footprint has no use for.
package rtlog

import (
	"io"
	"log/slog"
	"os"
)

// L is the package logger. It discards everything until Init is called.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures Init.
type Options struct {
	// Writer receives log output. Defaults to os.Stderr when nil and
	// Enabled is true.
	Writer io.Writer
	// Enabled turns logging on. When false, L discards all output.
	Enabled bool
	// Level is the minimum level logged. Defaults to slog.LevelInfo.
	Level slog.Level
}

// Init configures the package logger.
func Init(opts Options) {
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	L = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: opts.Level}))
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
