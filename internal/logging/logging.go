// Package logging builds the charmbracelet/log loggers used by the server
// and the CLI.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"taskboard/internal/config"
)

// Prefix is prepended to every log line.
const Prefix = "taskboard"

// Options holds logger configuration.
type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	Prefix          string
}

// DefaultOptions returns info-level text logging with timestamps.
func DefaultOptions() Options {
	return Options{
		Level:           log.InfoLevel,
		Formatter:       log.TextFormatter,
		ReportTimestamp: true,
		Prefix:          Prefix,
	}
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}

// NewFromConfig creates a stderr logger from the logging configuration.
// Debug mode, from the config or TASKBOARD_DEBUG, forces the debug level.
func NewFromConfig(cfg config.LoggingConfig) *log.Logger {
	opts := DefaultOptions()
	opts.Level = ParseLevel(cfg.Level)
	opts.Formatter = ParseFormatter(cfg.Format)
	if cfg.Debug || DebugEnabled() {
		opts.Level = log.DebugLevel
	}
	return New(os.Stderr, opts)
}

// NewTestLogger logs everything to w without timestamps or colour.
func NewTestLogger(w io.Writer) *log.Logger {
	return New(w, Options{
		Level:     log.DebugLevel,
		Formatter: log.LogfmtFormatter,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return New(io.Discard, Options{Level: log.FatalLevel})
}

// ParseLevel parses a level name. Unknown names mean info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a formatter name. Unknown names mean text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
