// Package logging builds the leveled loggers injected into the scanner,
// loader, and catalog components. Components never reach for a package-level
// logger; they receive one explicitly at construction time.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// New creates a logger with timestamp formatting that writes to w and
// filters messages at the specified level.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// Discard returns a logger that drops everything. Used by tests and as a
// nil-guard default.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
