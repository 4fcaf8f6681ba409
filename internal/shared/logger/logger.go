package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger is an alias used by components for dependency injection.
type Logger = log.Logger

// New returns a leveled logger with a consistent service prefix.
func New(service string) *Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          service,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly + ".000000",
		Level:           log.InfoLevel,
	})
}

// Discard returns a logger that drops everything, for tests and embedding.
func Discard() *Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel + 1})
}

// SetDebug toggles debug output on l.
func SetDebug(l *Logger, on bool) {
	if on {
		l.SetLevel(log.DebugLevel)
		return
	}
	l.SetLevel(log.InfoLevel)
}
