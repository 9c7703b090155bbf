// Package logging provides the shared application logger.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Level:           log.InfoLevel,
	Formatter:       log.TextFormatter,
	ReportTimestamp: false,
	Prefix:          "taskdeck",
})

// SetDebug enables debug-level logging.
func SetDebug(enabled bool) {
	if enabled {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
}

// SetOutput redirects log output. The TUI uses this to keep the terminal
// clean, pointing logs at a temp file when --debug is set or discarding
// them otherwise.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Debug logs at debug level with structured key-value fields.
func Debug(msg string, fields ...any) { logger.Debug(msg, fields...) }

// Info logs at info level with structured key-value fields.
func Info(msg string, fields ...any) { logger.Info(msg, fields...) }

// Warn logs at warn level with structured key-value fields.
func Warn(msg string, fields ...any) { logger.Warn(msg, fields...) }

// Error logs at error level with structured key-value fields.
func Error(msg string, fields ...any) { logger.Error(msg, fields...) }
