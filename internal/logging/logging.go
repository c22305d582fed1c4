// Package logging builds the file logger used while the TUI owns the
// terminal.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultPath is used when no log file is configured.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "rtop.log")
}

// Open returns a logger appending to path (DefaultPath when empty) and a
// closer for the underlying file.
func Open(path string, debug bool) (*log.Logger, io.Closer, error) {
	if path == "" {
		path = DefaultPath()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return New(f, debug), f, nil
}

// New returns a logfmt logger writing to w.
func New(w io.Writer, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "rtop",
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       log.LogfmtFormatter,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
