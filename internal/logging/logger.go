// Package logging writes timestamped diagnostic lines for tasklist.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Logger appends timestamped lines to a writer, normally the log file in the
// config directory.
// A nil *Logger is valid and discards everything.
type Logger struct {
	w      io.Writer
	closer io.Closer
	now    func() time.Time
}

// New returns a logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{w: w, now: time.Now}
}

// Open creates (or reuses) the log file at path.
func Open(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{w: f, closer: f, now: time.Now}, nil
}

// Close releases the file handle, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Printf writes a single timestamped line.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.w == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	line = strings.TrimRight(line, "\n")
	timestamp := l.now().Format(time.RFC3339)
	fmt.Fprintf(l.w, "[%s] %s\n", timestamp, line)
}
