// Package logging builds the diagnostic logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const permission = 0o644

// Build collects logger options.
type Build struct {
	writer io.Writer
	path   string
	level  string
}

// Logger is a built logger and the file it writes to, if any.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// New starts a logger that writes to stderr at the warn level.
func New() *Build {
	return &Build{writer: os.Stderr, level: "warn"}
}

// ToWriter sends logs to w.
func (b *Build) ToWriter(w io.Writer) *Build {
	b.writer = w
	return b
}

// ToPath appends logs to the file at path. An empty path keeps the writer.
func (b *Build) ToPath(path string) *Build {
	b.path = path
	return b
}

// Level sets the minimum level: debug, info, warn, error, or disabled.
func (b *Build) Level(level string) *Build {
	b.level = level
	return b
}

// Make opens the log file, if any, and returns the logger.
func (b *Build) Make() (*Logger, error) {
	level, err := parseLevel(b.level)
	if err != nil {
		return nil, err
	}

	logger := &Logger{}
	writer := b.writer
	if b.path != "" {
		if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		logger.file, err = os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		writer = zerolog.SyncWriter(logger.file)
	}
	if writer == nil {
		writer = io.Discard
	}

	logger.Logger = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return logger, nil
}

// Close closes the log file, if one was opened.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func parseLevel(level string) (zerolog.Level, error) {
	switch level {
	case "", "warn":
		return zerolog.WarnLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "disabled":
		return zerolog.Disabled, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
	}
}
