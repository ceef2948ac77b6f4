// Package logging builds the phuslu loggers used across threadscope. The
// terminal belongs to the TUI, so logs go to a rotating file or nowhere.
package logging

import (
	"io"
	"strings"

	"github.com/phuslu/log"

	"github.com/nixlim/threadscope/internal/config"
)

// Logging owns the shared writer. Component loggers share it, so Close
// must only be called once every component is done.
type Logging struct {
	level  log.Level
	writer log.Writer
	file   *log.FileWriter
}

// Setup creates the writer described by cfg. With no file configured every
// logger it hands out discards its output.
func Setup(cfg config.LogConfig) *Logging {
	l := &Logging{level: ParseLevel(cfg.Level)}

	if cfg.File == "" {
		l.writer = &log.IOWriter{Writer: io.Discard}
		return l
	}

	l.file = &log.FileWriter{
		Filename:     cfg.File,
		FileMode:     0o644,
		MaxSize:      int64(cfg.MaxSizeMB) * 1024 * 1024,
		MaxBackups:   cfg.MaxBackups,
		EnsureFolder: true,
		LocalTime:    true,
	}
	l.writer = l.file
	return l
}

// Discard returns a Logging that drops everything.
func Discard() *Logging {
	return &Logging{level: log.ErrorLevel, writer: &log.IOWriter{Writer: io.Discard}}
}

// Component returns a logger tagged with component=name.
func (l *Logging) Component(name string) log.Logger {
	return log.Logger{
		Level:   l.level,
		Writer:  l.writer,
		Context: log.NewContext(nil).Str("component", name).Value(),
	}
}

// Level returns the configured level.
func (l *Logging) Level() log.Level {
	return l.level
}

// Close flushes and closes the log file, if any.
func (l *Logging) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel converts a level name to a log.Level. Unknown names map to info.
func ParseLevel(s string) log.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
