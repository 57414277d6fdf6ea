// Package logger implements a logging adapter using zerolog.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.trai.ch/deps/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// DebugEnv enables debug output when set to a non-empty value.
const DebugEnv = "DEPS_DEBUG"

// Logger implements ports.Logger using zerolog.
type Logger struct {
	logger zerolog.Logger
	level  zerolog.Level
	mu     sync.RWMutex
}

// New creates a new Logger writing human-readable lines to stderr.
func New() ports.Logger {
	level := zerolog.InfoLevel
	if os.Getenv(DebugEnv) != "" {
		level = zerolog.DebugLevel
	}
	l := &Logger{level: level}
	l.logger = newZerolog(os.Stderr, level)
	return l
}

func newZerolog(w io.Writer, level zerolog.Level) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SetOutput updates the logger's output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = newZerolog(w, l.level)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug().Msg(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info().Msg(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn().Msg(msg)
}

// Error logs an error. Metadata attached with zerr.With anywhere in the
// error tree, including errors.Join branches, is written as fields.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error().Err(err).Fields(metadata(err)).Msg("operation failed")
}

// metadata collects zerr metadata from err and everything it wraps.
// The outermost value wins when a key repeats.
func metadata(err error) map[string]any {
	fields := make(map[string]any)
	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		if z, ok := err.(*zerr.Error); ok { //nolint:errorlint // each node of the tree is visited
			for k, v := range z.Metadata() {
				if _, seen := fields[k]; !seen {
					fields[k] = v
				}
			}
		}
		switch u := err.(type) { //nolint:errorlint // walking the tree by hand
		case interface{ Unwrap() []error }:
			for _, e := range u.Unwrap() {
				walk(e)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return fields
}
