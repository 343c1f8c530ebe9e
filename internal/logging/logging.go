// Package logging configures the process-wide logrus logger. The TUI owns the
// terminal, so log output goes to a file unless told otherwise.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/justinpbarnett/autodebug/internal/config"
)

var (
	mu   sync.RWMutex
	base = newDiscardLogger()
)

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// DefaultPath returns the log file used when config leaves log.file empty.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "autodebug", "autodebug.log")
}

// Setup points the base logger at the configured file and level. The returned
// closer restores the discard logger and releases the file; callers defer it.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	path := cfg.File
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := logrus.New()
	l.SetOutput(f)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	SetBase(l)
	return closerFunc(func() error {
		mu.Lock()
		if base == l {
			base = newDiscardLogger()
		}
		mu.Unlock()
		return f.Close()
	}), nil
}

type closerFunc func() error

func (fn closerFunc) Close() error { return fn() }

// SetBase swaps the logger that NewLogger derives entries from.
func SetBase(l *logrus.Logger) {
	mu.Lock()
	base = l
	mu.Unlock()
}

// NewLogger returns an entry tagged with the component name.
func NewLogger(component string) *logrus.Entry {
	mu.RLock()
	defer mu.RUnlock()
	return base.WithField("component", component)
}
