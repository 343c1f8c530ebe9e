// Package watch keeps an opened source file and the session buffer in sync.
package watch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/justinpbarnett/autodebug/internal/logging"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 100 * time.Millisecond

// Event reports that the file changed on disk.
type Event struct {
	Path    string
	Content string
}

// File watches a single source file. The parent directory is watched rather
// than the file itself so atomic saves (write temp, rename over) are seen.
type File struct {
	path      string
	fsWatcher *fsnotify.Watcher
	events    chan Event
	done      chan struct{}
	debounce  time.Duration
	logger    *logrus.Entry

	mu        sync.Mutex
	timer     *time.Timer
	lastSaved string
	saved     bool
	stopped   bool
}

// Option configures a File.
type Option func(*File)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(f *File) { f.debounce = d }
}

// New prepares a watcher for path. Call Start to begin receiving events.
func New(path string, opts ...Option) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	f := &File{
		path:      abs,
		fsWatcher: fsWatcher,
		events:    make(chan Event, 16),
		done:      make(chan struct{}),
		debounce:  DefaultDebounce,
		logger:    logging.NewLogger("watch").WithField("path", abs),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Path is the absolute path being watched.
func (f *File) Path() string {
	return f.path
}

// Events delivers debounced changes. Changes that match the last Save are
// not reported.
func (f *File) Events() <-chan Event {
	return f.events
}

// Read returns the current file contents. A missing file reads as empty.
func (f *File) Read() (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", f.path, err)
	}
	return string(data), nil
}

// Save writes code to the file and suppresses the echo it causes.
func (f *File) Save(code string) error {
	f.mu.Lock()
	f.lastSaved = code
	f.saved = true
	f.mu.Unlock()

	if err := os.WriteFile(f.path, []byte(code), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", f.path, err)
	}
	f.logger.WithField("bytes", len(code)).Debug("saved buffer")
	return nil
}

// Start begins watching.
func (f *File) Start() error {
	if err := f.fsWatcher.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(f.path), err)
	}
	go f.processEvents()
	return nil
}

// Stop ends watching. Pending debounced events are dropped.
func (f *File) Stop() {
	f.mu.Lock()
	if f.stopped {
		f.mu.Unlock()
		return
	}
	f.stopped = true
	if f.timer != nil {
		f.timer.Stop()
	}
	f.mu.Unlock()

	close(f.done)
	_ = f.fsWatcher.Close()
}

func (f *File) processEvents() {
	for {
		select {
		case <-f.done:
			return
		case event, ok := <-f.fsWatcher.Events:
			if !ok {
				return
			}
			f.handleEvent(event)
		case err, ok := <-f.fsWatcher.Errors:
			if !ok {
				return
			}
			f.logger.WithError(err).Warn("watcher error")
		}
	}
}

func (f *File) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != f.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped {
		return
	}
	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.debounce, f.fire)
}

func (f *File) fire() {
	content, err := f.Read()
	if err != nil {
		f.logger.WithError(err).Warn("reading changed file")
		return
	}

	f.mu.Lock()
	if f.stopped || (f.saved && content == f.lastSaved) {
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()

	f.logger.WithField("bytes", len(content)).Debug("file changed")
	select {
	case f.events <- Event{Path: f.path, Content: content}:
	case <-f.done:
	}
}
