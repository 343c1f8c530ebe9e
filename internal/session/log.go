package session

import (
	"sync"
	"time"
)

const DefaultTimestampFormat = "15:04:05"

// Log is the append-only, clearable record of user-visible events.
type Log struct {
	emitMu      sync.Mutex // serializes Append so subscribers see append order
	mu          sync.RWMutex
	entries     []Entry
	subscribers []func(Entry)
	changeCh    chan struct{}
	format      string
	now         func() time.Time
}

type LogOption func(*Log)

// WithTimestampFormat sets the time layout used for Entry.Timestamp.
func WithTimestampFormat(layout string) LogOption {
	return func(l *Log) {
		if layout != "" {
			l.format = layout
		}
	}
}

// WithClock overrides the capture clock.
func WithClock(now func() time.Time) LogOption {
	return func(l *Log) { l.now = now }
}

func NewLog(opts ...LogOption) *Log {
	l := &Log{
		changeCh: make(chan struct{}, 1),
		format:   DefaultTimestampFormat,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append records a new entry at the end of the log, stamping it with the
// current time.
func (l *Log) Append(typ EntryType, content, details string) Entry {
	l.emitMu.Lock()
	defer l.emitMu.Unlock()

	at := l.now()
	e := Entry{
		Type:      typ,
		Content:   content,
		Details:   details,
		Timestamp: at.Format(l.format),
		At:        at,
	}

	l.mu.Lock()
	l.entries = append(l.entries, e)
	subs := make([]func(Entry), len(l.subscribers))
	copy(subs, l.subscribers)
	l.mu.Unlock()

	for _, fn := range subs {
		fn(e)
	}
	l.notify()
	return e
}

func (l *Log) Info(content string) Entry    { return l.Append(EntryInfo, content, "") }
func (l *Log) Success(content string) Entry { return l.Append(EntrySuccess, content, "") }
func (l *Log) Error(content string) Entry   { return l.Append(EntryError, content, "") }

// Clear discards every entry at once. Clearing an empty log is a no-op
// apart from the change notification.
func (l *Log) Clear() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
	l.notify()
}

// Entries returns a copy of the log, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Subscribe registers fn to be called with every appended entry, in append
// order, outside the log's data lock. fn must not append to the log.
func (l *Log) Subscribe(fn func(Entry)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subscribers = append(l.subscribers, fn)
}

// Changes signals (coalesced) that the log was appended to or cleared.
func (l *Log) Changes() <-chan struct{} {
	return l.changeCh
}

func (l *Log) notify() {
	select {
	case l.changeCh <- struct{}{}:
	default:
	}
}
