package session

import (
	"sync"

	"github.com/google/uuid"
)

// State owns the single code buffer and the running gate. The buffer is only
// ever replaced whole.
type State struct {
	mu       sync.RWMutex
	id       string
	code     string
	running  bool
	changeCh chan struct{}
}

func NewState(code string) *State {
	return &State{
		id:       uuid.New().String(),
		code:     code,
		changeCh: make(chan struct{}, 1),
	}
}

// ID identifies the session in log output.
func (s *State) ID() string {
	return s.id
}

func (s *State) Code() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.code
}

// SetCode replaces the buffer wholesale.
func (s *State) SetCode(code string) {
	s.mu.Lock()
	changed := s.code != code
	s.code = code
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

func (s *State) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *State) SetRunning(running bool) {
	s.mu.Lock()
	changed := s.running != running
	s.running = running
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// TryStart closes the gate if it is open and reports whether it did.
func (s *State) TryStart() bool {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return false
	}
	s.running = true
	s.mu.Unlock()
	s.notify()
	return true
}

// Changes signals (coalesced) that the buffer or gate changed.
func (s *State) Changes() <-chan struct{} {
	return s.changeCh
}

func (s *State) notify() {
	select {
	case s.changeCh <- struct{}{}:
	default:
	}
}
