package session

import (
	"sync"
	"testing"
)

func TestStateSetCodeReplacesWholesale(t *testing.T) {
	t.Parallel()
	s := NewState("def f():\n    return 1\n")
	s.SetCode("NEW")
	if s.Code() != "NEW" {
		t.Errorf("expected buffer to equal new code exactly, got %q", s.Code())
	}
}

func TestStateIDAssigned(t *testing.T) {
	t.Parallel()
	a, b := NewState(""), NewState("")
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("expected distinct non-empty session ids, got %q and %q", a.ID(), b.ID())
	}
}

func TestStateTryStart(t *testing.T) {
	t.Parallel()
	s := NewState("")
	if !s.TryStart() {
		t.Fatal("expected first TryStart to close the gate")
	}
	if s.TryStart() {
		t.Fatal("expected second TryStart to fail while running")
	}
	if !s.Running() {
		t.Error("expected Running() to be true")
	}
	s.SetRunning(false)
	if !s.TryStart() {
		t.Error("expected TryStart to succeed after release")
	}
}

func TestStateTryStartExclusive(t *testing.T) {
	t.Parallel()
	s := NewState("")

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.TryStart() {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if winners != 1 {
		t.Errorf("expected exactly one TryStart winner, got %d", winners)
	}
}

func TestStateChangesOnlyOnChange(t *testing.T) {
	t.Parallel()
	s := NewState("same")
	s.SetCode("same")
	select {
	case <-s.Changes():
		t.Fatal("expected no notification when buffer is unchanged")
	default:
	}

	s.SetCode("different")
	select {
	case <-s.Changes():
	default:
		t.Fatal("expected notification after buffer change")
	}
}
