package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/justinpbarnett/autodebug/internal/backend"
)

// Replay presents a transcript one step at a time. Step i is due at
// arrival + i*interval; deadlines are fixed up front, so a slow step never
// pushes later ones back. A single goroutine drains the steps in order.
type Replay struct {
	steps     []backend.RepairStep
	arrival   time.Time
	interval  time.Duration
	present   func(backend.RepairStep)
	presented atomic.Int32
	done      chan struct{}
}

func newReplay(steps []backend.RepairStep, arrival time.Time, interval time.Duration, present func(backend.RepairStep)) *Replay {
	return &Replay{
		steps:    steps,
		arrival:  arrival,
		interval: interval,
		present:  present,
		done:     make(chan struct{}),
	}
}

// Due returns when step i is scheduled to be presented.
func (r *Replay) Due(i int) time.Time {
	return r.arrival.Add(time.Duration(i) * r.interval)
}

// Arrival is the instant the transcript was received.
func (r *Replay) Arrival() time.Time {
	return r.arrival
}

// Steps is the transcript length.
func (r *Replay) Steps() int {
	return len(r.steps)
}

// Presented is how many steps have been presented so far.
func (r *Replay) Presented() int {
	return int(r.presented.Load())
}

// Done is closed once every step has been presented or the replay was cancelled.
func (r *Replay) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until Done is closed.
func (r *Replay) Wait() {
	<-r.done
}

// run presents every step in order. The caller closes done via finish once
// it has released whatever the replay was holding.
func (r *Replay) run(ctx context.Context) error {
	for i, step := range r.steps {
		if err := r.waitUntil(ctx, r.Due(i)); err != nil {
			return err
		}
		r.present(step)
		r.presented.Add(1)
	}
	return nil
}

func (r *Replay) waitUntil(ctx context.Context, due time.Time) error {
	wait := time.Until(due)
	if wait <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (r *Replay) finish() {
	close(r.done)
}
