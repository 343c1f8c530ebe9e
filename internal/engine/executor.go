// Package engine drives Run and Repair actions against the backend and turns
// their results into session log entries and buffer updates.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/justinpbarnett/autodebug/internal/backend"
	"github.com/justinpbarnett/autodebug/internal/logging"
	"github.com/justinpbarnett/autodebug/internal/session"
)

// Backend is the subset of the service client the executor needs.
type Backend interface {
	Run(ctx context.Context, code string) (*backend.RunResult, error)
	Repair(ctx context.Context, code string) (*backend.Transcript, error)
}

type Executor struct {
	client   Backend
	log      *session.Log
	state    *session.State
	interval time.Duration
	logger   *logrus.Entry

	mu           sync.Mutex
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	shuttingDown bool
}

// NewExecutor wires an executor to one session. interval is the pacing delay
// between presented repair steps.
func NewExecutor(client Backend, log *session.Log, state *session.State, interval time.Duration) *Executor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Executor{
		client:   client,
		log:      log,
		state:    state,
		interval: interval,
		logger:   logging.NewLogger("engine").WithField("session", state.ID()),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Run executes code once and records the outcome. It blocks until the
// request settles; the gate is released on every path.
func (e *Executor) Run(ctx context.Context, code string) Outcome {
	if !e.state.TryStart() {
		return OutcomeBusy
	}
	defer e.state.SetRunning(false)

	e.log.Info(msgRunStart)
	res, err := e.client.Run(ctx, code)
	if err != nil {
		return e.recordFailure(err, msgConnectFailed, "run")
	}

	if res.Success {
		e.log.Success(fmt.Sprintf("Output:\n%s", res.Output))
		return OutcomeSuccess
	}
	e.log.Error(fmt.Sprintf("Error:\n%s", res.Error))
	return OutcomeServiceFailure
}

// Repair fetches a repair transcript for code and schedules its paced replay.
// On success the returned Replay holds the gate until it drains, so a new
// Run or Repair cannot interleave with pending steps. On failure the replay
// is nil and the gate has already been released.
func (e *Executor) Repair(ctx context.Context, code string) (*Replay, Outcome) {
	if e.closed() {
		return nil, OutcomeCancelled
	}
	if !e.state.TryStart() {
		return nil, OutcomeBusy
	}

	e.log.Info(msgRepairStart)
	tr, err := e.client.Repair(ctx, code)
	if err != nil {
		outcome := e.recordFailure(err, msgRepairFailed, "repair")
		e.state.SetRunning(false)
		return nil, outcome
	}
	arrival := time.Now()

	r := newReplay(tr.History, arrival, e.interval, e.presentStep)

	e.mu.Lock()
	if e.shuttingDown {
		e.mu.Unlock()
		e.log.Error(msgReplayCancelled)
		e.state.SetRunning(false)
		r.finish()
		return r, OutcomeCancelled
	}
	replayCtx := e.ctx
	e.wg.Add(1)
	e.mu.Unlock()

	e.logger.WithField("steps", len(tr.History)).Info("transcript received")

	go func() {
		defer e.wg.Done()
		if err := r.run(replayCtx); err != nil {
			e.logger.WithField("presented", r.Presented()).Info("replay cancelled")
			e.log.Error(msgReplayCancelled)
		} else {
			e.logger.WithField("steps", r.Steps()).Info("replay drained")
		}
		e.state.SetRunning(false)
		r.finish()
	}()
	return r, OutcomeSuccess
}

// presentStep appends the entries for one repair step and applies its patch.
func (e *Executor) presentStep(step backend.RepairStep) {
	e.log.Info(fmt.Sprintf("Iteration %d: %s", step.Iteration, step.Status))

	if ex := step.Execution; ex != nil {
		if ex.Success {
			e.log.Success(fmt.Sprintf("Execution Output: %s", ex.Output))
		} else {
			e.log.Error(fmt.Sprintf("Execution Error: %s", ex.Error))
		}
	}

	switch {
	case step.Applied():
		e.log.Append(session.EntrySuccess, fmt.Sprintf("Patch Applied: %s", step.Patch.Explanation), step.Patch.Diff)
		e.state.SetCode(step.Patch.NewCode)
	case step.Status == backend.StatusNoPatchFound:
		e.log.Error(msgNoPatchFound)
	}

	e.logger.WithFields(logrus.Fields{
		"iteration": step.Iteration,
		"status":    step.Status,
		"applied":   step.Applied(),
	}).Debug("presented step")
}

// recordFailure converts a client error into exactly one log entry.
// Transport detail is logged but never shown.
func (e *Executor) recordFailure(err error, transportMsg, action string) Outcome {
	if errors.Is(err, backend.ErrMalformedResponse) {
		e.logger.WithError(err).WithField("action", action).Warn("malformed response")
		e.log.Error(msgMalformed)
		return OutcomeMalformed
	}
	e.logger.WithError(err).WithField("action", action).Warn("request failed")
	e.log.Error(transportMsg)
	return OutcomeTransportFailure
}

func (e *Executor) closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shuttingDown
}

// Shutdown cancels pending replays and waits briefly for them to stop.
func (e *Executor) Shutdown() {
	e.mu.Lock()
	e.shuttingDown = true
	e.cancel()
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
	}
}
