package ui

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/justinpbarnett/autodebug/internal/backend"
	"github.com/justinpbarnett/autodebug/internal/config"
	"github.com/justinpbarnett/autodebug/internal/ui/clipboard"
)

const waitDuration = 3 * time.Second

// fakeBackend answers Run, Repair and Health from canned values.
type fakeBackend struct {
	mu         sync.Mutex
	runResult  *backend.RunResult
	runErr     error
	transcript *backend.Transcript
	healthy    bool
	runs       int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		runResult: &backend.RunResult{Success: true, Output: "1"},
		transcript: &backend.Transcript{History: []backend.RepairStep{{
			Iteration: 1,
			Status:    "patched",
			Execution: &backend.Execution{Success: false, Error: "E"},
			Patch:     &backend.PatchResult{PatchApplied: true, Explanation: "fix", Diff: "+a\n-b", NewCode: "NEW"},
		}}},
		healthy: true,
	}
}

func (f *fakeBackend) Run(context.Context, string) (*backend.RunResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs++
	return f.runResult, f.runErr
}

func (f *fakeBackend) Repair(context.Context, string) (*backend.Transcript, error) {
	return f.transcript, nil
}

func (f *fakeBackend) Health(context.Context) (*backend.Health, error) {
	if !f.healthy {
		return nil, errors.New("connection refused")
	}
	return &backend.Health{Status: "ok"}, nil
}

type testEnv struct {
	app  App
	fb   *fakeBackend
	clip *clipboard.Recorder
}

func newTestEnv(tb testing.TB) *testEnv {
	tb.Helper()
	cfg := config.DefaultConfig()
	interval := 5
	cfg.Replay.IntervalMS = &interval
	fb := newFakeBackend()
	clip := &clipboard.Recorder{}
	a := NewApp(&cfg, Options{Backend: fb, Clipboard: clip.Write})
	tb.Cleanup(a.Executor().Shutdown)
	return &testEnv{app: a, fb: fb, clip: clip}
}

// appAdapter keeps the latest App value so tests can inspect it after the
// program has processed messages.
type appAdapter struct {
	mu  sync.Mutex
	app App
}

func (a *appAdapter) Init() tea.Cmd {
	return a.app.Init()
}

func (a *appAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	a.mu.Lock()
	defer a.mu.Unlock()
	m, cmd := a.app.Update(msg)
	a.app = m.(App)
	return a, cmd
}

func (a *appAdapter) View() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.app.View()
}

func (a *appAdapter) snapshot() App {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.app
}

func startProgram(tb testing.TB, env *testEnv) (*teatest.TestModel, *appAdapter) {
	tb.Helper()
	adapter := &appAdapter{app: env.app}
	tm := teatest.NewTestModel(tb, adapter, teatest.WithInitialTermSize(120, 36))
	tm.Send(tea.WindowSizeMsg{Width: 120, Height: 36})
	return tm, adapter
}

// waitForContains waits until the output contains the given substring.
func waitForContains(tb testing.TB, tm *teatest.TestModel, substr string) {
	tb.Helper()
	teatest.WaitFor(
		tb,
		tm.Output(),
		func(bts []byte) bool { return bytes.Contains(bts, []byte(substr)) },
		teatest.WithDuration(waitDuration),
	)
}

// waitForAll waits until the output seen so far contains every substring.
// Each WaitFor consumes the output it reads.
func waitForAll(tb testing.TB, tm *teatest.TestModel, substrs ...string) {
	tb.Helper()
	teatest.WaitFor(
		tb,
		tm.Output(),
		func(bts []byte) bool {
			for _, s := range substrs {
				if !bytes.Contains(bts, []byte(s)) {
					return false
				}
			}
			return true
		},
		teatest.WithDuration(waitDuration),
	)
}

func quit(tb testing.TB, tm *teatest.TestModel) {
	tb.Helper()
	tm.Send(tea.QuitMsg{})
	tm.FinalModel(tb, teatest.WithFinalTimeout(waitDuration))
}
