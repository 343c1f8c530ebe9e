package ui

import (
	"github.com/justinpbarnett/autodebug/internal/engine"
	"github.com/justinpbarnett/autodebug/internal/ui/panels"
)

// Aliases for the message types defined in panels.

// LogUpdatedMsg is sent when the session log changes.
type LogUpdatedMsg = panels.LogUpdatedMsg

// StateUpdatedMsg is sent when the code buffer or running flag changes.
type StateUpdatedMsg = panels.StateUpdatedMsg

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg = panels.CloseModalMsg

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg = panels.ClearFlashMsg

// LoadCaseMsg replaces the buffer with a built-in case.
type LoadCaseMsg = panels.LoadCaseMsg

// RunDoneMsg carries the outcome of a Run action once it settles.
type RunDoneMsg struct {
	Outcome engine.Outcome
}

// RepairStartedMsg is sent once the transcript request settles. Replay is
// nil unless Outcome is success.
type RepairStartedMsg struct {
	Replay  *engine.Replay
	Outcome engine.Outcome
}

// ReplayDoneMsg is sent when a replay has drained or been cancelled.
type ReplayDoneMsg struct{}

// HealthMsg reports one backend probe.
type HealthMsg struct {
	OK  bool
	Err error
}

// FileChangedMsg is sent when the opened source file changed on disk.
type FileChangedMsg struct {
	Path    string
	Content string
}

// TickMsg drives the status bar spinner.
type TickMsg struct{}
