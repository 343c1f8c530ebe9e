package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestAppInitialRender(t *testing.T) {
	env := newTestEnv(t)
	tm, _ := startProgram(t, env)

	waitForAll(t, tm, "Ready to debug...", "backend ok")
	quit(t, tm)
}

func TestAppRunFlow(t *testing.T) {
	env := newTestEnv(t)
	tm, adapter := startProgram(t, env)
	waitForContains(t, tm, "Code Editor")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlR})
	waitForContains(t, tm, "Output:")
	waitIdle(adapter)
	quit(t, tm)

	a := adapter.snapshot()
	if a.state.Running() {
		t.Error("expected gate released after run")
	}
	if a.log.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", a.log.Len())
	}
}

func TestAppRepairFlowVisual(t *testing.T) {
	env := newTestEnv(t)
	tm, adapter := startProgram(t, env)
	waitForContains(t, tm, "Code Editor")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlT})
	waitForContains(t, tm, "Patch Applied: fix")

	waitIdle(adapter)
	quit(t, tm)

	if got := adapter.snapshot().state.Code(); got != "NEW" {
		t.Errorf("expected patched buffer, got %q", got)
	}
}

func TestAppHelpFlow(t *testing.T) {
	env := newTestEnv(t)
	tm, _ := startProgram(t, env)
	waitForContains(t, tm, "Code Editor")

	tm.Send(tea.KeyMsg{Type: tea.KeyF1})
	waitForContains(t, tm, "Keybinds")

	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	waitForContains(t, tm, "Execution Log")
	quit(t, tm)
}

func TestAppCasePickerFlow(t *testing.T) {
	env := newTestEnv(t)
	tm, adapter := startProgram(t, env)
	waitForContains(t, tm, "Code Editor")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlO})
	waitForContains(t, tm, "Test Cases")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForContains(t, tm, "Loaded Test Case 2")
	quit(t, tm)

	if adapter.snapshot().picker != nil {
		t.Error("expected picker closed")
	}
}

func TestAppClearFlow(t *testing.T) {
	env := newTestEnv(t)
	tm, adapter := startProgram(t, env)
	waitForContains(t, tm, "Code Editor")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlR})
	waitForContains(t, tm, "Output:")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlL})
	waitForContains(t, tm, "Ready to debug...")
	quit(t, tm)

	if n := adapter.snapshot().log.Len(); n != 0 {
		t.Errorf("expected empty log, got %d entries", n)
	}
}

// waitIdle polls until the session gate is released or the wait times out.
func waitIdle(adapter *appAdapter) {
	deadline := time.Now().Add(waitDuration)
	for adapter.snapshot().state.Running() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
}
