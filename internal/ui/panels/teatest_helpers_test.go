package panels

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/justinpbarnett/autodebug/internal/session"
)

// panelAdapter wraps panel types that use typed Update signatures into
// a proper tea.Model so they can be used with teatest.
type panelAdapter struct {
	view     func() string
	updateFn func(tea.Msg) tea.Cmd
}

func (a panelAdapter) Init() tea.Cmd                           { return nil }
func (a panelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return a, a.updateFn(msg) }
func (a panelAdapter) View() string                            { return a.view() }

func wrapLogView(lv *LogView) tea.Model {
	return panelAdapter{
		view: func() string { return lv.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newLV, cmd := lv.Update(msg)
			*lv = newLV
			return cmd
		},
	}
}

func wrapEditor(e *Editor) tea.Model {
	return panelAdapter{
		view: func() string { return e.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newE, cmd := e.Update(msg)
			*e = newE
			return cmd
		},
	}
}

// wrapStatusBar has a no-op update since StatusBar takes no input.
func wrapStatusBar(sb *StatusBar) tea.Model {
	return panelAdapter{
		view:     func() string { return sb.View() },
		updateFn: func(tea.Msg) tea.Cmd { return nil },
	}
}

func wrapHelpOverlay(h *HelpOverlay) tea.Model {
	return panelAdapter{
		view: func() string { return h.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newH, cmd := h.Update(msg)
			*h = newH
			return cmd
		},
	}
}

// wrapCasePicker records the message the picker finished with.
func wrapCasePicker(m *CasePickerModal, result *tea.Msg) tea.Model {
	return panelAdapter{
		view: func() string {
			if m == nil {
				return "closed"
			}
			return m.View()
		},
		updateFn: func(msg tea.Msg) tea.Cmd {
			if m == nil {
				return nil
			}
			next, cmd := m.Update(msg)
			if next == nil && cmd != nil {
				*result = cmd()
				m = nil
				return nil
			}
			return cmd
		},
	}
}

// waitDuration is the standard timeout for WaitFor calls in tests.
const waitDuration = 3 * time.Second

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

func testEntries() []session.Entry {
	return []session.Entry{
		{Type: session.EntryInfo, Content: "Starting Autonomous Repair Loop...", Timestamp: "10:00:00"},
		{Type: session.EntryInfo, Content: "Iteration 1: patched", Timestamp: "10:00:01"},
		{Type: session.EntryError, Content: "Execution Error: E", Timestamp: "10:00:01"},
		{Type: session.EntrySuccess, Content: "Patch Applied: fix", Details: "+a\n-b\n c", Timestamp: "10:00:01"},
	}
}

func newTestModel(tb testing.TB, m tea.Model, w, h int) *teatest.TestModel {
	tb.Helper()
	return teatest.NewTestModel(tb, m, teatest.WithInitialTermSize(w, h))
}

// quit stops the program and waits for it to exit.
func quit(tb testing.TB, tm *teatest.TestModel) {
	tb.Helper()
	tm.Send(tea.QuitMsg{})
	tm.FinalModel(tb, teatest.WithFinalTimeout(waitDuration))
}
