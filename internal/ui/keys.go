package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Run       key.Binding
	Repair    key.Binding
	Cases     key.Binding
	Save      key.Binding
	CopyCode  key.Binding
	CopyLog   key.Binding
	ClearLog  key.Binding
	FocusNext key.Binding
	Help      key.Binding
	Quit      key.Binding
	QuitLog   key.Binding
}

// DefaultKeyMap binds actions to control chords so they work while the
// editor has focus. Plain-letter bindings only apply to the log panel.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Run: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("^r", "run"),
		),
		Repair: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("^t", "auto-repair"),
		),
		Cases: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("^o", "test cases"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^s", "save"),
		),
		CopyCode: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("^y", "copy code"),
		),
		CopyLog: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy log"),
		),
		ClearLog: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("^l", "clear log"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("Tab", "switch panel"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("^c", "quit"),
		),
		QuitLog: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}
