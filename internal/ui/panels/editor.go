package panels

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/autodebug/internal/ui/border"
	"github.com/justinpbarnett/autodebug/internal/ui/styles"
)

// Editor is the code buffer surface. The buffer itself lives in the session
// state; the app mirrors it in both directions.
type Editor struct {
	textarea textarea.Model
	width    int
	height   int
	title    string
	focused  bool
	running  bool
}

func NewEditor(showLineNumbers bool) Editor {
	ta := textarea.New()
	ta.ShowLineNumbers = showLineNumbers
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle().Background(styles.SelectedRowBg)
	ta.FocusedStyle.LineNumber = styles.LineNumberStyle
	ta.BlurredStyle.LineNumber = styles.LineNumberStyle
	ta.FocusedStyle.CursorLineNumber = styles.TextSecondaryStyle
	return Editor{textarea: ta, title: "Code Editor"}
}

func (e Editor) Update(msg tea.Msg) (Editor, tea.Cmd) {
	if !e.focused {
		return e, nil
	}
	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	return e, cmd
}

func (e Editor) View() string {
	var keybinds []border.Keybind
	if e.focused {
		keybinds = []border.Keybind{
			{Key: "^r", Label: " run"},
			{Key: "^t", Label: " repair"},
			{Key: "^o", Label: " cases"},
			{Key: "^s", Label: " save"},
			{Key: "^y", Label: " copy"},
		}
	}
	var badge string
	if e.running {
		badge = lipgloss.NewStyle().Foreground(styles.StatusRunning).Render("● running")
	}
	p := border.Panel{
		Title:    e.title,
		Badge:    badge,
		Keybinds: keybinds,
		Width:    e.width,
		Height:   e.height,
		Focused:  e.focused,
	}
	return p.Render(e.textarea.View())
}

// SetCode replaces the buffer unless it already holds code, so the cursor
// survives the echo of the user's own edits.
func (e *Editor) SetCode(code string) {
	if e.textarea.Value() == code {
		return
	}
	e.textarea.SetValue(code)
}

func (e Editor) Value() string {
	return e.textarea.Value()
}

func (e *Editor) SetTitle(title string) {
	if title != "" {
		e.title = title
	}
}

func (e *Editor) SetRunning(running bool) {
	e.running = running
}

func (e *Editor) SetSize(w, h int) {
	e.width = w
	e.height = h
	innerW, innerH := w-2, h-2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}
	e.textarea.SetWidth(innerW)
	e.textarea.SetHeight(innerH)
}

func (e *Editor) SetFocused(focused bool) {
	e.focused = focused
	if focused {
		e.textarea.Focus()
	} else {
		e.textarea.Blur()
	}
}

func (e Editor) Focused() bool {
	return e.focused
}
