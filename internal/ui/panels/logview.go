package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/justinpbarnett/autodebug/internal/session"
	"github.com/justinpbarnett/autodebug/internal/ui/border"
	"github.com/justinpbarnett/autodebug/internal/ui/styles"
	"github.com/justinpbarnett/autodebug/internal/ui/text"
)

// EmptyLogText is shown before anything has been logged.
const EmptyLogText = "Ready to debug..."

const detailIndent = "    "

type LogView struct {
	viewport    viewport.Model
	width       int
	height      int
	entries     []session.Entry
	running     bool
	follow      bool
	focused     bool
	tap         DoubleTap
	scrollSpeed int
}

func NewLogView() LogView {
	return LogView{
		viewport:    viewport.New(0, 0),
		follow:      true,
		tap:         NewDoubleTap(gTapIDLogView),
		scrollSpeed: 3,
	}
}

func (l LogView) Update(msg tea.Msg) (LogView, tea.Cmd) {
	switch msg := msg.(type) {
	case GTimerExpiredMsg:
		l.tap.HandleExpiry(msg)
		return l, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "G", "end":
			l.follow = true
			l.viewport.GotoBottom()
			return l, nil
		case "g":
			fired, cmd := l.tap.Check()
			if fired {
				l.follow = false
				l.viewport.GotoTop()
			}
			return l, cmd
		case "home":
			l.follow = false
			l.viewport.GotoTop()
			return l, nil
		case "j", "down":
			l.scroll(l.step())
			return l, nil
		case "k", "up":
			l.scroll(-l.step())
			return l, nil
		case "ctrl+d", "pgdown":
			l.scroll(l.viewport.Height / 2)
			return l, nil
		case "ctrl+u", "pgup":
			l.scroll(-l.viewport.Height / 2)
			return l, nil
		}
	}
	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	l.follow = l.viewport.AtBottom()
	return l, cmd
}

func (l LogView) step() int {
	if l.scrollSpeed <= 0 {
		return 1
	}
	return l.scrollSpeed
}

func (l *LogView) scroll(delta int) {
	offset := l.viewport.YOffset + delta
	if offset < 0 {
		offset = 0
	}
	l.viewport.SetYOffset(offset)
	l.follow = l.viewport.AtBottom()
}

func (l LogView) View() string {
	var keybinds []border.Keybind
	if l.focused {
		keybinds = []border.Keybind{
			{Key: "y", Label: "ank log"},
			{Key: "G", Label: " bottom"},
			{Key: "g", Label: "g top"},
			{Key: "^l", Label: " clear"},
		}
		if !l.follow && !l.viewport.AtBottom() {
			keybinds = append(keybinds, border.Keybind{Key: "↓", Label: " new entries"})
		}
	}

	var badge string
	if n := len(l.entries); n > 0 {
		badge = styles.TextDimStyle.Render(fmt.Sprintf("%d entries", n))
	}

	p := border.Panel{
		Title:    "Execution Log",
		Badge:    badge,
		Keybinds: keybinds,
		Width:    l.width,
		Height:   l.height,
		Focused:  l.focused,
	}
	return p.Render(l.viewport.View())
}

// SetEntries replaces the rendered entries, keeping the view pinned to the
// bottom while following.
func (l *LogView) SetEntries(entries []session.Entry) {
	l.entries = entries
	if len(entries) == 0 {
		l.follow = true
	}
	l.refreshContent()
}

// Entries returns what the view is currently showing.
func (l LogView) Entries() []session.Entry {
	return l.entries
}

// SetRunning toggles the trailing activity cursor.
func (l *LogView) SetRunning(running bool) {
	if l.running == running {
		return
	}
	l.running = running
	l.refreshContent()
}

func (l *LogView) SetSize(w, h int) {
	l.width = w
	l.height = h
	innerW, innerH := w-2, h-2
	if innerW < 0 {
		innerW = 0
	}
	if innerH < 0 {
		innerH = 0
	}
	l.viewport.Width = innerW
	l.viewport.Height = innerH
	l.refreshContent()
}

func (l *LogView) SetFocused(focused bool) {
	l.focused = focused
}

func (l *LogView) SetScrollSpeed(speed int) {
	if speed > 0 {
		l.scrollSpeed = speed
	}
}

// Following reports whether new entries scroll into view.
func (l LogView) Following() bool {
	return l.follow
}

func (l *LogView) refreshContent() {
	l.viewport.SetContent(l.renderContent())
	if l.follow {
		l.viewport.GotoBottom()
	}
}

func (l LogView) renderContent() string {
	if len(l.entries) == 0 {
		return styles.TextDimStyle.Render(EmptyLogText)
	}
	out := RenderEntries(l.entries, l.viewport.Width)
	if l.running {
		out += "\n" + styles.EntryStyle(styles.StatusRunning).Render("▍")
	}
	return out
}

// RenderEntries styles a whole log. width <= 0 disables wrapping.
func RenderEntries(entries []session.Entry, width int) string {
	var lines []string
	for _, e := range entries {
		lines = append(lines, RenderEntry(e, width)...)
	}
	return strings.Join(lines, "\n")
}

// RenderEntry styles one entry: a dim timestamp, the content in the entry's
// color, then the diff details indented beneath it. Continuation lines are
// aligned under the content.
func RenderEntry(e session.Entry, width int) []string {
	prefix := "[" + e.Timestamp + "] "
	pad := strings.Repeat(" ", ansi.StringWidth(prefix))
	contentStyle := styles.EntryStyle(styles.EntryColor(e.Type))

	contentLines := strings.Split(e.Content, "\n")
	if width > 0 {
		contentWidth := width - len(pad)
		if contentWidth < 1 {
			contentWidth = 1
		}
		contentLines = text.WrapText(e.Content, contentWidth)
	}

	var lines []string
	for i, line := range contentLines {
		lead := pad
		if i == 0 {
			lead = styles.TimestampStyle.Render(prefix)
		}
		lines = append(lines, lead+contentStyle.Render(line))
	}

	for _, dl := range session.ClassifyDiff(e.Details) {
		st := styles.EntryStyle(styles.DiffColor(dl.Kind))
		line := dl.Text
		if width > 0 {
			line = text.Truncate(line, width-len(detailIndent))
		}
		lines = append(lines, detailIndent+st.Render(line))
	}
	return lines
}

// PlainText is the log as it would be copied: no styling, no wrapping.
func PlainText(entries []session.Entry) string {
	return ansi.Strip(RenderEntries(entries, 0))
}
