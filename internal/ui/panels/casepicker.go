package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/justinpbarnett/autodebug/internal/samples"
	"github.com/justinpbarnett/autodebug/internal/ui/border"
	"github.com/justinpbarnett/autodebug/internal/ui/styles"
	"github.com/justinpbarnett/autodebug/internal/ui/text"
)

// CasePickerModal lists the built-in test cases; picking one replaces the buffer.
type CasePickerModal struct {
	cases    []samples.Case
	selected int
	width    int
	height   int
	tap      DoubleTap
}

// NewCasePickerModal creates a picker sized for the given screen.
func NewCasePickerModal(cases []samples.Case, screenW, screenH int) *CasePickerModal {
	m := &CasePickerModal{
		cases: cases,
		tap:   NewDoubleTap(gTapIDCasePicker),
	}
	m.computeSize(screenW, screenH)
	return m
}

func (m *CasePickerModal) computeSize(screenW, _ int) {
	m.width = screenW * 60 / 100
	if m.width < 44 {
		m.width = 44
	}
	if m.width > 72 {
		m.width = 72
	}

	rows := len(m.cases)
	if rows == 0 {
		rows = 1
	}
	if rows > 10 {
		rows = 10
	}
	// 2 borders + 1 header row + case rows
	m.height = 2 + 1 + rows
}

// Selected returns the highlighted case name, or "".
func (m *CasePickerModal) Selected() string {
	if len(m.cases) == 0 {
		return ""
	}
	return m.cases[m.selected].Name
}

func (m *CasePickerModal) Update(msg tea.Msg) (*CasePickerModal, tea.Cmd) {
	switch msg := msg.(type) {
	case GTimerExpiredMsg:
		m.tap.HandleExpiry(msg)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c", "ctrl+o":
			return nil, func() tea.Msg { return CloseModalMsg{} }
		case "j", "down":
			if m.selected < len(m.cases)-1 {
				m.selected++
			}
		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}
		case "G":
			if len(m.cases) > 0 {
				m.selected = len(m.cases) - 1
			}
		case "g":
			fired, cmd := m.tap.Check()
			if fired {
				m.selected = 0
			}
			return m, cmd
		case "enter":
			if len(m.cases) > 0 {
				name := m.cases[m.selected].Name
				return nil, func() tea.Msg { return LoadCaseMsg{Name: name} }
			}
			return nil, func() tea.Msg { return CloseModalMsg{} }
		}
	}
	return m, nil
}

const colNameW = 10

func (m *CasePickerModal) View() string {
	innerWidth := m.width - 2
	var b strings.Builder

	header := fmt.Sprintf("%-*s %s", colNameW, "NAME", "DESCRIPTION")
	b.WriteString(styles.TextSecondaryStyle.Render(text.Truncate(header, innerWidth)))
	b.WriteString("\n")

	if len(m.cases) == 0 {
		b.WriteString(styles.TextDimStyle.Render("No built-in cases."))
	}
	for i, c := range m.cases {
		line := fmt.Sprintf("%-*s %s", colNameW, text.Truncate(c.Name, colNameW), c.Description)
		line = text.Truncate(line, innerWidth)
		if i == m.selected {
			line = styles.SelectedRowStyle.Width(innerWidth).Render(line)
		} else {
			line = styles.TextPrimaryStyle.Render(line)
		}
		b.WriteString(line)
		if i < len(m.cases)-1 {
			b.WriteString("\n")
		}
	}

	keybinds := []border.Keybind{
		{Key: "↵", Label: " load"},
		{Key: "j/k", Label: " navigate"},
		{Key: "Esc", Label: " cancel"},
	}
	return border.Panel{Title: "Test Cases", Keybinds: keybinds, Width: m.width, Height: m.height, Focused: true}.Render(b.String())
}
