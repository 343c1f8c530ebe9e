package panels

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/autodebug/internal/ui/border"
	"github.com/justinpbarnett/autodebug/internal/ui/styles"
)

type HelpOverlay struct {
	width  int
	height int
}

func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{
		width:  46,
		height: 24,
	}
}

func (h HelpOverlay) Update(msg tea.Msg) (HelpOverlay, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "?", "q", "f1":
			return h, func() tea.Msg { return CloseModalMsg{} }
		}
	}
	return h, nil
}

func (h HelpOverlay) View() string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)
	descStyle := styles.TextPrimaryStyle
	sectionStyle := styles.TitleStyle

	kv := func(key, desc string) string {
		return "  " + keyStyle.Render(key) + "  " + descStyle.Render(desc)
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Actions") + "\n")
	b.WriteString(kv("Ctrl+R", "Run code") + "\n")
	b.WriteString(kv("Ctrl+T", "Auto-repair") + "\n")
	b.WriteString(kv("Ctrl+O", "Load a test case") + "\n")
	b.WriteString(kv("Ctrl+S", "Save buffer to file") + "\n")
	b.WriteString(kv("Ctrl+Y", "Copy code") + "\n")
	b.WriteString(kv("Ctrl+L", "Clear log") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Log") + "\n")
	b.WriteString(kv("j/k", "Scroll down/up") + "\n")
	b.WriteString(kv("G/gg", "Jump to bottom/top") + "\n")
	b.WriteString(kv("y", "Copy log") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Global") + "\n")
	b.WriteString(kv("Tab", "Switch editor/log") + "\n")
	b.WriteString(kv("F1, ?", "Toggle this help") + "\n")
	b.WriteString(kv("Ctrl+C", "Quit") + "\n")
	b.WriteString(kv("Esc", "Close modal"))

	bottomKb := []border.Keybind{{Key: "?", Label: " close"}, {Key: "Esc", Label: " close"}}
	return border.Panel{Title: "Keybinds", Keybinds: bottomKb, Width: h.width, Height: h.height, Focused: true}.Render(b.String())
}
