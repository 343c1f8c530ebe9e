package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Common reusable styles built from the color tokens.
var (
	TextPrimaryStyle   = lipgloss.NewStyle().Foreground(TextPrimary)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(TextSecondary)
	TextDimStyle       = lipgloss.NewStyle().Foreground(TextDim)
	TitleStyle         = lipgloss.NewStyle().Foreground(TitleText).Bold(true)
	SelectedRowStyle   = lipgloss.NewStyle().Background(SelectedRowBg)
	LineNumberStyle    = lipgloss.NewStyle().Foreground(LineNumber)

	TimestampStyle = lipgloss.NewStyle().Foreground(TextDim)
	DetailStyle    = lipgloss.NewStyle().Foreground(TextSecondary)
)

// EntryStyle renders the content of a log entry.
func EntryStyle(color lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(color)
}

// Apply selects the adaptive color variant. "default" leaves detection to
// the terminal.
func Apply(theme string) error {
	switch theme {
	case "", "default":
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	default:
		return fmt.Errorf("unknown theme %q", theme)
	}
	return nil
}
