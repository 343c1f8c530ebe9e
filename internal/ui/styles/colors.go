package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/autodebug/internal/session"
)

// Semantic colors as AdaptiveColor{Light, Dark}.
var (
	BorderFocused   = lipgloss.AdaptiveColor{Light: "#2e5cb8", Dark: "#7aa2f7"}
	BorderUnfocused = lipgloss.AdaptiveColor{Light: "#c0c0c0", Dark: "#3b4261"}
	TitleText       = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	KeybindKey      = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	KeybindLabel    = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextPrimary     = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	TextSecondary   = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextDim         = lipgloss.AdaptiveColor{Light: "#b0b0b0", Dark: "#3b4261"}

	StatusRunning = lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#7dcfff"}
	StatusSuccess = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#9ece6a"}
	StatusError   = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f7768e"}
	StatusWarning = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	StatusPending = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}

	SelectedRowBg = lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#292e42"}

	DiffAdded   = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#9ece6a"}
	DiffRemoved = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f7768e"}
	DiffContext = lipgloss.AdaptiveColor{Light: "#57606a", Dark: "#a9b1d6"}

	LineNumber = lipgloss.AdaptiveColor{Light: "#b0b0b0", Dark: "#3b4261"}
)

// EntryColor returns the color a log entry of the given type is drawn in.
func EntryColor(t session.EntryType) lipgloss.AdaptiveColor {
	switch t {
	case session.EntrySuccess:
		return StatusSuccess
	case session.EntryError:
		return StatusError
	case session.EntryInfo:
		return StatusRunning
	default:
		return TextPrimary
	}
}

// DiffColor returns the color for one classified diff line.
func DiffColor(k session.DiffKind) lipgloss.AdaptiveColor {
	switch k {
	case session.DiffAddition:
		return DiffAdded
	case session.DiffRemoval:
		return DiffRemoved
	default:
		return DiffContext
	}
}

// HealthColor returns the status bar color for the backend probe result.
// ok is nil while the first probe is in flight.
func HealthColor(ok *bool) lipgloss.AdaptiveColor {
	switch {
	case ok == nil:
		return StatusPending
	case *ok:
		return StatusSuccess
	default:
		return StatusError
	}
}
