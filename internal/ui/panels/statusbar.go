package panels

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/autodebug/internal/ui/styles"
	"github.com/justinpbarnett/autodebug/internal/ui/text"
)

const flashDurationVal = 4 * time.Second

var statusSpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Version is set via -ldflags at build time. Falls back to "dev".
var Version = "dev"

// FlashDuration returns how long the status bar flash is shown.
func FlashDuration() time.Duration { return flashDurationVal }

// FlashLevel controls the icon and color of a status bar flash message.
type FlashLevel int

const (
	FlashInfo    FlashLevel = iota // blue ●
	FlashSuccess                   // green ✓
	FlashWarning                   // yellow ⚠
	FlashError                     // red ✗
)

type StatusBar struct {
	width      int
	sessionID  string
	backendURL string

	running      bool
	runningSince time.Time
	stepsDone    int
	stepsTotal   int

	healthy *bool

	flash      string
	flashLevel FlashLevel
	flashUntil time.Time
	tickStep   int
	now        func() time.Time
}

func NewStatusBar(sessionID, backendURL string) StatusBar {
	return StatusBar{sessionID: sessionID, backendURL: backendURL, now: time.Now}
}

func (s StatusBar) View() string {
	sep := styles.TextDimStyle.Render(" │ ")

	appName := "autodebug " + Version
	if s.running {
		frame := statusSpinnerFrames[s.tickStep%len(statusSpinnerFrames)]
		appName = lipgloss.NewStyle().Foreground(styles.StatusRunning).Render(frame) + " " + appName
	}
	left := " " + styles.TextSecondaryStyle.Render(appName)

	var activity string
	switch {
	case s.running && s.stepsTotal > 0:
		activity = "repairing " + text.FormatProgress(s.stepsDone, s.stepsTotal)
	case s.running:
		activity = "running " + text.FormatElapsed(s.now().Sub(s.runningSince))
	default:
		activity = "idle"
	}
	actColor := styles.StatusPending
	if s.running {
		actColor = styles.StatusRunning
	}
	left += sep + lipgloss.NewStyle().Foreground(actColor).Render(activity)

	health := "backend ?"
	switch {
	case s.healthy == nil:
	case *s.healthy:
		health = "backend ok"
	default:
		health = "backend down"
	}
	left += sep + lipgloss.NewStyle().Foreground(styles.HealthColor(s.healthy)).Render("● "+health) +
		" " + styles.TextDimStyle.Render(s.backendURL)

	if s.flash != "" && s.now().Before(s.flashUntil) {
		var icon string
		var color lipgloss.TerminalColor
		switch s.flashLevel {
		case FlashSuccess:
			icon, color = "✓", styles.StatusSuccess
		case FlashError:
			icon, color = "✗", styles.StatusError
		case FlashWarning:
			icon, color = "⚠", styles.StatusWarning
		default:
			icon, color = "●", styles.StatusRunning
		}
		left += sep + lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon+" "+s.flash)
	}

	right := styles.TextDimStyle.Render("session "+text.ShortID(s.sessionID)) + sep +
		styles.TextSecondaryStyle.Render("f1:help") + " "

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return text.Truncate(left+strings.Repeat(" ", gap)+right, max(s.width, 1))
}

// SetRunning records the gate state. The elapsed clock starts on the
// transition to running.
func (s *StatusBar) SetRunning(running bool) {
	if running && !s.running {
		s.runningSince = s.now()
	}
	if !running {
		s.stepsDone, s.stepsTotal = 0, 0
	}
	s.running = running
}

// SetProgress shows replay progress while running.
func (s *StatusBar) SetProgress(done, total int) {
	s.stepsDone, s.stepsTotal = done, total
}

func (s *StatusBar) SetHealth(ok bool) {
	s.healthy = &ok
}

func (s *StatusBar) SetFlash(msg string) {
	s.SetFlashWithLevel(msg, FlashInfo)
}

func (s *StatusBar) SetFlashWithLevel(msg string, level FlashLevel) {
	s.flash = msg
	s.flashLevel = level
	s.flashUntil = s.now().Add(flashDurationVal)
}

func (s *StatusBar) ClearFlash() {
	s.flash = ""
	s.flashLevel = FlashInfo
	s.flashUntil = time.Time{}
}

// Flash returns the current flash text, or "" if none is showing.
func (s StatusBar) Flash() string {
	if s.now().Before(s.flashUntil) {
		return s.flash
	}
	return ""
}

func (s *StatusBar) SetSize(w int) {
	s.width = w
}

// Tick advances the animation frame for the status bar spinner.
func (s *StatusBar) Tick() {
	s.tickStep++
}
