package layout

// Layout holds the computed cell dimensions for all panels.
type Layout struct {
	TermWidth  int
	TermHeight int
	TooSmall   bool

	// Left column
	EditorWidth  int
	EditorHeight int

	// Right column
	LogWidth  int
	LogHeight int

	StatusBarWidth int
}

const (
	MinWidth  = 60
	MinHeight = 12

	EditorColWeight = 0.50
)

// Calculate splits the terminal into editor | log above a one-row status bar.
// Returns Layout with TooSmall=true if under minimum.
func Calculate(termWidth, termHeight int) Layout {
	l := Layout{
		TermWidth:  termWidth,
		TermHeight: termHeight,
	}

	if termWidth < MinWidth || termHeight < MinHeight {
		l.TooSmall = true
		return l
	}

	usableHeight := termHeight - 1 // status bar

	editorWidth := int(float64(termWidth) * EditorColWeight)

	l.EditorWidth = editorWidth
	l.EditorHeight = usableHeight
	l.LogWidth = termWidth - editorWidth
	l.LogHeight = usableHeight
	l.StatusBarWidth = termWidth

	return l
}
