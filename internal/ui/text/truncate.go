package text

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Truncate truncates s to maxWidth, appending "…" if truncated.
// ANSI-aware: escape codes are not counted toward visual width and
// will not be broken by the truncation.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	w := ansi.StringWidth(s)
	if w <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, "…")
}

// WrapText wraps s to fit within width columns, returning one string per line.
// Existing newlines and leading indentation are kept. Words wider than
// width are hard-split.
func WrapText(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	if s == "" {
		return []string{""}
	}
	var result []string
	for _, para := range strings.Split(s, "\n") {
		result = append(result, wrapParagraph(para, width)...)
	}
	return result
}

func wrapParagraph(s string, width int) []string {
	if ansi.StringWidth(s) <= width {
		return []string{s}
	}
	trimmed := strings.TrimLeft(s, " \t")
	indent := s[:len(s)-len(trimmed)]
	if ansi.StringWidth(indent) >= width {
		indent = ""
	}
	avail := width - ansi.StringWidth(indent)

	words := strings.Fields(trimmed)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	current := ""
	currentW := 0
	flush := func() {
		if current != "" {
			lines = append(lines, indent+current)
		}
		current, currentW = "", 0
	}
	for _, word := range words {
		for ansi.StringWidth(word) > avail {
			flush()
			lines = append(lines, indent+ansi.Cut(word, 0, avail))
			word = ansi.Cut(word, avail, ansi.StringWidth(word))
		}
		ww := ansi.StringWidth(word)
		switch {
		case ww == 0:
		case current == "":
			current, currentW = word, ww
		case currentW+1+ww <= avail:
			current += " " + word
			currentW += 1 + ww
		default:
			flush()
			current, currentW = word, ww
		}
	}
	flush()
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
