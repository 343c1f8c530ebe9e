// Package border draws the rounded frames every panel sits in.
package border

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/justinpbarnett/autodebug/internal/ui/styles"
)

const (
	cornerTL = "╭"
	cornerTR = "╮"
	cornerBL = "╰"
	cornerBR = "╯"
	horizBar = "─"
	vertBar  = "│"
)

// Keybind is one hint in a panel footer, drawn as [Key]Label.
type Keybind struct {
	Key   string
	Label string
}

// Render draws the hint with the key highlighted.
func (k Keybind) Render() string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(styles.KeybindLabel)
	return keyStyle.Render("["+k.Key+"]") + labelStyle.Render(k.Label)
}

// Width is the display width of Render's output.
func (k Keybind) Width() int {
	return 2 + ansi.StringWidth(k.Key) + ansi.StringWidth(k.Label)
}

// Panel describes a frame. Width and Height include the border.
type Panel struct {
	Title    string
	Badge    string // right-aligned in the top border, e.g. a running marker
	Keybinds []Keybind
	Width    int
	Height   int
	Focused  bool
}

// Render frames content, cropping or padding it to exactly fill the inner
// area. Keybinds are only drawn while focused.
func (p Panel) Render(content string) string {
	if p.Width < 2 || p.Height < 2 {
		return ""
	}
	innerH := p.Height - 2

	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	for len(lines) < innerH {
		lines = append(lines, "")
	}

	parts := make([]string, 0, p.Height)
	parts = append(parts, p.top())
	parts = append(parts, p.sides(lines)...)
	parts = append(parts, p.bottom())
	return strings.Join(parts, "\n")
}

func (p Panel) borderStyle() lipgloss.Style {
	if p.Focused {
		return lipgloss.NewStyle().Foreground(styles.BorderFocused)
	}
	return lipgloss.NewStyle().Foreground(styles.BorderUnfocused)
}

// top renders ╭─ Title ───── badge ─╮
func (p Panel) top() string {
	bs := p.borderStyle()
	inner := p.Width - 2

	ts := styles.TextSecondaryStyle.Bold(true)
	if p.Focused {
		ts = styles.TitleStyle
	}

	var title, badge string
	if p.Title != "" {
		title = horizBar + " " + ts.Render(p.Title) + " "
	}
	if p.Badge != "" {
		badge = " " + p.Badge + " " + horizBar
	}
	if lipgloss.Width(title)+lipgloss.Width(badge) > inner {
		badge = ""
	}
	if lipgloss.Width(title) > inner {
		title = ansi.Truncate(title, inner, "")
	}

	fill := inner - lipgloss.Width(title) - lipgloss.Width(badge)
	if fill < 0 {
		fill = 0
	}
	return bs.Render(cornerTL) + styleBars(title, bs) + bs.Render(strings.Repeat(horizBar, fill)) + styleBars(badge, bs) + bs.Render(cornerTR)
}

// bottom renders ╰─ [k]ey  [k]ey ─────╯, dropping hints that don't fit.
func (p Panel) bottom() string {
	bs := p.borderStyle()
	inner := p.Width - 2

	if !p.Focused || len(p.Keybinds) == 0 {
		return bs.Render(cornerBL + strings.Repeat(horizBar, inner) + cornerBR)
	}

	budget := inner - 3 // "─ " prefix and a trailing space
	if budget < 0 {
		budget = 0
	}
	var rendered []string
	used := 0
	for _, kb := range p.Keybinds {
		w := kb.Width()
		if len(rendered) > 0 {
			w += 2
		}
		if used+w > budget {
			break
		}
		rendered = append(rendered, kb.Render())
		used += w
	}

	return bs.Render(cornerBL+horizBar+" ") +
		strings.Join(rendered, "  ") +
		bs.Render(" "+strings.Repeat(horizBar, budget-used)+cornerBR)
}

// sides wraps each line in │ … │, truncating or padding to the inner width.
func (p Panel) sides(lines []string) []string {
	bs := p.borderStyle()
	inner := p.Width - 2
	edge := bs.Render(vertBar)

	out := make([]string, len(lines))
	for i, line := range lines {
		w := ansi.StringWidth(line)
		if w > inner {
			line = ansi.Truncate(line, inner, "")
			w = ansi.StringWidth(line)
		}
		if w < inner {
			line += strings.Repeat(" ", inner-w)
		}
		out[i] = edge + line + edge
	}
	return out
}

// styleBars colors the border runes of a title/badge segment while leaving
// the already-styled text between them alone.
func styleBars(seg string, bs lipgloss.Style) string {
	if seg == "" {
		return ""
	}
	var b strings.Builder
	if strings.HasPrefix(seg, horizBar) {
		b.WriteString(bs.Render(horizBar))
		seg = strings.TrimPrefix(seg, horizBar)
	}
	trailing := strings.HasSuffix(seg, horizBar)
	if trailing {
		seg = strings.TrimSuffix(seg, horizBar)
	}
	b.WriteString(seg)
	if trailing {
		b.WriteString(bs.Render(horizBar))
	}
	return b.String()
}
