package border

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestKeybindWidth(t *testing.T) {
	tests := []struct {
		kb   Keybind
		want int
	}{
		{Keybind{Key: "e", Label: "dit"}, 6},
		{Keybind{Key: "Esc", Label: " close"}, 11},
		{Keybind{Key: "↵", Label: " select"}, 10},
	}
	for _, tt := range tests {
		if got := tt.kb.Width(); got != tt.want {
			t.Errorf("Width(%+v) = %d, want %d", tt.kb, got, tt.want)
		}
		if got := lipgloss.Width(tt.kb.Render()); got != tt.want {
			t.Errorf("rendered width of %+v = %d, want %d", tt.kb, got, tt.want)
		}
	}
}

// Every line of a rendered panel must be exactly the panel width, whatever
// the content, so panels can be joined side by side.
func TestEveryLineWidth(t *testing.T) {
	dim := "\033[38;2;59;66;97m"
	rst := "\033[0m"

	tests := []struct {
		name    string
		panel   Panel
		content string
	}{
		{"plain", Panel{Title: "Code Editor", Width: 40, Height: 6}, "line one\nline two"},
		{"styled", Panel{Title: "Execution Log", Width: 50, Height: 5, Focused: true}, dim + "15:04:05" + rst + " Running code..."},
		{"long line", Panel{Title: "Log", Width: 20, Height: 4}, strings.Repeat("x", 80)},
		{"empty", Panel{Width: 30, Height: 4}, ""},
		{"keybinds", Panel{Title: "Log", Width: 60, Height: 4, Focused: true, Keybinds: []Keybind{{"y", "ank"}, {"G", " bottom"}}}, "a"},
		{"keybinds overflow", Panel{Title: "Log", Width: 16, Height: 4, Focused: true, Keybinds: []Keybind{{"y", "ank"}, {"G", " bottom"}, {"g", "g top"}}}, "a"},
		{"badge", Panel{Title: "Code Editor", Badge: "running", Width: 40, Height: 4}, "a"},
		{"badge too wide", Panel{Title: "Code Editor", Badge: "a very long badge text", Width: 24, Height: 4}, "a"},
		{"title too wide", Panel{Title: "An extremely long panel title", Width: 12, Height: 3}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.panel.Render(tt.content)
			lines := strings.Split(out, "\n")
			if len(lines) != tt.panel.Height {
				t.Fatalf("got %d lines, want %d", len(lines), tt.panel.Height)
			}
			for i, line := range lines {
				if w := lipgloss.Width(line); w != tt.panel.Width {
					t.Errorf("line %d width = %d, want %d: %q", i, w, tt.panel.Width, line)
				}
			}
		})
	}
}

func TestRenderTitleAndCorners(t *testing.T) {
	out := Panel{Title: "Execution Log", Width: 30, Height: 3}.Render("")
	if !strings.Contains(out, "Execution Log") {
		t.Error("expected title in top border")
	}
	for _, c := range []string{"╭", "╮", "╰", "╯"} {
		if !strings.Contains(out, c) {
			t.Errorf("missing corner %q", c)
		}
	}
}

func TestRenderBadge(t *testing.T) {
	out := Panel{Title: "Code", Badge: "running", Width: 30, Height: 3}.Render("")
	first := strings.Split(out, "\n")[0]
	if !strings.Contains(first, "running") {
		t.Errorf("expected badge in top border, got %q", first)
	}
}

func TestKeybindsOnlyWhenFocused(t *testing.T) {
	kbs := []Keybind{{Key: "y", Label: "ank"}}
	unfocused := Panel{Width: 30, Height: 3, Keybinds: kbs}.Render("")
	if strings.Contains(unfocused, "ank") {
		t.Error("unfocused panel should not show keybinds")
	}
	focused := Panel{Width: 30, Height: 3, Keybinds: kbs, Focused: true}.Render("")
	if !strings.Contains(focused, "ank") {
		t.Error("focused panel should show keybinds")
	}
}

func TestRenderCropsContent(t *testing.T) {
	out := Panel{Width: 20, Height: 4}.Render("1\n2\n3\n4\n5")
	if strings.Contains(out, "3") {
		t.Error("expected content cropped to inner height")
	}
}

func TestRenderTooSmall(t *testing.T) {
	if got := (Panel{Width: 1, Height: 5}).Render("x"); got != "" {
		t.Errorf("expected empty render, got %q", got)
	}
}
