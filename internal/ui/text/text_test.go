package text

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 6, "hello…"},
		{"hello", 0, ""},
		{"\x1b[31mhello world\x1b[0m", 6, "\x1b[31mhello…\x1b[0m"},
	}
	for _, tt := range tests {
		got := Truncate(tt.in, tt.max)
		if ansi.Strip(got) != ansi.Strip(tt.want) {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
		if ansi.StringWidth(got) > tt.max && tt.max > 0 {
			t.Errorf("Truncate(%q, %d) width %d exceeds max", tt.in, tt.max, ansi.StringWidth(got))
		}
	}
}

func TestWrapTextShortLinesUntouched(t *testing.T) {
	got := WrapText("Output:\n[1, 2, 3]", 40)
	want := []string{"Output:", "[1, 2, 3]"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("WrapText = %q, want %q", got, want)
	}
}

func TestWrapTextKeepsIndent(t *testing.T) {
	got := WrapText(`  File "main.py", line 5, in preorder`, 20)
	for _, line := range got {
		if !strings.HasPrefix(line, "  ") {
			t.Errorf("expected indentation preserved, got %q", line)
		}
		if w := ansi.StringWidth(line); w > 20 {
			t.Errorf("line %q width %d exceeds 20", line, w)
		}
	}
	if len(got) < 2 {
		t.Errorf("expected wrapping, got %q", got)
	}
}

func TestWrapTextSplitsLongWord(t *testing.T) {
	got := WrapText(strings.Repeat("a", 25), 10)
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %q", got)
	}
	if strings.Join(got, "") != strings.Repeat("a", 25) {
		t.Errorf("hard split lost characters: %q", got)
	}
}

func TestWrapTextEdgeCases(t *testing.T) {
	if got := WrapText("", 10); len(got) != 1 || got[0] != "" {
		t.Errorf("WrapText empty = %q", got)
	}
	if got := WrapText("abc", 0); len(got) != 1 || got[0] != "abc" {
		t.Errorf("WrapText zero width = %q", got)
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{-time.Second, "0s"},
		{4 * time.Second, "4s"},
		{3 * time.Minute, "3m"},
		{72 * time.Minute, "1h12m"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.d); got != tt.want {
			t.Errorf("FormatElapsed(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("3f2a9c1e-0000-4000-8000-000000000000"); got != "3f2a9c1e" {
		t.Errorf("ShortID uuid = %q", got)
	}
	if got := ShortID("abcdefghijk"); got != "abcdefgh" {
		t.Errorf("ShortID long = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID short = %q", got)
	}
}

func TestFormatProgress(t *testing.T) {
	if got := FormatProgress(2, 5); got != "step 2/5" {
		t.Errorf("FormatProgress = %q", got)
	}
}
