// Package clipboard copies the code buffer or the execution log out of the TUI.
package clipboard

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"
)

// Writer copies text somewhere the user can paste from.
type Writer func(text string) error

// System tries the native clipboard (wl-copy, xclip, pbcopy, ...) and falls
// back to OSC52 on stderr for SSH and tmux sessions.
func System(text string) error {
	return Write(text, os.Stderr)
}

// Write copies text, falling back to an OSC52 sequence on w.
func Write(text string, w io.Writer) error {
	text = ansi.Strip(text)
	if err := clipboard.WriteAll(text); err == nil {
		return nil
	}
	return WriteOSC52(w, text)
}

// WriteOSC52 emits the OSC 52 set-clipboard sequence.
func WriteOSC52(w io.Writer, text string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	if _, err := fmt.Fprintf(w, "\x1b]52;c;%s\x07", encoded); err != nil {
		return fmt.Errorf("writing OSC52: %w", err)
	}
	return nil
}

// Recorder is a Writer that keeps what it was given instead of touching the
// real clipboard.
type Recorder struct {
	Copied []string
}

// Write records text.
func (r *Recorder) Write(text string) error {
	r.Copied = append(r.Copied, ansi.Strip(text))
	return nil
}

// Last returns the most recent copy, or "".
func (r *Recorder) Last() string {
	if len(r.Copied) == 0 {
		return ""
	}
	return r.Copied[len(r.Copied)-1]
}

// Lines counts the lines of the most recent copy.
func (r *Recorder) Lines() int {
	last := r.Last()
	if last == "" {
		return 0
	}
	return strings.Count(last, "\n") + 1
}
