package panels

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// gTimeout is the longest gap between the two presses of "gg".
const gTimeout = 300 * time.Millisecond

// GTimerExpiredMsg ends the "gg" window armed by panel ID. Seq ties it to
// one arming so a stale timer cannot cancel a newer first press.
type GTimerExpiredMsg struct {
	ID  int
	Seq int
}

const (
	gTapIDLogView = iota + 1
	gTapIDCasePicker
)

// DoubleTap recognises "gg" for one panel.
type DoubleTap struct {
	Pending bool
	id      int
	seq     int
}

func NewDoubleTap(id int) DoubleTap {
	return DoubleTap{id: id}
}

// Check records a "g" press. The second press inside the window fires; the
// first returns the timer that closes the window.
func (dt *DoubleTap) Check() (fired bool, cmd tea.Cmd) {
	if dt.Pending {
		dt.Reset()
		return true, nil
	}
	dt.Pending = true
	dt.seq++
	msg := GTimerExpiredMsg{ID: dt.id, Seq: dt.seq}
	return false, tea.Tick(gTimeout, func(time.Time) tea.Msg { return msg })
}

// Reset drops a pending first press, e.g. when another key arrives.
func (dt *DoubleTap) Reset() {
	dt.Pending = false
}

// HandleExpiry reports whether msg belongs to this panel. Only the timer of
// the current arming closes the window.
func (dt *DoubleTap) HandleExpiry(msg GTimerExpiredMsg) bool {
	if msg.ID != dt.id {
		return false
	}
	if msg.Seq == dt.seq {
		dt.Reset()
	}
	return true
}
