package text

import (
	"fmt"
	"strings"
	"time"
)

// FormatElapsed formats a duration as "4s", "3m", "1h12m" (no seconds once past a minute).
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatProgress renders "step 2/5".
func FormatProgress(done, total int) string {
	return fmt.Sprintf("step %d/%d", done, total)
}

// ShortID returns the first segment of a UUID-like identifier.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
