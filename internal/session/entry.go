// Package session holds the per-session state a repair client mutates: the
// append-only log of user-visible events and the current code buffer.
package session

import (
	"strings"
	"time"
)

// EntryType classifies how an entry is presented.
type EntryType string

const (
	EntryInfo    EntryType = "info"
	EntrySuccess EntryType = "success"
	EntryError   EntryType = "error"
)

// Entry is one user-visible event. Entries are stored and handed out by value
// and never change after they are appended.
type Entry struct {
	Type      EntryType
	Content   string
	Details   string
	Timestamp string
	At        time.Time
}

// HasDetails reports whether the entry carries diff text.
func (e Entry) HasDetails() bool {
	return e.Details != ""
}

// DiffKind is the presentation class of one diff line.
type DiffKind int

const (
	DiffContext DiffKind = iota
	DiffAddition
	DiffRemoval
)

func (k DiffKind) String() string {
	switch k {
	case DiffAddition:
		return "addition"
	case DiffRemoval:
		return "removal"
	default:
		return "context"
	}
}

type DiffLine struct {
	Text string
	Kind DiffKind
}

// ClassifyDiff splits details on line breaks and classifies each line by its
// leading character.
func ClassifyDiff(details string) []DiffLine {
	if details == "" {
		return nil
	}
	raw := strings.Split(details, "\n")
	lines := make([]DiffLine, len(raw))
	for i, line := range raw {
		kind := DiffContext
		switch {
		case strings.HasPrefix(line, "+"):
			kind = DiffAddition
		case strings.HasPrefix(line, "-"):
			kind = DiffRemoval
		}
		lines[i] = DiffLine{Text: line, Kind: kind}
	}
	return lines
}
