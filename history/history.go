package history

import (
	"time"

	"github.com/bassamadnan/inboxagent/analysis"
)

const (
	// DefaultLimit is how many analyses are remembered.
	DefaultLimit = 10
	// PreviewLength is the longest preview kept, ellipsis included.
	PreviewLength = 90
)

// Entry is a truncated record of one past analysis.
type Entry struct {
	ID             time.Time
	Preview        string
	Classification analysis.Classification
}

// History keeps the most recent analyses, newest first. It is owned by a single
// goroutine (the UI loop) and is not safe for concurrent use.
type History struct {
	entries []Entry
	limit   int
}

// New creates a history holding at most limit entries. Non-positive limits use DefaultLimit.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{entries: make([]Entry, 0, limit), limit: limit}
}

// Add records an analysis and evicts the oldest entries beyond the limit.
func (h *History) Add(message string, class analysis.Classification, at time.Time) Entry {
	e := Entry{ID: at, Preview: Preview(message), Classification: class}
	h.entries = append([]Entry{e}, h.entries...)
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
	return e
}

// Entries returns a copy of the entries, newest first.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int { return len(h.entries) }

// Clear drops every entry.
func (h *History) Clear() {
	h.entries = h.entries[:0]
}

// Preview shortens message to PreviewLength runes, ending in "..." when cut.
func Preview(message string) string {
	r := []rune(message)
	if len(r) <= PreviewLength {
		return message
	}
	return string(r[:PreviewLength-3]) + "..."
}
