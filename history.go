package termline

import "strings"

// History is a fixed-capacity ring of past inputs plus a browse cursor.
//
// Entries are insertion-ordered; once the capacity is exceeded the oldest
// entry is evicted. The browse cursor ranges over [0, len(entries)], where
// len(entries) is the past-the-end position Up-arrow browsing starts from.
// History is not safe for concurrent use on its own; an owning engine
// only touches it from inside its locked event handling.
type History struct {
	entries []string
	size    int
	cursor  int
}

// NewHistory creates a history ring holding at most size entries. A size
// of zero or less falls back to the default capacity of 10.
func NewHistory(size int) *History {
	if size <= 0 {
		size = 10
	}
	return &History{size: size}
}

// Push records entry and snaps the browse cursor back to past-the-end.
// Whitespace-only entries and entries equal to the most recent one are
// ignored.
func (h *History) Push(entry string) {
	if strings.TrimSpace(entry) == "" {
		return
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		return
	}
	h.entries = append(h.entries, entry)
	if len(h.entries) > h.size {
		h.entries = h.entries[1:]
	}
	h.cursor = len(h.entries)
}

// Rewind resets the browse cursor to past-the-end without touching the
// entries, so the next Previous starts from the most recent entry again.
func (h *History) Rewind() {
	h.cursor = len(h.entries)
}

// Previous moves the browse cursor one entry back and returns the entry
// there. ok is false when the history is empty. Repeated calls at the
// oldest entry keep returning it.
func (h *History) Previous() (entry string, ok bool) {
	if h.cursor > 0 {
		h.cursor--
	}
	if h.cursor >= len(h.entries) {
		return "", false
	}
	return h.entries[h.cursor], true
}

// Next moves the browse cursor one entry forward and returns the entry
// there. ok is false once the cursor reaches past-the-end, which callers
// treat as "back to the empty line".
func (h *History) Next() (entry string, ok bool) {
	if h.cursor < len(h.entries) {
		h.cursor++
	}
	if h.cursor >= len(h.entries) {
		return "", false
	}
	return h.entries[h.cursor], true
}

// Entries returns a copy of the stored entries, oldest first.
func (h *History) Entries() []string {
	return append([]string{}, h.entries...)
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	return len(h.entries)
}
