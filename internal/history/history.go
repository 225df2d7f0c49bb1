// Package history keeps the submitted command lines of a session.
package history

// DefaultSize is the capacity used when none is given
const DefaultSize = 100

// History is a bounded list of submitted lines with a read cursor.
// The oldest entry is evicted once capacity is reached.
type History struct {
	entries []string
	maxSize int
	cursor  int
}

// New creates a History holding at most maxSize entries
func New(maxSize int) *History {
	if maxSize <= 0 {
		maxSize = DefaultSize
	}
	return &History{
		entries: make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

// Push appends an entry and moves the cursor one past the end
func (h *History) Push(entry string) {
	if len(h.entries) >= h.maxSize {
		h.entries = h.entries[1:]
	}
	h.entries = append(h.entries, entry)
	h.cursor = len(h.entries)
}

// Previous steps the cursor back and returns the entry under it.
// The cursor stops at the oldest entry.
func (h *History) Previous() (string, bool) {
	if h.cursor > 0 {
		h.cursor--
	}
	if h.cursor >= len(h.entries) {
		return "", false
	}
	return h.entries[h.cursor], true
}

// Next steps the cursor forward and returns the entry under it, or false once
// the cursor is past the newest entry.
func (h *History) Next() (string, bool) {
	if h.cursor < len(h.entries) {
		h.cursor++
	}
	if h.cursor >= len(h.entries) {
		return "", false
	}
	return h.entries[h.cursor], true
}

// Len returns the number of stored entries
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the stored entries, oldest first
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
