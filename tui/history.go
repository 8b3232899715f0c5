package tui

// History keeps recent commands for Up/Down recall. Whatever was being
// typed when recall started comes back after stepping past the newest
// entry.
type History struct {
	entries []string
	max     int
	cursor  int // -1 = not navigating, 0..len-1 = position in entries
	draft   string
}

// NewHistory creates a history buffer with the given maximum size.
func NewHistory(max int) *History {
	return &History{
		entries: make([]string, 0, max),
		max:     max,
		cursor:  -1,
	}
}

// Len returns the number of stored commands.
func (h *History) Len() int { return len(h.entries) }

// Push records a submitted command and ends navigation. Consecutive
// duplicates are stored once.
func (h *History) Push(cmd string) {
	h.cursor = -1
	h.draft = ""
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == cmd {
		return
	}
	h.entries = append(h.entries, cmd)
	if len(h.entries) > h.max {
		h.entries = h.entries[1:]
	}
}

// Prev steps to the previous (older) entry. current is the input line as
// it stands; it is kept as the draft when navigation starts.
func (h *History) Prev(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.cursor == -1:
		h.draft = current
		h.cursor = len(h.entries) - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next steps to the next (newer) entry. Past the newest it returns the
// draft and stops navigating.
func (h *History) Next() string {
	if h.cursor == -1 {
		return h.draft
	}
	h.cursor++
	if h.cursor >= len(h.entries) {
		h.cursor = -1
		return h.draft
	}
	return h.entries[h.cursor]
}
