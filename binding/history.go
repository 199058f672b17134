package binding

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// History is an in-memory Location and Navigator, for tests and for hosts
// without a real browser history.
type History struct {
	mu      sync.Mutex
	entries []string
	idx     int
}

// NewHistory returns a history whose only entry is initial.
func NewHistory(initial string) *History {
	return &History{entries: []string{strings.TrimPrefix(initial, "?")}}
}

// CurrentQuery returns the query string of the current entry.
func (h *History) CurrentQuery() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.idx]
}

// Navigate pushes a new entry (dropping any forward entries) or replaces the
// current one.
func (h *History) Navigate(ctx context.Context, query string, mode Mode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	query = strings.TrimPrefix(query, "?")
	if mode == ModeReplace {
		h.entries[h.idx] = query
		return nil
	}
	h.entries = append(h.entries[:h.idx+1], query)
	h.idx++
	return nil
}

// Back moves to the previous entry. It reports false at the first entry.
func (h *History) Back() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.idx == 0 {
		return false
	}
	h.idx--
	return true
}

// Forward moves to the next entry. It reports false at the last entry.
func (h *History) Forward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.idx == len(h.entries)-1 {
		return false
	}
	h.idx++
	return true
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.entries)
}
