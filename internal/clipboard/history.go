package clipboard

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Limits bound the history. All three are enforced after every insertion and load.
type Limits struct {
	MaxItems int
	MaxBytes int64
	MaxAge   time.Duration
}

func DefaultLimits() Limits {
	return Limits{
		MaxItems: 100,
		MaxBytes: 20 * 1024 * 1024,
		MaxAge:   30 * 24 * time.Hour,
	}
}

// History is the ordered list of entries, newest first. It is not safe for
// concurrent use; the service only touches it from the loop.
type History struct {
	limits  Limits
	entries []Entry
}

func NewHistory(limits Limits) *History {
	return &History{limits: limits}
}

// Insert records kind as the newest entry. It reports false, and changes
// nothing, when kind equals the current newest payload.
func (h *History) Insert(kind Kind, now time.Time) (Entry, bool) {
	if len(h.entries) > 0 && h.entries[0].Kind.Equal(kind) {
		return Entry{}, false
	}
	e := NewEntry(kind, now)
	h.entries = append([]Entry{e}, h.entries...)
	h.Prune(now)
	return e, true
}

// Replace installs loaded entries, restoring newest-first order, then prunes.
func (h *History) Replace(entries []Entry, now time.Time) int {
	h.entries = append([]Entry(nil), entries...)
	sort.SliceStable(h.entries, func(i, j int) bool {
		return h.entries[i].Timestamp.After(h.entries[j].Timestamp)
	})
	return h.Prune(now)
}

// Prune applies the limits in order: age, count, then total size counted from
// the newest entry. The size pass cuts at the first entry that would overflow
// the budget; that entry and everything older go. It returns how many entries
// were removed.
func (h *History) Prune(now time.Time) int {
	before := len(h.entries)

	if h.limits.MaxAge > 0 {
		cutoff := now.Add(-h.limits.MaxAge)
		kept := h.entries[:0]
		for _, e := range h.entries {
			if !e.Timestamp.Before(cutoff) {
				kept = append(kept, e)
			}
		}
		h.entries = kept
	}

	if h.limits.MaxItems > 0 && len(h.entries) > h.limits.MaxItems {
		h.entries = h.entries[:h.limits.MaxItems]
	}

	if h.limits.MaxBytes > 0 {
		var total int64
		for i, e := range h.entries {
			total += e.Kind.ApproxSize()
			if total > h.limits.MaxBytes {
				h.entries = h.entries[:i]
				break
			}
		}
	}

	// release references held by the tail of the backing array
	if len(h.entries) < before {
		h.entries = append([]Entry(nil), h.entries...)
	}
	return before - len(h.entries)
}

// Entries returns a copy of the list, newest first.
func (h *History) Entries() []Entry {
	return append([]Entry(nil), h.entries...)
}

func (h *History) Len() int { return len(h.entries) }

// TotalBytes is the summed ApproxSize of all entries.
func (h *History) TotalBytes() int64 {
	var total int64
	for _, e := range h.entries {
		total += e.Kind.ApproxSize()
	}
	return total
}

// Find returns the entry with the given id.
func (h *History) Find(id uuid.UUID) (Entry, bool) {
	for _, e := range h.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Remove deletes one entry. It reports whether the id was present.
func (h *History) Remove(id uuid.UUID) bool {
	for i, e := range h.entries {
		if e.ID == id {
			h.entries = append(h.entries[:i:i], h.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops every entry.
func (h *History) Clear() {
	h.entries = nil
}
