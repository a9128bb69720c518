package main

// History is a linear list of document snapshots with a cursor. Every entry
// is an independent deep copy; nothing outside History holds a reference to
// one. The cursor is -1 when the history is empty.
type History struct {
	entries []*Document
	cursor  int
	limit   int
}

// NewHistory returns an empty history keeping at most limit entries
// (0 means unbounded).
func NewHistory(limit int) *History {
	if limit < 0 {
		limit = 0
	}
	return &History{cursor: -1, limit: limit}
}

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.entries) }

// Cursor returns the index of the current snapshot, or -1.
func (h *History) Cursor() int { return h.cursor }

// CanUndo reports whether Undo can move back given the live document.
func (h *History) CanUndo(live *Document) bool {
	if h.cursor > 0 {
		return true
	}
	return h.cursor == 0 && !h.entries[0].Equal(live)
}

// CanRedo reports whether an entry exists past the cursor.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.entries)-1
}

// Snapshot records a deep copy of doc as the newest entry. Entries past the
// cursor are discarded first. A snapshot identical to the entry under the
// cursor is not stored twice. It reports whether an entry was added.
func (h *History) Snapshot(doc *Document) bool {
	h.entries = h.entries[:h.cursor+1]
	if h.cursor >= 0 && h.entries[h.cursor].Equal(doc) {
		return false
	}
	h.push(doc.Clone())
	return true
}

func (h *History) push(d *Document) {
	h.entries = append(h.entries, d)
	h.cursor = len(h.entries) - 1
	if h.limit > 0 && len(h.entries) > h.limit {
		drop := len(h.entries) - h.limit
		for i := 0; i < drop; i++ {
			h.entries[i] = nil
		}
		h.entries = h.entries[drop:]
		h.cursor -= drop
	}
}

// Undo moves the cursor back one entry and restores doc from it. When the
// cursor is at the newest entry and doc has changed since it was taken,
// doc is first committed as a new entry so Redo can return to it.
func (h *History) Undo(doc *Document) bool {
	if h.cursor < 0 {
		return false
	}
	if h.cursor == len(h.entries)-1 && !h.entries[h.cursor].Equal(doc) {
		h.push(doc.Clone())
	}
	if h.cursor <= 0 {
		return false
	}
	h.cursor--
	doc.restore(h.entries[h.cursor])
	return true
}

// Redo moves the cursor forward one entry and restores doc from it.
func (h *History) Redo(doc *Document) bool {
	if !h.CanRedo() {
		return false
	}
	h.cursor++
	doc.restore(h.entries[h.cursor])
	return true
}

// Reset drops every entry.
func (h *History) Reset() {
	h.entries = nil
	h.cursor = -1
}
