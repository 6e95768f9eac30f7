// Package history provides the undo stack.
package history

import "slices"

// History is a LIFO stack of records. Records are appended and removed at the
// top only and are never reordered.
type History[E any] struct {
	stack []E
}

// FromSlice builds a history from records ordered oldest first.
func FromSlice[E any](records []E) *History[E] {
	return &History[E]{stack: slices.Clone(records)}
}

// Push appends e to the top of the stack.
func (h *History[E]) Push(e E) {
	h.stack = append(h.stack, e)
}

// Peek returns the top record without removing it.
func (h *History[E]) Peek() (E, bool) {
	if len(h.stack) == 0 {
		var zero E
		return zero, false
	}
	return h.stack[len(h.stack)-1], true
}

// Pop removes and returns the top record.
func (h *History[E]) Pop() (E, bool) {
	top, ok := h.Peek()
	if !ok {
		return top, false
	}
	h.stack = h.stack[:len(h.stack)-1]
	return top, true
}

// Len returns the number of records.
func (h *History[E]) Len() int {
	return len(h.stack)
}

// Elements returns a copy of the records, oldest first.
func (h *History[E]) Elements() []E {
	return slices.Clone(h.stack)
}

// Trim drops the oldest records until at most limit remain and reports how
// many were dropped. A limit of zero or less keeps everything.
func (h *History[E]) Trim(limit int) int {
	if limit <= 0 || len(h.stack) <= limit {
		return 0
	}
	dropped := len(h.stack) - limit
	h.stack = slices.Clone(h.stack[dropped:])
	return dropped
}

// Clone returns a copy whose stack can change independently of h.
func (h *History[E]) Clone() *History[E] {
	return &History[E]{stack: slices.Clone(h.stack)}
}
