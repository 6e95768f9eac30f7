package ui

import (
	"github.com/amonks/kanban/board"
)

// HighlightID returns an ID with its unique prefix emphasized.
func (p *Presenter) HighlightID(id board.ID, prefixLen int) string {
	value := id.String()
	if prefixLen <= 0 || prefixLen >= len(value) {
		return value
	}
	return p.styles.id.Render(value[:prefixLen]) + value[prefixLen:]
}
