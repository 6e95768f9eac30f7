package ui

import (
	"slices"
	"strconv"
	"strings"
	"time"

	internalstrings "github.com/amonks/kanban/internal/strings"
	"github.com/amonks/kanban/issue"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

var stateTitles = map[issue.State]string{
	issue.StateOpen:   "Open",
	issue.StateReview: "Review",
	issue.StateDone:   "Done",
}

// RenderBoard writes one section per state, in board order. Only the given
// states are shown; none means all. Indices are positions on the whole board.
func (p *Presenter) RenderBoard(b *issue.Board, states ...issue.State) error {
	if len(states) == 0 {
		states = issue.States()
	}

	now := p.now()
	today := issue.DateOf(now)
	indexWidth := len(strconv.Itoa(max(b.Len()-1, 0)))

	var out strings.Builder
	for _, state := range states {
		var lines []string
		for i, entity := range b.Entities {
			if entity.Content.State != state {
				continue
			}
			lines = append(lines, p.issueLine(i, indexWidth, entity.Content, now, today))
		}
		if len(lines) == 0 {
			continue
		}
		if out.Len() > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(p.styles.heading.Render(stateTitles[state]))
		out.WriteString(" (" + strconv.Itoa(len(lines)) + ")\n")
		for _, line := range lines {
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}

	if out.Len() == 0 {
		return p.RenderMessage("No issues.")
	}
	_, err := p.out.Write([]byte(out.String()))
	return err
}

func (p *Presenter) issueLine(index, indexWidth int, item issue.Issue, now time.Time, today issue.Date) string {
	number := strconv.Itoa(index)
	prefix := "  " + strings.Repeat(" ", indexWidth-len(number)) + p.styles.index.Render(number) + "  "
	hang := 2 + indexWidth + 2

	text := internalstrings.FirstLine(item.Description)
	text += p.styles.meta.Render(" · " + FormatTimeAgeShort(item.TimeCreated, now))
	if item.Due != nil {
		text += p.styles.meta.Render(" · ") + p.dueStyle(*item.Due, today).Render(FormatDue(*item.Due, today))
	}

	wrapped := wordwrap.String(text, max(p.width-hang, minTextWidth))
	first, rest, found := strings.Cut(wrapped, "\n")
	if !found {
		return prefix + first
	}
	return prefix + first + "\n" + indent.String(rest, uint(hang))
}

func (p *Presenter) dueStyle(due, today issue.Date) lipgloss.Style {
	switch days := today.DaysUntil(due); {
	case days < 0:
		return p.styles.overdue
	case days <= 1:
		return p.styles.dueSoon
	default:
		return p.styles.meta
	}
}

type boardItem struct {
	Index       int         `json:"index"`
	ID          string      `json:"id"`
	Description string      `json:"description"`
	State       issue.State `json:"state"`
	TimeCreated time.Time   `json:"time_created"`
	Due         *issue.Date `json:"due_date,omitempty"`
}

// RenderBoardJSON writes the issues in the given states as a JSON array in
// board order.
func (p *Presenter) RenderBoardJSON(b *issue.Board, states ...issue.State) error {
	items := make([]boardItem, 0, b.Len())
	for i, entity := range b.Entities {
		if len(states) > 0 && !slices.Contains(states, entity.Content.State) {
			continue
		}
		items = append(items, boardItem{
			Index:       i,
			ID:          entity.ID.String(),
			Description: entity.Content.Description,
			State:       entity.Content.State,
			TimeCreated: entity.Content.TimeCreated,
			Due:         entity.Content.Due,
		})
	}
	return p.writeJSON(items)
}
