package ui

import (
	"fmt"
	"strings"

	"github.com/amonks/kanban/board"
	"github.com/amonks/kanban/internal/ids"
	"github.com/amonks/kanban/internal/markdown"
	"github.com/amonks/kanban/issue"
)

const (
	minIDPrefix     = 4
	detailIndent    = 2
	detailLabelSize = len("created:") + 1
)

// RenderIssue writes the detail view of the issue at index.
func (p *Presenter) RenderIssue(b *issue.Board, index int) error {
	id, err := b.FindIDByIndex(index)
	if err != nil {
		return err
	}
	entity, err := b.Get(id)
	if err != nil {
		return err
	}

	all := make([]board.ID, 0, b.Len())
	for _, e := range b.Entities {
		all = append(all, e.ID)
	}
	prefixes := ids.UniquePrefixLengths(all, minIDPrefix)

	now := p.now()
	today := issue.DateOf(now)
	item := entity.Content

	var out strings.Builder
	p.field(&out, "index", fmt.Sprint(index))
	p.field(&out, "id", p.HighlightID(id, prefixes[id]))
	p.field(&out, "state", string(item.State))
	p.field(&out, "created", fmt.Sprintf("%s (%s)", item.TimeCreated.Format("2006-01-02 15:04"), FormatTimeAgo(item.TimeCreated, now)))
	if item.Due != nil {
		p.field(&out, "due", fmt.Sprintf("%s (%s)", item.Due, p.dueStyle(*item.Due, today).Render(FormatDue(*item.Due, today))))
	}

	out.WriteByte('\n')
	if body := markdown.SafeRender(p.width, detailIndent, []byte(item.Description)); body != nil {
		out.Write(body)
		out.WriteByte('\n')
	}

	_, err = p.out.Write([]byte(out.String()))
	return err
}

func (p *Presenter) field(out *strings.Builder, name, value string) {
	label := name + ":"
	out.WriteString(p.styles.label.Render(label))
	out.WriteString(strings.Repeat(" ", detailLabelSize-len(label)))
	out.WriteString(value)
	out.WriteByte('\n')
}
