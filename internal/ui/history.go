package ui

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/amonks/kanban/issue"
)

// RenderHistory writes undo records newest first. Row 0 is what the next undo
// reverses.
func (p *Presenter) RenderHistory(records []issue.Undoable) error {
	if len(records) == 0 {
		return p.RenderMessage("Nothing to undo.")
	}

	table := NewTableBuilder([]string{"#", "KIND", "DETAIL"}, len(records)).Width(p.width)
	for i := len(records) - 1; i >= 0; i-- {
		record := records[i]
		table.AddRow(strconv.Itoa(len(records)-1-i), string(record.Kind()), DescribeRecord(record))
	}
	_, err := p.out.Write([]byte(table.String()))
	return err
}

// RenderHistoryJSON writes undo records newest first in their storage encoding.
func (p *Presenter) RenderHistoryJSON(records []issue.Undoable) error {
	encoded := make([]json.RawMessage, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		data, err := issue.EncodeRecord(records[i])
		if err != nil {
			return err
		}
		encoded = append(encoded, data)
	}
	return p.writeJSON(encoded)
}

// DescribeRecord summarizes what undoing record would reverse.
func DescribeRecord(record issue.Undoable) string {
	switch r := record.(type) {
	case issue.AddRecord:
		return "added issue 0"
	case issue.DeleteRecord:
		return "deleted " + plural(len(r.Positions), "issue")
	case issue.MoveRecord:
		if len(r.Steps) == 1 {
			step := r.Steps[0]
			return fmt.Sprintf("moved issue %d from %s", step.OriginalIndex, step.OriginalState)
		}
		return "moved " + plural(len(r.Steps), "issue")
	case issue.PrioRecord:
		return fmt.Sprintf("reprioritized issue %d to %d", r.OriginalIndex, r.NewIndex)
	case issue.EditRecord:
		return fmt.Sprintf("edited issue %d", r.Index)
	case issue.FlushRecord:
		return "flushed " + plural(r.Count, "issue")
	case issue.DueRecord:
		if r.PreviousDue == nil {
			return fmt.Sprintf("set due date of issue %d", r.Index)
		}
		return fmt.Sprintf("changed due date of issue %d from %s", r.Index, r.PreviousDue)
	default:
		return ""
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
