// Package ui renders boards, history, and errors for the terminal.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/amonks/kanban/board"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color modes accepted by Options.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	defaultWidth = 80
	minTextWidth = 10
)

// Options configures a Presenter.
type Options struct {
	// Color is ColorAuto, ColorAlways, or ColorNever. Auto colors only
	// terminals.
	Color string
	// Width is the wrap width. Zero means 80.
	Width int
	// Now returns the current time for ages and due dates.
	Now func() time.Time
}

// Presenter writes human and JSON output. It never mutates what it renders.
type Presenter struct {
	out    io.Writer
	errOut io.Writer
	width  int
	now    func() time.Time
	styles styles
	errs   styles
}

type styles struct {
	heading lipgloss.Style
	index   lipgloss.Style
	meta    lipgloss.Style
	dueSoon lipgloss.Style
	overdue lipgloss.Style
	id      lipgloss.Style
	label   lipgloss.Style
	err     lipgloss.Style
}

// NewPresenter returns a presenter writing regular output to out and errors
// to errOut.
func NewPresenter(out, errOut io.Writer, opts Options) *Presenter {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Presenter{
		out:    out,
		errOut: errOut,
		width:  width,
		now:    now,
		styles: newStyles(newRenderer(out, opts.Color)),
		errs:   newStyles(newRenderer(errOut, opts.Color)),
	}
}

func newRenderer(w io.Writer, mode string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	default:
		if !isTerminal(w) {
			r.SetColorProfile(termenv.Ascii)
		}
	}
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		heading: r.NewStyle().Bold(true).Underline(true),
		index:   r.NewStyle().Foreground(lipgloss.Color("6")),
		meta:    r.NewStyle().Faint(true),
		dueSoon: r.NewStyle().Foreground(lipgloss.Color("3")),
		overdue: r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		id:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		label:   r.NewStyle().Faint(true),
		err:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
}

// RenderError writes err to the error writer. Joined index errors are written
// one per line.
func (p *Presenter) RenderError(err error) {
	if err == nil {
		return
	}

	lines := strings.Split(err.Error(), "\n")
	if indexErrs := board.IndexErrors(err); len(indexErrs) > 0 {
		lines = lines[:0]
		for _, indexErr := range indexErrs {
			lines = append(lines, indexErr.Error())
		}
	}

	label := p.errs.err.Render("error:")
	for _, line := range lines {
		fmt.Fprintf(p.errOut, "%s %s\n", label, line)
	}
}

// RenderMessage writes a single informational line.
func (p *Presenter) RenderMessage(format string, args ...any) error {
	_, err := fmt.Fprintf(p.out, format+"\n", args...)
	return err
}

func (p *Presenter) writeJSON(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = p.out.Write(append(data, '\n'))
	return err
}
