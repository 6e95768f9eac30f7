// Package dates resolves human-entered due dates.
package dates

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	internalstrings "github.com/amonks/kanban/internal/strings"
	"github.com/amonks/kanban/issue"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ErrUnrecognized is returned when text does not describe a date.
var ErrUnrecognized = errors.New("unrecognized date")

var relativePattern = regexp.MustCompile(`^in (\d+) (day|days|week|weeks)$`)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sun":       time.Sunday,
	"mon":       time.Monday,
	"tue":       time.Tuesday,
	"wed":       time.Wednesday,
	"thu":       time.Thursday,
	"fri":       time.Friday,
	"sat":       time.Saturday,
}

// Resolver turns date text into a calendar day.
type Resolver struct {
	parser *when.Parser
}

// New returns a resolver that understands English date expressions.
func New() *Resolver {
	parser := when.New(nil)
	parser.Add(en.All...)
	parser.Add(common.All...)
	return &Resolver{parser: parser}
}

// Resolve interprets text relative to today. Empty text, "none", and "clear"
// resolve to no date.
//
// Accepted forms, tried in order: YYYY-MM-DD; today, tomorrow, yesterday;
// "in N days" or "in N weeks"; a weekday name, meaning its next occurrence
// after today; then free-form English such as "next friday" or "march 3rd".
func (r *Resolver) Resolve(text string, today issue.Date) (*issue.Date, error) {
	normalized := internalstrings.NormalizeLowerTrimSpace(internalstrings.NormalizeWhitespace(text))

	switch normalized {
	case "", "none", "clear":
		return nil, nil
	case "today":
		return &today, nil
	case "tomorrow":
		return ptr(today.AddDays(1)), nil
	case "yesterday":
		return ptr(today.AddDays(-1)), nil
	}

	if d, err := issue.ParseDate(normalized); err == nil {
		return &d, nil
	}

	if match := relativePattern.FindStringSubmatch(normalized); match != nil {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnrecognized, text)
		}
		if strings.HasPrefix(match[2], "week") {
			n *= 7
		}
		return ptr(today.AddDays(n)), nil
	}

	if weekday, ok := weekdays[normalized]; ok {
		return ptr(nextWeekday(today, weekday)), nil
	}

	if r.parser != nil {
		base := today.Time(time.Local).Add(12 * time.Hour)
		result, err := r.parser.Parse(normalized, base)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrUnrecognized, text, err)
		}
		if result != nil {
			return ptr(issue.DateOf(result.Time)), nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnrecognized, text)
}

// nextWeekday returns the first day after today that falls on weekday.
func nextWeekday(today issue.Date, weekday time.Weekday) issue.Date {
	current := today.Time(time.UTC).Weekday()
	days := (int(weekday) - int(current) + 7) % 7
	if days == 0 {
		days = 7
	}
	return today.AddDays(days)
}

func ptr(d issue.Date) *issue.Date {
	return &d
}
