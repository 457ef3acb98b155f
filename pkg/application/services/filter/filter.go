package filter

import (
	"fmt"
	"slices"
	"time"

	"github.com/vsinha/explan/pkg/domain/entities"
)

// Criteria narrows schedule events. Zero values mean "no filter"; the
// non-zero fields are combined with AND.
type Criteria struct {
	Year  int               `json:"year,omitempty"`
	Month int               `json:"month,omitempty"`
	Mold  entities.MoldCode `json:"mold,omitempty"`
	Line  string            `json:"line,omitempty"`
}

// Validate checks the year and month ranges
func (c Criteria) Validate() error {
	if c.Year < 0 {
		return fmt.Errorf("year cannot be negative, got %d", c.Year)
	}
	if c.Month < 0 || c.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12, got %d", c.Month)
	}
	return nil
}

// Matches reports whether an event passes every active filter
func (c Criteria) Matches(e entities.ScheduleEvent) bool {
	if c.Year != 0 && e.ChangeDate.Year() != c.Year {
		return false
	}
	if c.Month != 0 && int(e.ChangeDate.Month()) != c.Month {
		return false
	}
	if c.Mold != "" && e.Mold != c.Mold {
		return false
	}
	if c.Line != "" && e.Line != c.Line {
		return false
	}
	return true
}

// Apply returns the events that match the criteria, in input order
func Apply(events []entities.ScheduleEvent, c Criteria) []entities.ScheduleEvent {
	out := make([]entities.ScheduleEvent, 0, len(events))
	for _, e := range events {
		if c.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// MonthOption is a selectable month
type MonthOption struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// Options lists the values each filter can take given the current criteria
type Options struct {
	Years  []int               `json:"years"`
	Months []MonthOption       `json:"months"`
	Molds  []entities.MoldCode `json:"molds"`
	Lines  []string            `json:"lines"`
}

// BuildOptions derives selectable values the way the selectors cascade:
// years from every event, molds from events in the chosen year/month, lines
// from events that also match the chosen mold.
func BuildOptions(events []entities.ScheduleEvent, c Criteria) Options {
	opts := Options{
		Years:  []int{},
		Months: make([]MonthOption, 0, 12),
		Molds:  []entities.MoldCode{},
		Lines:  []string{},
	}
	for m := time.January; m <= time.December; m++ {
		opts.Months = append(opts.Months, MonthOption{Number: int(m), Name: entities.MonthTitle(m)})
	}

	byPeriod := Criteria{Year: c.Year, Month: c.Month}
	byMold := Criteria{Year: c.Year, Month: c.Month, Mold: c.Mold}
	for _, e := range events {
		opts.Years = append(opts.Years, e.ChangeDate.Year())
		if byPeriod.Matches(e) {
			opts.Molds = append(opts.Molds, e.Mold)
		}
		if byMold.Matches(e) && e.Line != "" {
			opts.Lines = append(opts.Lines, e.Line)
		}
	}

	slices.Sort(opts.Years)
	opts.Years = slices.Compact(opts.Years)
	slices.Sort(opts.Molds)
	opts.Molds = slices.Compact(opts.Molds)
	slices.Sort(opts.Lines)
	opts.Lines = slices.Compact(opts.Lines)
	return opts
}
