package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoEvents is returned when no demand record carries a valid change date
	ErrNoEvents = errors.New("no records with valid change dates")
	// ErrNoMatchingEvents is returned when the filters leave nothing to schedule
	ErrNoMatchingEvents = errors.New("no records match the selected filters")
)

// DataLoadError reports a source that cannot feed the planner: unreadable
// file, missing sheet or missing required columns. It is fatal for the run.
type DataLoadError struct {
	Source  string
	Sheet   string
	Columns []string
	Err     error
}

func (e *DataLoadError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "load %s", e.Source)
	if e.Sheet != "" {
		fmt.Fprintf(&b, " (sheet %s)", e.Sheet)
	}
	if len(e.Columns) > 0 {
		fmt.Fprintf(&b, ": missing columns %s", strings.Join(e.Columns, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}
