package entities

import (
	"strings"
	"time"
)

// MoldCode represents a unique casting mold identifier
type MoldCode string

// NormalizeMold trims and upper-cases a raw mold identifier
func NormalizeMold(raw string) MoldCode {
	return MoldCode(strings.ToUpper(strings.TrimSpace(raw)))
}

// HasPrefix reports whether the mold code starts with prefix
func (m MoldCode) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(m), prefix)
}

// String returns the mold code as a plain string
func (m MoldCode) String() string {
	return string(m)
}

// DateOf drops the time-of-day component of t, keeping its calendar date
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
