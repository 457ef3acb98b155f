package entities

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// MonthName returns the lower-case Spanish name of a month
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// MonthTitle returns the Spanish month name with a capital initial ("Marzo").
// Casers are stateful, so one is built per call.
func MonthTitle(m time.Month) string {
	return cases.Title(language.Spanish).String(MonthName(m))
}
