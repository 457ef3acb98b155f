// Package locale renders dates in Spanish for plan output.
package locale

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/vsinha/explan/pkg/domain/entities"
)

// LongDate formats t as "<day> de <month> de <year>" with the first letter
// capitalized, e.g. "1 de marzo de 2024".
func LongDate(t time.Time) string {
	return Capitalize(fmt.Sprintf("%d de %s de %d", t.Day(), entities.MonthName(t.Month()), t.Year()))
}

// Capitalize upper-cases the first rune and lower-cases the rest
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
