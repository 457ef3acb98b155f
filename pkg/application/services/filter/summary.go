package filter

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/explan/pkg/domain/entities"
)

// Total sums the net quantity to manufacture over the events
func Total(events []entities.ScheduleEvent) decimal.Decimal {
	total := decimal.Zero
	for _, e := range events {
		total = total.Add(e.ToManufacture)
	}
	return total
}

// Label names the period a total covers, following the year/month filters
func Label(c Criteria) string {
	switch {
	case c.Year != 0 && c.Month != 0:
		return fmt.Sprintf("%s %d", entities.MonthTitle(time.Month(c.Month)), c.Year)
	case c.Year != 0:
		return fmt.Sprintf("año %d", c.Year)
	case c.Month != 0:
		return fmt.Sprintf("mes %s", entities.MonthTitle(time.Month(c.Month)))
	default:
		return "toda la planificación"
	}
}
