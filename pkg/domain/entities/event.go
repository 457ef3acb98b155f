package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleEvent is one demand record paired with one of its change dates.
// Events are values: created by the expander and consumed once by the scheduler.
type ScheduleEvent struct {
	Line                  string
	Mold                  MoldCode
	QuantityToManufacture decimal.Decimal
	TotalStock            decimal.Decimal
	ToManufacture         decimal.Decimal
	ChangeDate            time.Time
	Slot                  int // 1-based change column the date came from
}

// ChangeDay returns the calendar date of the change, used to group events
func (e ScheduleEvent) ChangeDay() time.Time {
	return DateOf(e.ChangeDate)
}
