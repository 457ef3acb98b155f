package expander

import "github.com/vsinha/explan/pkg/domain/entities"

// Expand turns each demand record into one schedule event per present change
// date. Events follow record order, then change column order. Records without
// change dates contribute nothing.
func Expand(records []entities.MoldDemandRecord) []entities.ScheduleEvent {
	events := make([]entities.ScheduleEvent, 0, len(records))
	for _, r := range records {
		for i, changeDate := range r.ChangeDates {
			if changeDate.IsZero() {
				continue
			}
			events = append(events, entities.ScheduleEvent{
				Line:                  r.Line,
				Mold:                  r.Mold,
				QuantityToManufacture: r.QuantityToManufacture,
				TotalStock:            r.TotalStock,
				ToManufacture:         r.ToManufacture,
				ChangeDate:            changeDate,
				Slot:                  i + 1,
			})
		}
	}
	return events
}
