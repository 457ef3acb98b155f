// Package scheduler derives manufacturing start dates from mold change events.
//
// Events are grouped by change date. Within a date, molds are ordered by
// priority tier and walked backwards from the change date: each mold starts
// LeadTimeDays plus the days already claimed by earlier molds on that date,
// plus its own production days, before the change. The walk is greedy and
// single-pass; higher tiers are never pushed, lower tiers absorb the delay.
package scheduler

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/explan/pkg/domain/entities"
	"github.com/vsinha/explan/pkg/domain/repositories"
)

// DateGroup is the schedule computed for a single change date
type DateGroup struct {
	ChangeDate time.Time
	Rows       []entities.PlanRow
	// DaysOccupied is the production-day total claimed by Scheduled rows
	DaysOccupied int
}

// Scheduler computes plan rows under a fixed policy. It holds no state
// between calls.
type Scheduler struct {
	policy     Policy
	classifier *classifier
}

// New creates a scheduler after validating the policy
func New(policy Policy) (*Scheduler, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	c, err := newClassifier(policy.Rules)
	if err != nil {
		return nil, err
	}
	return &Scheduler{policy: policy, classifier: c}, nil
}

// Default returns a scheduler using DefaultPolicy
func Default() *Scheduler {
	s, err := New(DefaultPolicy())
	if err != nil {
		panic(err)
	}
	return s
}

// Policy returns the scheduler's policy
func (s *Scheduler) Policy() Policy {
	return s.policy
}

// ComputeExplan schedules the events with the default policy
func ComputeExplan(events []entities.ScheduleEvent, productivity repositories.ProductivityLookup) []entities.PlanRow {
	return Default().ComputeExplan(events, productivity)
}

// ComputeExplan returns one plan row per event, ordered by change date and,
// within a date, by priority tier then input order.
func (s *Scheduler) ComputeExplan(events []entities.ScheduleEvent, productivity repositories.ProductivityLookup) []entities.PlanRow {
	groups := s.Plan(events, productivity)

	rows := make([]entities.PlanRow, 0, len(events))
	// Groups are produced in ascending date order, so the concatenation is
	// already sorted by change date.
	for _, g := range groups {
		rows = append(rows, g.Rows...)
	}
	return rows
}

// Plan schedules the events date by date and returns the per-date groups in
// ascending date order.
func (s *Scheduler) Plan(events []entities.ScheduleEvent, productivity repositories.ProductivityLookup) []DateGroup {
	byDate := make(map[time.Time][]entities.ScheduleEvent)
	var dates []time.Time
	for _, e := range events {
		day := e.ChangeDay()
		if _, seen := byDate[day]; !seen {
			dates = append(dates, day)
		}
		byDate[day] = append(byDate[day], e)
	}
	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })

	groups := make([]DateGroup, 0, len(dates))
	for _, day := range dates {
		groups = append(groups, s.scheduleDate(day, byDate[day], productivity))
	}
	return groups
}

type rankedEvent struct {
	event entities.ScheduleEvent
	rank  int
}

// scheduleDate orders one date's events by tier and walks them backwards.
// daysOccupied lives only for the duration of this call.
func (s *Scheduler) scheduleDate(
	day time.Time,
	events []entities.ScheduleEvent,
	productivity repositories.ProductivityLookup,
) DateGroup {
	ordered := make([]rankedEvent, len(events))
	for i, e := range events {
		ordered[i] = rankedEvent{event: e, rank: s.classifier.classify(e.Mold).Rank}
	}
	slices.SortStableFunc(ordered, func(a, b rankedEvent) int { return cmp.Compare(a.rank, b.rank) })

	group := DateGroup{ChangeDate: day, Rows: make([]entities.PlanRow, 0, len(ordered))}
	for _, r := range ordered {
		baseDate := day.AddDate(0, 0, -(s.policy.LeadTimeDays + group.DaysOccupied))
		instruction := s.instructionFor(r.event, baseDate, productivity)
		if instruction.IsScheduled() {
			group.DaysOccupied += instruction.DaysNeeded
		}
		group.Rows = append(group.Rows, entities.NewPlanRow(r.event, instruction))
	}
	return group
}

func (s *Scheduler) instructionFor(
	event entities.ScheduleEvent,
	baseDate time.Time,
	productivity repositories.ProductivityLookup,
) entities.Instruction {
	if !event.ToManufacture.IsPositive() {
		return entities.NewInstruction(entities.NoneNeeded)
	}

	record, found := productivity.Lookup(event.Mold)
	if !found {
		return entities.NewInstruction(entities.MoldNotRegistered)
	}

	rate, ok := record.Rate()
	if !ok {
		return entities.NewInstruction(entities.InvalidProductivity)
	}

	daysNeeded, ok := s.DaysNeeded(event.ToManufacture, rate)
	if !ok {
		return entities.NewInstruction(entities.StartOutOfRange)
	}

	start := baseDate.AddDate(0, 0, -daysNeeded)
	if start.Year() < 1 {
		return entities.NewInstruction(entities.StartOutOfRange)
	}
	return entities.NewScheduledInstruction(start, daysNeeded)
}

// DaysNeeded returns ceil(quantity / (rate * ShiftsPerDay)). ok is false when
// the rate is not positive or the run exceeds MaxProductionDays.
func (s *Scheduler) DaysNeeded(quantity, rate decimal.Decimal) (int, bool) {
	if !rate.IsPositive() {
		return 0, false
	}
	piecesPerDay := rate.Mul(decimal.NewFromInt(int64(s.policy.ShiftsPerDay)))
	days := quantity.Div(piecesPerDay).Ceil()
	if days.GreaterThan(decimal.NewFromInt(MaxProductionDays)) {
		return 0, false
	}
	return int(days.IntPart()), true
}
