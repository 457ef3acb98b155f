package scheduler_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/explan/pkg/application/services/scheduler"
	"github.com/vsinha/explan/pkg/domain/entities"
	"github.com/vsinha/explan/pkg/infrastructure/repositories/memory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func event(mold string, toManufacture int64, changeDate time.Time) entities.ScheduleEvent {
	qty := decimal.NewFromInt(toManufacture)
	return entities.ScheduleEvent{
		Line:                  "L1",
		Mold:                  entities.MoldCode(mold),
		QuantityToManufacture: qty,
		TotalStock:            decimal.Zero,
		ToManufacture:         qty,
		ChangeDate:            changeDate,
		Slot:                  1,
	}
}

func productivity(rates map[string]int64) *memory.ProductivityRepository {
	repo := memory.NewProductivityRepository(len(rates))
	for mold, rate := range rates {
		repo.AddProductivity(entities.NewProductivityRecord(entities.MoldCode(mold), decimal.NewFromInt(rate)))
	}
	return repo
}

func TestComputeExplan_ReferenceScenario(t *testing.T) {
	change := date(2024, 3, 10)
	events := []entities.ScheduleEvent{
		event("OTHER1", 0, change),
		event("MYOP5", 30, change),
		event("MYIFZ01", 100, change),
	}
	lookup := productivity(map[string]int64{"MYIFZ01": 5})

	groups := scheduler.Default().Plan(events, lookup)
	require.Len(t, groups, 1)
	g := groups[0]
	require.Len(t, g.Rows, 3)

	// MYIFZ first: 15 pieces/day, ceil(100/15)=7 days, base 2024-03-08 -> start 2024-03-01
	first := g.Rows[0]
	assert.Equal(t, entities.MoldCode("MYIFZ01"), first.Mold)
	assert.Equal(t, entities.Scheduled, first.Instruction.Kind)
	assert.True(t, first.Instruction.StartDate.Equal(date(2024, 3, 1)), "got %v", first.Instruction.StartDate)
	assert.Equal(t, 7, first.Instruction.DaysNeeded)

	// MYOP tier next, not registered
	assert.Equal(t, entities.MoldCode("MYOP5"), g.Rows[1].Mold)
	assert.Equal(t, entities.MoldNotRegistered, g.Rows[1].Instruction.Kind)

	// Everything else last, nothing to make
	assert.Equal(t, entities.MoldCode("OTHER1"), g.Rows[2].Mold)
	assert.Equal(t, entities.NoneNeeded, g.Rows[2].Instruction.Kind)

	assert.Equal(t, 7, g.DaysOccupied, "only the scheduled row claims days")
}

func TestComputeExplan_InvalidProductivity(t *testing.T) {
	lookup := memory.NewProductivityRepository(2)
	lookup.AddProductivity(entities.NewProductivityRecord("ZERO", decimal.Zero))
	lookup.AddProductivity(entities.ProductivityRecord{Mold: "NULL"})

	rows := scheduler.ComputeExplan([]entities.ScheduleEvent{
		event("ZERO", 10, date(2024, 3, 10)),
		event("NULL", 10, date(2024, 3, 10)),
	}, lookup)

	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, entities.InvalidProductivity, r.Instruction.Kind, r.Mold)
	}
}

func TestComputeExplan_LowerTiersArePushedEarlier(t *testing.T) {
	change := date(2024, 5, 20)
	events := []entities.ScheduleEvent{
		event("GEN1", 30, change),   // 30/(2*3)=5 days
		event("MYOP1", 12, change),  // 12/(2*3)=2 days
		event("MYIFZ1", 18, change), // 18/(2*3)=3 days
		event("MYIFZ2", 6, change),  // 6/(2*3)=1 day
	}
	lookup := productivity(map[string]int64{"GEN1": 2, "MYOP1": 2, "MYIFZ1": 2, "MYIFZ2": 2})

	rows := scheduler.ComputeExplan(events, lookup)
	require.Len(t, rows, 4)

	expected := []struct {
		mold  entities.MoldCode
		start time.Time
	}{
		{"MYIFZ1", date(2024, 5, 15)}, // 20 - 2 - 0 - 3
		{"MYIFZ2", date(2024, 5, 14)}, // 20 - 2 - 3 - 1
		{"MYOP1", date(2024, 5, 12)},  // 20 - 2 - 4 - 2
		{"GEN1", date(2024, 5, 7)},    // 20 - 2 - 6 - 5
	}
	for i, exp := range expected {
		assert.Equal(t, exp.mold, rows[i].Mold, "row %d", i)
		assert.True(t, rows[i].Instruction.StartDate.Equal(exp.start), "row %d: got %v want %v", i, rows[i].Instruction.StartDate, exp.start)
	}
}

func TestComputeExplan_TierOrderIsStable(t *testing.T) {
	change := date(2024, 3, 10)
	events := []entities.ScheduleEvent{
		event("C1", 0, change),
		event("MYOPB", 0, change),
		event("MYIFZB", 0, change),
		event("C2", 0, change),
		event("MYOPA", 0, change),
		event("MYIFZA", 0, change),
	}

	rows := scheduler.ComputeExplan(events, productivity(nil))

	var got []entities.MoldCode
	for _, r := range rows {
		got = append(got, r.Mold)
	}
	assert.Equal(t, []entities.MoldCode{"MYIFZB", "MYIFZA", "MYOPB", "MYOPA", "C1", "C2"}, got)
}

func TestComputeExplan_CounterResetsPerDate(t *testing.T) {
	events := []entities.ScheduleEvent{
		event("MYIFZ1", 15, date(2024, 3, 12)),
		event("MYIFZ1", 15, date(2024, 3, 10)),
		event("OTHER", 15, date(2024, 3, 10)),
		// time-of-day is ignored when grouping
		event("OTHER", 15, date(2024, 3, 12).Add(9*time.Hour)),
	}
	lookup := productivity(map[string]int64{"MYIFZ1": 5, "OTHER": 5})

	groups := scheduler.Default().Plan(events, lookup)
	require.Len(t, groups, 2)

	assert.True(t, groups[0].ChangeDate.Equal(date(2024, 3, 10)))
	assert.True(t, groups[1].ChangeDate.Equal(date(2024, 3, 12)))
	for _, g := range groups {
		require.Len(t, g.Rows, 2)
		assert.Equal(t, 2, g.DaysOccupied)
		// first mold: base = change-2, needs 1 day; second pushed one more day
		assert.True(t, g.Rows[0].Instruction.StartDate.Equal(g.ChangeDate.AddDate(0, 0, -3)))
		assert.True(t, g.Rows[1].Instruction.StartDate.Equal(g.ChangeDate.AddDate(0, 0, -4)))
	}

	rows := scheduler.ComputeExplan(events, lookup)
	for i := 1; i < len(rows); i++ {
		assert.False(t, rows[i].ChangeDate.Before(rows[i-1].ChangeDate), "rows must be sorted by change date")
	}
}

func TestComputeExplan_Idempotent(t *testing.T) {
	events := []entities.ScheduleEvent{
		event("MYOP2", 40, date(2024, 6, 1)),
		event("MYIFZ9", 100, date(2024, 6, 1)),
		event("X", 7, date(2024, 5, 3)),
	}
	lookup := productivity(map[string]int64{"MYOP2": 3, "MYIFZ9": 4, "X": 1})

	s := scheduler.Default()
	first := s.ComputeExplan(events, lookup)
	second := s.ComputeExplan(events, lookup)
	assert.Equal(t, first, second)
	assert.Equal(t, first, scheduler.ComputeExplan(events, lookup))
}

func TestComputeExplan_EmptyInput(t *testing.T) {
	assert.Empty(t, scheduler.ComputeExplan(nil, productivity(nil)))
}

func TestComputeExplan_StartOutOfRange(t *testing.T) {
	lookup := memory.NewProductivityRepository(1)
	lookup.AddProductivity(entities.NewProductivityRecord("SLOW", decimal.RequireFromString("0.0001")))

	rows := scheduler.ComputeExplan([]entities.ScheduleEvent{
		event("SLOW", 1_000_000, date(2024, 3, 10)),
		event("SLOW2", 0, date(2024, 3, 10)),
	}, lookup)

	require.Len(t, rows, 2)
	assert.Equal(t, entities.StartOutOfRange, rows[0].Instruction.Kind)
	assert.Equal(t, entities.NoneNeeded, rows[1].Instruction.Kind)
}

func TestScheduler_CustomPolicy(t *testing.T) {
	s, err := scheduler.New(scheduler.Policy{
		LeadTimeDays: 0,
		ShiftsPerDay: 1,
		Rules:        scheduler.PrefixRules([]string{"B", "A"}),
	})
	require.NoError(t, err)

	change := date(2024, 1, 10)
	rows := s.ComputeExplan([]entities.ScheduleEvent{
		event("A1", 5, change),
		event("B1", 5, change),
	}, productivity(map[string]int64{"A1": 5, "B1": 5}))

	require.Len(t, rows, 2)
	assert.Equal(t, entities.MoldCode("B1"), rows[0].Mold)
	assert.True(t, rows[0].Instruction.StartDate.Equal(date(2024, 1, 9)))
	assert.True(t, rows[1].Instruction.StartDate.Equal(date(2024, 1, 8)))
}

func TestDaysNeeded(t *testing.T) {
	s := scheduler.Default()
	tests := []struct {
		qty, rate string
		want      int
		ok        bool
	}{
		{"100", "5", 7, true},
		{"90", "5", 6, true},
		{"1", "5", 1, true},
		{"10", "2.5", 2, true},
		{"10", "0", 0, false},
		{"10", "-1", 0, false},
	}
	for _, tt := range tests {
		got, ok := s.DaysNeeded(decimal.RequireFromString(tt.qty), decimal.RequireFromString(tt.rate))
		assert.Equal(t, tt.ok, ok, "%s/%s", tt.qty, tt.rate)
		assert.Equal(t, tt.want, got, "%s/%s", tt.qty, tt.rate)
	}
}
