package expander

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/explan/pkg/domain/entities"
)

func mustRecord(t *testing.T, mold entities.MoldCode, dates ...time.Time) entities.MoldDemandRecord {
	t.Helper()
	r, err := entities.NewMoldDemandRecord("L1", mold, decimal.NewFromInt(50), decimal.NewFromInt(20), dates...)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	return *r
}

func TestExpand(t *testing.T) {
	d1 := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	records := []entities.MoldDemandRecord{
		mustRecord(t, "THREE", d1, d2, d3),
		mustRecord(t, "NONE"),
		mustRecord(t, "GAP", time.Time{}, d2),
	}

	events := Expand(records)
	if len(events) != 4 {
		t.Fatalf("Expected 4 events, got %d", len(events))
	}

	for i, want := range []time.Time{d1, d2, d3} {
		e := events[i]
		if e.Mold != "THREE" || !e.ChangeDate.Equal(want) || e.Slot != i+1 {
			t.Errorf("event %d: got %s %v slot %d", i, e.Mold, e.ChangeDate, e.Slot)
		}
		if !e.ToManufacture.Equal(decimal.NewFromInt(30)) || !e.TotalStock.Equal(decimal.NewFromInt(20)) {
			t.Errorf("event %d: fields not copied (%s, %s)", i, e.ToManufacture, e.TotalStock)
		}
		if e.Line != "L1" {
			t.Errorf("event %d: expected line L1, got %s", i, e.Line)
		}
	}

	gap := events[3]
	if gap.Mold != "GAP" || gap.Slot != 2 || !gap.ChangeDate.Equal(d2) {
		t.Errorf("Expected GAP event from slot 2, got %s slot %d", gap.Mold, gap.Slot)
	}
}

func TestExpand_OneEventPerDate(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []entities.MoldDemandRecord{
		mustRecord(t, "A", d),
		mustRecord(t, "B", d, d),
		mustRecord(t, "C", d, time.Time{}, d),
	}

	total := 0
	for _, r := range records {
		total += r.ChangeDateCount()
	}
	if got := len(Expand(records)); got != total {
		t.Errorf("Expected %d events, got %d", total, got)
	}
}

func TestExpand_Empty(t *testing.T) {
	if events := Expand(nil); len(events) != 0 {
		t.Errorf("Expected no events, got %d", len(events))
	}
}
