package memory

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/explan/pkg/domain/entities"
)

func TestProductivityRepository_Lookup(t *testing.T) {
	repo := NewProductivityRepository(2)

	err := repo.LoadProductivity([]entities.ProductivityRecord{
		entities.NewProductivityRecord("MYIFZ01", decimal.NewFromInt(5)),
		{Mold: "MYOP5"},
	})
	if err != nil {
		t.Fatalf("Failed to load productivity: %v", err)
	}

	record, ok := repo.Lookup("MYIFZ01")
	if !ok {
		t.Fatalf("Expected MYIFZ01 to be registered")
	}
	rate, usable := record.Rate()
	if !usable || !rate.Equal(decimal.NewFromInt(5)) {
		t.Errorf("Expected rate 5, got %s (usable=%v)", rate, usable)
	}

	record, ok = repo.Lookup("MYOP5")
	if !ok {
		t.Fatalf("Expected MYOP5 to be registered")
	}
	if record.UnitsPerPersonPerShift.Valid {
		t.Errorf("Expected null rate for MYOP5")
	}

	if _, ok := repo.Lookup("UNKNOWN"); ok {
		t.Errorf("Expected UNKNOWN to be missing")
	}
}

func TestProductivityRepository_FirstMatchWins(t *testing.T) {
	repo := NewProductivityRepository(3)
	repo.AddProductivity(entities.NewProductivityRecord("M1", decimal.NewFromInt(4)))
	repo.AddProductivity(entities.NewProductivityRecord("M1", decimal.NewFromInt(9)))
	repo.AddProductivity(entities.NewProductivityRecord("M1", decimal.Zero))

	record, ok := repo.Lookup("M1")
	if !ok {
		t.Fatalf("Expected M1 to be registered")
	}
	if !record.UnitsPerPersonPerShift.Decimal.Equal(decimal.NewFromInt(4)) {
		t.Errorf("Expected first record (rate 4) to win, got %s", record.UnitsPerPersonPerShift.Decimal)
	}

	all, err := repo.GetAllProductivity()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected all 3 records to be kept, got %d", len(all))
	}
}
