package csv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/explan/pkg/domain/entities"
	"github.com/vsinha/explan/pkg/infrastructure/repositories/tabular"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DemandFile, `LINEA,MOLDE,CANTIDAD FABRICAR,STOCK TOTAL,1 CAMBIO,2 CAMBIO,3 CAMBIO
L1,myifz01,100,0,2024-03-10,,
L2,OTHER1,5,10,2024-03-10,2024-04-02,
L3,,7,0,2024-03-11,,
`)
	writeFile(t, dir, ProductivityFile, `MOLDE,MOLDE 1 PERSONA (8 horas)
MYIFZ01,5
OTHER1,
`)

	loader := NewLoader(tabular.DefaultColumns())
	ds, err := loader.Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(ds.Demand) != 2 {
		t.Fatalf("Expected 2 demand records (empty mold skipped), got %d", len(ds.Demand))
	}
	if ds.Demand[0].Mold != "MYIFZ01" {
		t.Errorf("Expected normalized mold MYIFZ01, got %s", ds.Demand[0].Mold)
	}
	if !ds.Demand[1].ToManufacture.IsZero() {
		t.Errorf("Expected OTHER1 to need nothing, got %s", ds.Demand[1].ToManufacture)
	}
	if ds.Demand[1].ChangeDateCount() != 2 {
		t.Errorf("Expected 2 change dates on OTHER1, got %d", ds.Demand[1].ChangeDateCount())
	}

	if len(ds.Productivity) != 2 {
		t.Fatalf("Expected 2 productivity records, got %d", len(ds.Productivity))
	}
	if !ds.Productivity[0].UnitsPerPersonPerShift.Decimal.Equal(decimal.NewFromInt(5)) {
		t.Errorf("Expected rate 5, got %s", ds.Productivity[0].UnitsPerPersonPerShift.Decimal)
	}
	if ds.Productivity[1].UnitsPerPersonPerShift.Valid {
		t.Errorf("Expected empty rate to be null")
	}
}

func TestLoader_MissingColumns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DemandFile, "LINEA,MOLDE,CANTIDAD FABRICAR\nL1,M1,3\n")

	_, err := NewLoader(tabular.DefaultColumns()).LoadDemand(filepath.Join(dir, DemandFile))
	var loadErr *entities.DataLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Expected DataLoadError, got %v", err)
	}
	if len(loadErr.Columns) != 4 {
		t.Errorf("Expected 4 missing columns, got %v", loadErr.Columns)
	}
}

func TestLoader_UnreadableSource(t *testing.T) {
	_, err := NewLoader(tabular.DefaultColumns()).Load(filepath.Join(t.TempDir(), "missing"))
	var loadErr *entities.DataLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Expected DataLoadError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected wrapped not-exist error, got %v", err)
	}
}
