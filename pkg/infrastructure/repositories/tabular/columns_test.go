package tabular

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader_MissingAndCell(t *testing.T) {
	h := NewHeader([]string{" linea", "MOLDE ", "Cantidad  Fabricar"})

	assert.Empty(t, h.Missing("LINEA", "MOLDE", "CANTIDAD FABRICAR"))
	assert.Equal(t, []string{"STOCK TOTAL"}, h.Missing("MOLDE", "STOCK TOTAL"))
	assert.Equal(t, "L1", h.Cell([]string{" L1 ", "M"}, "LINEA"))
	assert.Equal(t, "", h.Cell([]string{"L1"}, "MOLDE"), "short rows read as empty")
	assert.Equal(t, "", h.Cell([]string{"L1"}, "UNKNOWN"))
}

func TestDemandColumns_DemandRecord(t *testing.T) {
	cols := DefaultColumns().Demand
	h := NewHeader(cols.Required())

	record, ok := cols.DemandRecord(h, []string{"L1", " myifz01 ", "100", "abc", "2024-03-10", "", "garbage"})
	require.True(t, ok)
	assert.Equal(t, "MYIFZ01", record.Mold.String())
	assert.True(t, record.TotalStock.IsZero(), "unparseable stock degrades to zero")
	assert.True(t, record.ToManufacture.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 1, record.ChangeDateCount())
	assert.True(t, record.ChangeDates[0].Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)))

	_, ok = cols.DemandRecord(h, []string{"L1", "  ", "5", "0"})
	assert.False(t, ok, "rows without mold are skipped")
}

func TestDemandColumns_DemandRecord_NonDateCells(t *testing.T) {
	cols := DefaultColumns().Demand
	h := NewHeader(cols.Required())

	record, ok := cols.DemandRecord(h, []string{"L1", "MYOP05", "30", "0", "nan", "NaN", "0x1p4"})
	require.True(t, ok)
	assert.Equal(t, 0, record.ChangeDateCount(), "nan and hex cells are not change dates")
}

func TestProductivityColumns_ProductivityRecord(t *testing.T) {
	cols := DefaultColumns().Productivity
	h := NewHeader(cols.Required())

	record, ok := cols.ProductivityRecord(h, []string{"myop5", "7,5"})
	require.True(t, ok)
	assert.Equal(t, "MYOP5", record.Mold.String())
	assert.True(t, record.UnitsPerPersonPerShift.Valid)
	assert.True(t, record.UnitsPerPersonPerShift.Decimal.Equal(decimal.RequireFromString("7.5")))

	record, ok = cols.ProductivityRecord(h, []string{"M2", "-"})
	require.True(t, ok)
	assert.False(t, record.UnitsPerPersonPerShift.Valid, "unparseable rate is null")
}
