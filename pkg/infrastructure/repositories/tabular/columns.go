// Package tabular resolves named columns in header-first tables and coerces
// their cells leniently into demand and productivity records. It is shared by
// the spreadsheet and CSV loaders.
package tabular

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/explan/pkg/domain/entities"
)

// DemandColumns names the demand table columns
type DemandColumns struct {
	Line        string   `koanf:"line" toml:"line"`
	Mold        string   `koanf:"mold" toml:"mold"`
	Quantity    string   `koanf:"quantity" toml:"quantity"`
	Stock       string   `koanf:"stock" toml:"stock"`
	ChangeDates []string `koanf:"change_dates" toml:"change_dates"`
}

// ProductivityColumns names the productivity table columns
type ProductivityColumns struct {
	Mold string `koanf:"mold" toml:"mold"`
	Rate string `koanf:"rate" toml:"rate"`
}

// Columns holds the column names of both tables
type Columns struct {
	Demand       DemandColumns       `koanf:"demand" toml:"demand"`
	Productivity ProductivityColumns `koanf:"productivity" toml:"productivity"`
}

// DefaultColumns returns the column names of the production kardex workbook
func DefaultColumns() Columns {
	return Columns{
		Demand: DemandColumns{
			Line:        "LINEA",
			Mold:        "MOLDE",
			Quantity:    "CANTIDAD FABRICAR",
			Stock:       "STOCK TOTAL",
			ChangeDates: []string{"1 CAMBIO", "2 CAMBIO", "3 CAMBIO"},
		},
		Productivity: ProductivityColumns{
			Mold: "MOLDE",
			Rate: "MOLDE 1 PERSONA (8 horas)",
		},
	}
}

// Required returns every demand column name that must be present
func (c DemandColumns) Required() []string {
	return append([]string{c.Line, c.Mold, c.Quantity, c.Stock}, c.ChangeDates...)
}

// Required returns every productivity column name that must be present
func (c ProductivityColumns) Required() []string {
	return []string{c.Mold, c.Rate}
}

// Header maps normalized column names to their index in a row
type Header map[string]int

// NewHeader indexes a header row. Names are matched trimmed and case-insensitively;
// the first occurrence of a repeated name wins.
func NewHeader(row []string) Header {
	h := make(Header, len(row))
	for i, name := range row {
		key := normalizeName(name)
		if key == "" {
			continue
		}
		if _, exists := h[key]; !exists {
			h[key] = i
		}
	}
	return h
}

// Missing returns the names that are not present in the header
func (h Header) Missing(names ...string) []string {
	var missing []string
	for _, name := range names {
		if _, ok := h[normalizeName(name)]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Cell returns the trimmed value of a named column, or "" when the row is short
func (h Header) Cell(row []string, name string) string {
	idx, ok := h[normalizeName(name)]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// DemandRecord converts a data row into a demand record. Rows without a mold
// are skipped (ok is false).
func (c DemandColumns) DemandRecord(h Header, row []string) (*entities.MoldDemandRecord, bool) {
	mold := entities.NormalizeMold(h.Cell(row, c.Mold))
	if mold == "" {
		return nil, false
	}

	quantity, _ := ParseNumber(h.Cell(row, c.Quantity))
	stock, _ := ParseNumber(h.Cell(row, c.Stock))

	dates := make([]time.Time, 0, entities.MaxChangeDates)
	for i, col := range c.ChangeDates {
		if i == entities.MaxChangeDates {
			break
		}
		d, _ := ParseDate(h.Cell(row, col))
		dates = append(dates, d)
	}

	record, err := entities.NewMoldDemandRecord(h.Cell(row, c.Line), mold, quantity, stock, dates...)
	if err != nil {
		return nil, false
	}
	return record, true
}

// ProductivityRecord converts a data row into a productivity record. An
// unparseable rate yields a null rate rather than an error.
func (c ProductivityColumns) ProductivityRecord(h Header, row []string) (entities.ProductivityRecord, bool) {
	mold := entities.NormalizeMold(h.Cell(row, c.Mold))
	if mold == "" {
		return entities.ProductivityRecord{}, false
	}
	record := entities.ProductivityRecord{Mold: mold}
	if rate, ok := ParseNumber(h.Cell(row, c.Rate)); ok {
		record.UnitsPerPersonPerShift = decimal.NewNullDecimal(rate)
	}
	return record, true
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
