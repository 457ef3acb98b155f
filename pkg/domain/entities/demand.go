package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MaxChangeDates is the number of change date columns a demand record carries
const MaxChangeDates = 3

// MoldDemandRecord represents one row of the demand table: how many units of a
// mold are needed, how many are in stock and when the mold is changed on its line.
type MoldDemandRecord struct {
	Line                  string
	Mold                  MoldCode
	QuantityToManufacture decimal.Decimal
	TotalStock            decimal.Decimal
	ToManufacture         decimal.Decimal
	// A zero time marks an absent change date.
	ChangeDates [MaxChangeDates]time.Time
}

// NewMoldDemandRecord creates a validated MoldDemandRecord and derives its net
// quantity to manufacture. Negative quantities are read as zero.
func NewMoldDemandRecord(
	line string,
	mold MoldCode,
	quantity, stock decimal.Decimal,
	changeDates ...time.Time,
) (*MoldDemandRecord, error) {
	if mold == "" {
		return nil, fmt.Errorf("mold cannot be empty")
	}
	if len(changeDates) > MaxChangeDates {
		return nil, fmt.Errorf("at most %d change dates allowed, got %d", MaxChangeDates, len(changeDates))
	}

	record := &MoldDemandRecord{
		Line:                  line,
		Mold:                  mold,
		QuantityToManufacture: nonNegative(quantity),
		TotalStock:            nonNegative(stock),
	}
	copy(record.ChangeDates[:], changeDates)
	record.ToManufacture = NetToManufacture(record.QuantityToManufacture, record.TotalStock)

	return record, nil
}

// NetToManufacture returns max(quantity - stock, 0)
func NetToManufacture(quantity, stock decimal.Decimal) decimal.Decimal {
	return nonNegative(quantity.Sub(stock))
}

// ChangeDateCount returns how many change dates are present on the record
func (r *MoldDemandRecord) ChangeDateCount() int {
	n := 0
	for _, d := range r.ChangeDates {
		if !d.IsZero() {
			n++
		}
	}
	return n
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
