package entities

import "github.com/shopspring/decimal"

// ProductivityRecord holds how many units of a mold one person produces in an
// eight hour shift. The rate is null when the source cell was empty or invalid.
type ProductivityRecord struct {
	Mold                   MoldCode
	UnitsPerPersonPerShift decimal.NullDecimal
}

// NewProductivityRecord creates a ProductivityRecord with a known rate
func NewProductivityRecord(mold MoldCode, unitsPerShift decimal.Decimal) ProductivityRecord {
	return ProductivityRecord{
		Mold:                   mold,
		UnitsPerPersonPerShift: decimal.NewNullDecimal(unitsPerShift),
	}
}

// Rate returns the productivity rate and whether it is usable for scheduling
// (present and strictly positive).
func (p ProductivityRecord) Rate() (decimal.Decimal, bool) {
	if !p.UnitsPerPersonPerShift.Valid || !p.UnitsPerPersonPerShift.Decimal.IsPositive() {
		return decimal.Zero, false
	}
	return p.UnitsPerPersonPerShift.Decimal, true
}
