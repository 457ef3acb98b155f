package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InstructionKind represents the outcome of scheduling one event
type InstructionKind int

const (
	NoneNeeded InstructionKind = iota
	Scheduled
	InvalidProductivity
	MoldNotRegistered
	StartOutOfRange
)

// String method for InstructionKind enum
func (k InstructionKind) String() string {
	switch k {
	case NoneNeeded:
		return "none_needed"
	case Scheduled:
		return "scheduled"
	case InvalidProductivity:
		return "invalid_productivity"
	case MoldNotRegistered:
		return "mold_not_registered"
	case StartOutOfRange:
		return "start_out_of_range"
	default:
		return "unknown"
	}
}

// InstructionKinds lists every kind in declaration order
func InstructionKinds() []InstructionKind {
	return []InstructionKind{NoneNeeded, Scheduled, InvalidProductivity, MoldNotRegistered, StartOutOfRange}
}

// MarshalText encodes the kind by name
func (k InstructionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name
func (k *InstructionKind) UnmarshalText(text []byte) error {
	for _, candidate := range InstructionKinds() {
		if candidate.String() == string(text) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown instruction kind: %s", text)
}

// Instruction is the closed set of outcomes a plan row can carry. StartDate and
// DaysNeeded are only meaningful for Scheduled.
type Instruction struct {
	Kind       InstructionKind
	StartDate  time.Time
	DaysNeeded int
}

// NewScheduledInstruction creates a Scheduled instruction
func NewScheduledInstruction(startDate time.Time, daysNeeded int) Instruction {
	return Instruction{Kind: Scheduled, StartDate: DateOf(startDate), DaysNeeded: daysNeeded}
}

// NewInstruction creates an instruction of a kind that carries no payload
func NewInstruction(kind InstructionKind) Instruction {
	return Instruction{Kind: kind}
}

// IsScheduled reports whether the instruction carries a start date
func (i Instruction) IsScheduled() bool {
	return i.Kind == Scheduled
}

type instructionJSON struct {
	Kind       InstructionKind `json:"kind"`
	StartDate  string          `json:"start_date,omitempty"`
	DaysNeeded int             `json:"days_needed,omitempty"`
}

// MarshalJSON encodes the start date as YYYY-MM-DD and omits it when absent
func (i Instruction) MarshalJSON() ([]byte, error) {
	out := instructionJSON{Kind: i.Kind}
	if i.IsScheduled() {
		out.StartDate = i.StartDate.Format(DateLayout)
		out.DaysNeeded = i.DaysNeeded
	}
	return json.Marshal(out)
}

// DateLayout is the ISO date layout used for plan dates
const DateLayout = "2006-01-02"

// PlanRow represents one computed line of the manufacturing plan
type PlanRow struct {
	ChangeDate            time.Time       `json:"change_date"`
	Line                  string          `json:"line"`
	Mold                  MoldCode        `json:"mold"`
	QuantityToManufacture decimal.Decimal `json:"quantity_to_manufacture"`
	TotalStock            decimal.Decimal `json:"total_stock"`
	ToManufacture         decimal.Decimal `json:"to_manufacture"`
	Instruction           Instruction     `json:"instruction"`
}

// NewPlanRow builds the plan row for an event and its instruction
func NewPlanRow(event ScheduleEvent, instruction Instruction) PlanRow {
	return PlanRow{
		ChangeDate:            event.ChangeDay(),
		Line:                  event.Line,
		Mold:                  event.Mold,
		QuantityToManufacture: event.QuantityToManufacture,
		TotalStock:            event.TotalStock,
		ToManufacture:         event.ToManufacture,
		Instruction:           instruction,
	}
}
