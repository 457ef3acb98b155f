package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/explan/pkg/application/services/filter"
	"github.com/vsinha/explan/pkg/domain/entities"
)

// PlanResult contains one computed manufacturing plan
type PlanResult struct {
	RunID       uuid.UUID                        `json:"run_id"`
	GeneratedAt time.Time                        `json:"generated_at"`
	Source      string                           `json:"source,omitempty"`
	Criteria    filter.Criteria                  `json:"criteria"`
	Rows        []entities.PlanRow               `json:"rows"`
	Total       decimal.Decimal                  `json:"total"`
	TotalLabel  string                           `json:"total_label"`
	Counts      map[entities.InstructionKind]int `json:"counts"`
	Warnings    []string                         `json:"warnings,omitempty"`
}

// Count returns how many rows carry the given instruction kind
func (r *PlanResult) Count(kind entities.InstructionKind) int {
	return r.Counts[kind]
}

// ScheduledRows returns the rows that carry a start date
func (r *PlanResult) ScheduledRows() []entities.PlanRow {
	out := make([]entities.PlanRow, 0, r.Count(entities.Scheduled))
	for _, row := range r.Rows {
		if row.Instruction.IsScheduled() {
			out = append(out, row)
		}
	}
	return out
}

// CountInstructions tallies plan rows by instruction kind
func CountInstructions(rows []entities.PlanRow) map[entities.InstructionKind]int {
	counts := make(map[entities.InstructionKind]int, len(entities.InstructionKinds()))
	for _, row := range rows {
		counts[row.Instruction.Kind]++
	}
	return counts
}
