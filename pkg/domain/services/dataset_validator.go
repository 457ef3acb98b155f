package services

import (
	"fmt"

	"github.com/vsinha/explan/pkg/domain/entities"
)

// DatasetValidator reports data quality problems in the loaded tables. None of
// them stop planning; the scheduler degrades affected rows to warning instructions.
type DatasetValidator struct{}

// NewDatasetValidator creates a new dataset validator
func NewDatasetValidator() *DatasetValidator {
	return &DatasetValidator{}
}

// ValidationResult contains the results of dataset validation
type ValidationResult struct {
	DuplicateMolds    []entities.MoldCode
	InvalidRates      []entities.MoldCode
	UnregisteredMolds []entities.MoldCode
	UndatedRecords    int
	Warnings          []string
}

// HasWarnings reports whether any problem was found
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Validate checks demand records against the productivity table
func (v *DatasetValidator) Validate(demand []*entities.MoldDemandRecord, productivity []entities.ProductivityRecord) *ValidationResult {
	result := &ValidationResult{
		DuplicateMolds:    make([]entities.MoldCode, 0),
		InvalidRates:      make([]entities.MoldCode, 0),
		UnregisteredMolds: make([]entities.MoldCode, 0),
		Warnings:          make([]string, 0),
	}

	registered := v.detectDuplicates(productivity, result)

	seen := make(map[entities.MoldCode]bool)
	for _, record := range demand {
		if record == nil {
			continue
		}
		if record.ChangeDateCount() == 0 {
			result.UndatedRecords++
		}
		if _, ok := registered[record.Mold]; !ok && !seen[record.Mold] {
			seen[record.Mold] = true
			result.UnregisteredMolds = append(result.UnregisteredMolds, record.Mold)
		}
	}

	if len(result.DuplicateMolds) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d molds appear more than once in the productivity table; the first row is used: %v",
				len(result.DuplicateMolds), result.DuplicateMolds))
	}
	if len(result.InvalidRates) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d molds have a missing or non-positive productivity: %v", len(result.InvalidRates), result.InvalidRates))
	}
	if len(result.UnregisteredMolds) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d demanded molds are not registered in the productivity table: %v",
				len(result.UnregisteredMolds), result.UnregisteredMolds))
	}
	if result.UndatedRecords > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d demand records have no valid change date and will not be planned", result.UndatedRecords))
	}

	return result
}

// detectDuplicates indexes the productivity table the way the planner reads
// it (first row wins) and records repeated and unusable entries.
func (v *DatasetValidator) detectDuplicates(productivity []entities.ProductivityRecord, result *ValidationResult) map[entities.MoldCode]entities.ProductivityRecord {
	index := make(map[entities.MoldCode]entities.ProductivityRecord, len(productivity))
	reported := make(map[entities.MoldCode]bool)

	for _, record := range productivity {
		if _, exists := index[record.Mold]; exists {
			if !reported[record.Mold] {
				reported[record.Mold] = true
				result.DuplicateMolds = append(result.DuplicateMolds, record.Mold)
			}
			continue
		}
		index[record.Mold] = record
		if _, ok := record.Rate(); !ok {
			result.InvalidRates = append(result.InvalidRates, record.Mold)
		}
	}

	return index
}
