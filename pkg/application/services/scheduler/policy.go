package scheduler

import (
	"fmt"

	"github.com/vsinha/explan/pkg/domain/entities"
)

// Business defaults
const (
	DefaultLeadTimeDays = 2
	DefaultShiftsPerDay = 3
	// MaxProductionDays bounds a single mold's production run (about a century)
	// so start dates stay within calendar range.
	MaxProductionDays = 36500
)

// Policy holds the scheduling constants and the priority rules
type Policy struct {
	// LeadTimeDays is the buffer between the end of production and the change date
	LeadTimeDays int
	// ShiftsPerDay multiplies the per-shift productivity into pieces per day
	ShiftsPerDay int
	Rules        []PriorityRule
}

// DefaultPolicy returns a 2 day lead time, 3 shifts per day and the default rules
func DefaultPolicy() Policy {
	return Policy{
		LeadTimeDays: DefaultLeadTimeDays,
		ShiftsPerDay: DefaultShiftsPerDay,
		Rules:        DefaultRules(),
	}
}

// Validate checks the policy constants and rules
func (p Policy) Validate() error {
	if p.LeadTimeDays < 0 {
		return fmt.Errorf("lead time cannot be negative, got %d", p.LeadTimeDays)
	}
	if p.ShiftsPerDay <= 0 {
		return fmt.Errorf("shifts per day must be positive, got %d", p.ShiftsPerDay)
	}
	_, err := newClassifier(p.Rules)
	return err
}

// Classify returns the priority tier of a mold under this policy. It fails
// when a rule is invalid.
func (p Policy) Classify(mold entities.MoldCode) (Tier, error) {
	c, err := newClassifier(p.Rules)
	if err != nil {
		return Tier{}, err
	}
	return c.classify(mold), nil
}
