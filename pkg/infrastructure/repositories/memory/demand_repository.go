package memory

import (
	"fmt"

	"github.com/vsinha/explan/pkg/domain/entities"
	"github.com/vsinha/explan/pkg/domain/repositories"
)

// DemandRepository provides in-memory demand record storage
type DemandRepository struct {
	records []entities.MoldDemandRecord
}

// NewDemandRepository creates a new in-memory demand repository
func NewDemandRepository(expectedRecords int) *DemandRepository {
	return &DemandRepository{
		records: make([]entities.MoldDemandRecord, 0, expectedRecords),
	}
}

// Verify interface compliance
var _ repositories.DemandRepository = (*DemandRepository)(nil)

// LoadDemandRecords loads demand records into the repository
func (r *DemandRepository) LoadDemandRecords(records []*entities.MoldDemandRecord) error {
	for i, record := range records {
		if record == nil {
			return fmt.Errorf("demand record %d is nil", i)
		}
		r.records = append(r.records, *record)
	}
	return nil
}

// GetDemandRecords returns a copy of all demand records in load order
func (r *DemandRepository) GetDemandRecords() ([]entities.MoldDemandRecord, error) {
	out := make([]entities.MoldDemandRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

// Len returns the number of stored records
func (r *DemandRepository) Len() int {
	return len(r.records)
}
