package memory

import (
	"github.com/vsinha/explan/pkg/domain/entities"
	"github.com/vsinha/explan/pkg/domain/repositories"
)

// ProductivityRepository provides in-memory productivity storage.
// When a mold is loaded more than once the first record wins; later ones are
// kept in GetAllProductivity so data-quality checks can report them.
type ProductivityRepository struct {
	records  []entities.ProductivityRecord
	moldsMap map[entities.MoldCode]int
}

// NewProductivityRepository creates a new in-memory productivity repository
func NewProductivityRepository(expectedRecords int) *ProductivityRepository {
	return &ProductivityRepository{
		records:  make([]entities.ProductivityRecord, 0, expectedRecords),
		moldsMap: make(map[entities.MoldCode]int, expectedRecords),
	}
}

// Verify interface compliance
var _ repositories.ProductivityRepository = (*ProductivityRepository)(nil)

// LoadProductivity loads productivity records into the repository
func (r *ProductivityRepository) LoadProductivity(records []entities.ProductivityRecord) error {
	for _, record := range records {
		r.AddProductivity(record)
	}
	return nil
}

// AddProductivity adds a record; it only becomes the lookup target if the
// mold has not been seen yet.
func (r *ProductivityRepository) AddProductivity(record entities.ProductivityRecord) {
	if _, exists := r.moldsMap[record.Mold]; !exists {
		r.moldsMap[record.Mold] = len(r.records)
	}
	r.records = append(r.records, record)
}

// Lookup returns the first productivity record loaded for a mold
func (r *ProductivityRepository) Lookup(mold entities.MoldCode) (entities.ProductivityRecord, bool) {
	index, exists := r.moldsMap[mold]
	if !exists {
		return entities.ProductivityRecord{}, false
	}
	return r.records[index], true
}

// GetAllProductivity returns every loaded record, duplicates included
func (r *ProductivityRepository) GetAllProductivity() ([]entities.ProductivityRecord, error) {
	out := make([]entities.ProductivityRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}
