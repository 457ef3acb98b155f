package repositories

import "github.com/vsinha/explan/pkg/domain/entities"

// ProductivityLookup resolves the productivity record of a mold.
// The boolean is false when the mold is not registered.
type ProductivityLookup interface {
	Lookup(mold entities.MoldCode) (entities.ProductivityRecord, bool)
}

// ProductivityRepository provides access to per-mold productivity data
type ProductivityRepository interface {
	ProductivityLookup
	GetAllProductivity() ([]entities.ProductivityRecord, error)
	LoadProductivity(records []entities.ProductivityRecord) error
}
