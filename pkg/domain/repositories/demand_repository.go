package repositories

import "github.com/vsinha/explan/pkg/domain/entities"

// DemandRepository provides access to mold demand records
type DemandRepository interface {
	GetDemandRecords() ([]entities.MoldDemandRecord, error)
	LoadDemandRecords(records []*entities.MoldDemandRecord) error
}
