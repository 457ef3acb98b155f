package dto

import "github.com/vsinha/explan/pkg/domain/entities"

// Dataset is the validated output of a record loader, loaded once per process
// and treated as read-only afterwards.
type Dataset struct {
	Source       string
	Demand       []*entities.MoldDemandRecord
	Productivity []entities.ProductivityRecord
}
