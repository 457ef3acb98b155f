package testing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/explan/pkg/application/dto"
	"github.com/vsinha/explan/pkg/domain/entities"
	"github.com/vsinha/explan/pkg/infrastructure/repositories/memory"
)

// Date returns midnight UTC of the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// mustCreateDemand is a helper for tests - panics on validation error
func mustCreateDemand(line, mold string, quantity, stock int64, changeDates ...time.Time) *entities.MoldDemandRecord {
	record, err := entities.NewMoldDemandRecord(
		line,
		entities.MoldCode(mold),
		decimal.NewFromInt(quantity),
		decimal.NewFromInt(stock),
		changeDates...,
	)
	if err != nil {
		panic(err)
	}
	return record
}

// KardexDataset builds a small production kardex covering every instruction kind:
//
//	MYIFZ01  L1  100 to make on 2024-03-10 and 2024-04-15, 5 units per shift
//	MYOP05   L2   30 to make on 2024-03-10, not registered
//	OTHER1   L1    0 to make on 2024-03-10
//	MYIFZ02  L3   50 to make on 2025-01-20, zero productivity
//	NODATE   L2    5 to make, no change date
func KardexDataset() *dto.Dataset {
	return &dto.Dataset{
		Source: "kardex-fixture",
		Demand: []*entities.MoldDemandRecord{
			mustCreateDemand("L1", "MYIFZ01", 120, 20, Date(2024, 3, 10), Date(2024, 4, 15)),
			mustCreateDemand("L2", "MYOP05", 30, 0, Date(2024, 3, 10)),
			mustCreateDemand("L1", "OTHER1", 10, 10, Date(2024, 3, 10)),
			mustCreateDemand("L3", "MYIFZ02", 50, 0, Date(2025, 1, 20)),
			mustCreateDemand("L2", "NODATE", 5, 0),
		},
		Productivity: []entities.ProductivityRecord{
			entities.NewProductivityRecord("MYIFZ01", decimal.NewFromInt(5)),
			entities.NewProductivityRecord("MYIFZ02", decimal.Zero),
			entities.NewProductivityRecord("OTHER1", decimal.NewFromInt(10)),
			entities.NewProductivityRecord("NODATE", decimal.NewFromInt(1)),
		},
	}
}

// BuildKardexTestData loads KardexDataset into in-memory repositories
func BuildKardexTestData() (*memory.DemandRepository, *memory.ProductivityRepository) {
	ds := KardexDataset()

	demandRepo := memory.NewDemandRepository(len(ds.Demand))
	if err := demandRepo.LoadDemandRecords(ds.Demand); err != nil {
		panic(err)
	}

	productivityRepo := memory.NewProductivityRepository(len(ds.Productivity))
	if err := productivityRepo.LoadProductivity(ds.Productivity); err != nil {
		panic(err)
	}

	return demandRepo, productivityRepo
}
