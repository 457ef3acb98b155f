package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/explan/pkg/application/dto"
	"github.com/vsinha/explan/pkg/application/services/filter"
	"github.com/vsinha/explan/pkg/application/services/orchestration"
	"github.com/vsinha/explan/pkg/application/services/scheduler"
	"github.com/vsinha/explan/pkg/domain/entities"
	"github.com/vsinha/explan/pkg/interfaces/cli/output"
)

func main() {
	ctx := context.Background()

	changeover := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	// Three molds must be ready for the March changeover of line L1
	demand := []*entities.MoldDemandRecord{
		mustDemand("L1", "OTHER1", 40, 40, changeover),
		mustDemand("L1", "MYOP5", 30, 0, changeover),
		mustDemand("L1", "MYIFZ01", 100, 0, changeover),
	}
	productivity := []entities.ProductivityRecord{
		entities.NewProductivityRecord("MYIFZ01", decimal.NewFromInt(5)),
		entities.NewProductivityRecord("OTHER1", decimal.NewFromInt(12)),
	}

	planner, err := orchestration.NewFromDataset(
		scheduler.Default(),
		&dto.Dataset{Source: "example", Demand: demand, Productivity: productivity},
		nil,
	)
	if err != nil {
		fmt.Printf("❌ Setup failed: %v\n", err)
		return
	}

	fmt.Println("🏭 Planning mold manufacturing for the March changeover...")
	fmt.Println()

	result, err := planner.Run(ctx, filter.Criteria{Year: 2024, Month: 3})
	if err != nil {
		if notice := output.Notice(err); notice != "" {
			fmt.Println(notice)
			return
		}
		fmt.Printf("❌ Planning failed: %v\n", err)
		return
	}

	for _, row := range result.Rows {
		fmt.Printf("  %s  %-8s %s\n",
			row.ChangeDate.Format(entities.DateLayout), row.Mold, output.InstructionText(row, ""))
	}
	fmt.Println()
	fmt.Println(output.Summary(result))
}

func mustDemand(line, mold string, quantity, stock int64, changeDates ...time.Time) *entities.MoldDemandRecord {
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
