package output

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/explan/pkg/application/dto"
	"github.com/vsinha/explan/pkg/domain/entities"
)

// Workbook naming
const (
	SheetName        = "Plan de Fabricación"
	SummarySheetName = "Resumen"
	DefaultXLSXFile  = "Plan_de_Fabricacion.xlsx"
)

const dateFormat = "dd/mm/yyyy"

// WriteXLSX writes the plan workbook to w
func WriteXLSX(w io.Writer, result *dto.PlanResult, productivitySheet string) error {
	f, err := BuildWorkbook(result, productivitySheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// BuildWorkbook lays the plan out on the "Plan de Fabricación" sheet, with
// change dates as date cells, and the totals on a "Resumen" sheet.
func BuildWorkbook(result *dto.PlanResult, productivitySheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name plan sheet: %w", err)
	}

	if err := writePlanSheet(f, result, productivitySheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSummarySheet(f, result); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:      SheetName,
		Creator:    "explan",
		Identifier: result.RunID.String(),
		Created:    result.GeneratedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set document properties: %w", err)
	}
	return f, nil
}

func writePlanSheet(f *excelize.File, result *dto.PlanResult, productivitySheet string) error {
	for i, h := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	format := dateFormat
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return fmt.Errorf("failed to create date style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range result.Rows {
		r := i + 2
		values := []interface{}{
			row.ChangeDate,
			row.Line,
			row.Mold.String(),
			row.QuantityToManufacture.InexactFloat64(),
			row.TotalStock.InexactFloat64(),
			row.ToManufacture.InexactFloat64(),
			InstructionText(row, productivitySheet),
		}
		cell, _ := excelize.CoordinatesToCellName(1, r)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r, err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, dateStyle); err != nil {
			return fmt.Errorf("failed to style row %d: %w", r, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 14); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "B", "F", 18); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "G", "G", 48); err != nil {
		return err
	}
	return f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func writeSummarySheet(f *excelize.File, result *dto.PlanResult) error {
	if _, err := f.NewSheet(SummarySheetName); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	data := [][]interface{}{
		{"Periodo", result.TotalLabel},
		{"Total por fabricar", result.Total.InexactFloat64()},
	}
	for _, kind := range entities.InstructionKinds() {
		data = append(data, []interface{}{kind.String(), result.Count(kind)})
	}

	for i, row := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SummarySheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return f.SetColWidth(SummarySheetName, "A", "A", 24)
}
