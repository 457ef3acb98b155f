package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vsinha/explan/pkg/application/dto"
	"github.com/vsinha/explan/pkg/domain/entities"
	"github.com/vsinha/explan/pkg/infrastructure/locale"
)

// Formats supported by Generate
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// DefaultProductivitySheet is named by the unregistered-mold instruction when
// no sheet is configured
const DefaultProductivitySheet = "BASE2"

// Columns are the plan table headers in order
var Columns = []string{
	"FECHA CAMBIO",
	"LINEA",
	"MOLDE",
	"CANTIDAD FABRICAR",
	"STOCK TOTAL",
	"POR FABRICAR",
	"INSTRUCCIÓN",
}

// Empty result notices
const (
	NoticeNoEvents         = "No hay datos con fechas de cambio válidas."
	NoticeNoMatchingEvents = "No hay datos que coincidan con los filtros seleccionados."
)

// Config holds configuration for output generation
type Config struct {
	Format string
	// Path is the destination file; empty writes to Out (xlsx falls back to
	// DefaultXLSXFile).
	Path              string
	ProductivitySheet string
	Out               io.Writer
	Verbose           bool
}

// Generate renders the plan in the configured format
func Generate(result *dto.PlanResult, config Config) error {
	if result == nil {
		return fmt.Errorf("plan result cannot be nil")
	}
	if config.Out == nil {
		config.Out = os.Stdout
	}

	var write func(io.Writer, *dto.PlanResult, string) error
	switch config.Format {
	case FormatText, "":
		write = WriteText
	case FormatJSON:
		write = WriteJSON
	case FormatCSV:
		write = WriteCSV
	case FormatXLSX:
		write = WriteXLSX
		if config.Path == "" {
			config.Path = DefaultXLSXFile
		}
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}

	if config.Path == "" {
		return write(config.Out, result, config.ProductivitySheet)
	}

	if dir := filepath.Dir(config.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(config.Path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(f, result, config.ProductivitySheet); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.Out, "💾 Plan saved to: %s\n", config.Path)
	}
	return nil
}

// Notice returns the user-facing message for an empty result, or "" when err
// is not one.
func Notice(err error) string {
	switch {
	case errors.Is(err, entities.ErrNoEvents):
		return NoticeNoEvents
	case errors.Is(err, entities.ErrNoMatchingEvents):
		return NoticeNoMatchingEvents
	default:
		return ""
	}
}

// FormatStartDate renders a start date as "1 de marzo de 2024"
func FormatStartDate(t time.Time) string {
	return locale.LongDate(t)
}

// InstructionText renders the instruction of a row
func InstructionText(row entities.PlanRow, productivitySheet string) string {
	if productivitySheet == "" {
		productivitySheet = DefaultProductivitySheet
	}
	switch row.Instruction.Kind {
	case entities.NoneNeeded:
		return fmt.Sprintf("❌ No hay que fabricar el molde %s.", row.Mold)
	case entities.Scheduled:
		return fmt.Sprintf("✅ Empezar a fabricar el %s.", FormatStartDate(row.Instruction.StartDate))
	case entities.InvalidProductivity:
		return "⚠️ Productividad inválida."
	case entities.MoldNotRegistered:
		return fmt.Sprintf("🔔 Molde no registrado en %s.", productivitySheet)
	case entities.StartOutOfRange:
		return "⛔ Fecha de inicio fuera de rango."
	default:
		return ""
	}
}

// Summary renders the total line shown under the plan
func Summary(result *dto.PlanResult) string {
	return fmt.Sprintf("🔢 Total por fabricar en %s: %s moldes", result.TotalLabel, result.Total.String())
}

// record returns the seven column values of a row
func record(row entities.PlanRow, productivitySheet string) []string {
	return []string{
		row.ChangeDate.Format(entities.DateLayout),
		row.Line,
		row.Mold.String(),
		row.QuantityToManufacture.String(),
		row.TotalStock.String(),
		row.ToManufacture.String(),
		InstructionText(row, productivitySheet),
	}
}

type jsonRow struct {
	entities.PlanRow
	InstructionText string `json:"instruction_text"`
}

type jsonDocument struct {
	*dto.PlanResult
	Rows    []jsonRow `json:"rows"`
	Summary string    `json:"summary"`
}

// WriteJSON encodes the plan result with rendered instruction texts
func WriteJSON(w io.Writer, result *dto.PlanResult, productivitySheet string) error {
	doc := jsonDocument{
		PlanResult: result,
		Rows:       make([]jsonRow, 0, len(result.Rows)),
		Summary:    Summary(result),
	}
	for _, row := range result.Rows {
		doc.Rows = append(doc.Rows, jsonRow{PlanRow: row, InstructionText: InstructionText(row, productivitySheet)})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

// WriteCSV writes the plan table as CSV with a header row
func WriteCSV(w io.Writer, result *dto.PlanResult, productivitySheet string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range result.Rows {
		if err := cw.Write(record(row, productivitySheet)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
