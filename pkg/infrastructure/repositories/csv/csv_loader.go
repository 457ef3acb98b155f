package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vsinha/explan/pkg/application/dto"
	"github.com/vsinha/explan/pkg/domain/entities"
	"github.com/vsinha/explan/pkg/infrastructure/repositories/tabular"
)

// File names expected inside a CSV scenario directory
const (
	DemandFile       = "demand.csv"
	ProductivityFile = "productivity.csv"
)

// Loader handles loading planning data from CSV files
type Loader struct {
	columns tabular.Columns
}

// NewLoader creates a new CSV loader using the given column names
func NewLoader(columns tabular.Columns) *Loader {
	return &Loader{columns: columns}
}

// Load reads demand.csv and productivity.csv from a directory
func (l *Loader) Load(dir string) (*dto.Dataset, error) {
	demand, err := l.LoadDemand(filepath.Join(dir, DemandFile))
	if err != nil {
		return nil, err
	}
	productivity, err := l.LoadProductivity(filepath.Join(dir, ProductivityFile))
	if err != nil {
		return nil, err
	}
	return &dto.Dataset{Source: dir, Demand: demand, Productivity: productivity}, nil
}

// LoadDemand loads mold demand records from a CSV file
func (l *Loader) LoadDemand(filename string) ([]*entities.MoldDemandRecord, error) {
	records, header, err := readTable(filename, l.columns.Demand.Required())
	if err != nil {
		return nil, err
	}

	demand := make([]*entities.MoldDemandRecord, 0, len(records))
	for _, row := range records {
		record, ok := l.columns.Demand.DemandRecord(header, row)
		if !ok {
			continue
		}
		demand = append(demand, record)
	}

	return demand, nil
}

// LoadProductivity loads productivity records from a CSV file
func (l *Loader) LoadProductivity(filename string) ([]entities.ProductivityRecord, error) {
	records, header, err := readTable(filename, l.columns.Productivity.Required())
	if err != nil {
		return nil, err
	}

	productivity := make([]entities.ProductivityRecord, 0, len(records))
	for _, row := range records {
		record, ok := l.columns.Productivity.ProductivityRecord(header, row)
		if !ok {
			continue
		}
		productivity = append(productivity, record)
	}

	return productivity, nil
}

// readTable reads a CSV file, validates its header and returns the data rows
func readTable(filename string, required []string) ([][]string, tabular.Header, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, &entities.DataLoadError{Source: filename, Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, &entities.DataLoadError{Source: filename, Err: fmt.Errorf("failed to read CSV: %w", err)}
	}

	if len(records) < 1 {
		return nil, nil, &entities.DataLoadError{Source: filename, Err: fmt.Errorf("CSV must have a header row")}
	}

	header := tabular.NewHeader(records[0])
	if missing := header.Missing(required...); len(missing) > 0 {
		return nil, nil, &entities.DataLoadError{Source: filename, Columns: missing}
	}

	return records[1:], header, nil
}
