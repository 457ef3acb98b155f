package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/explan/pkg/application/dto"
	"github.com/vsinha/explan/pkg/domain/entities"
	"github.com/vsinha/explan/pkg/infrastructure/repositories/tabular"
)

// Default sheet names of the production kardex workbook
const (
	DefaultDemandSheet       = "BASE1"
	DefaultProductivitySheet = "BASE2"
)

// Options configures which sheets and columns the loader reads
type Options struct {
	DemandSheet       string
	ProductivitySheet string
	Columns           tabular.Columns
}

// DefaultOptions returns the layout of the production kardex workbook
func DefaultOptions() Options {
	return Options{
		DemandSheet:       DefaultDemandSheet,
		ProductivitySheet: DefaultProductivitySheet,
		Columns:           tabular.DefaultColumns(),
	}
}

// Loader reads demand and productivity tables from an xlsx workbook
type Loader struct {
	opts Options
}

// NewLoader creates a new workbook loader
func NewLoader(opts Options) *Loader {
	return &Loader{opts: opts}
}

// Load opens a workbook file and reads both tables
func (l *Loader) Load(path string) (*dto.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &entities.DataLoadError{Source: path, Err: fmt.Errorf("failed to open excel: %w", err)}
	}
	defer f.Close()

	return l.LoadWorkbook(f, path)
}

// LoadReader reads both tables from a workbook stream
func (l *Loader) LoadReader(r io.Reader, source string) (*dto.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &entities.DataLoadError{Source: source, Err: fmt.Errorf("failed to open excel: %w", err)}
	}
	defer f.Close()

	return l.LoadWorkbook(f, source)
}

// LoadWorkbook reads both tables from an already opened workbook
func (l *Loader) LoadWorkbook(f *excelize.File, source string) (*dto.Dataset, error) {
	demandRows, demandHeader, err := readSheet(f, source, l.opts.DemandSheet, l.opts.Columns.Demand.Required())
	if err != nil {
		return nil, err
	}
	productivityRows, productivityHeader, err := readSheet(f, source, l.opts.ProductivitySheet, l.opts.Columns.Productivity.Required())
	if err != nil {
		return nil, err
	}

	ds := &dto.Dataset{
		Source:       source,
		Demand:       make([]*entities.MoldDemandRecord, 0, len(demandRows)),
		Productivity: make([]entities.ProductivityRecord, 0, len(productivityRows)),
	}
	for _, row := range demandRows {
		if record, ok := l.opts.Columns.Demand.DemandRecord(demandHeader, row); ok {
			ds.Demand = append(ds.Demand, record)
		}
	}
	for _, row := range productivityRows {
		if record, ok := l.opts.Columns.Productivity.ProductivityRecord(productivityHeader, row); ok {
			ds.Productivity = append(ds.Productivity, record)
		}
	}

	return ds, nil
}

// readSheet returns the data rows of a sheet after checking its header.
// Raw cell values are used so that date cells arrive as Excel serials.
func readSheet(f *excelize.File, source, sheet string, required []string) ([][]string, tabular.Header, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, nil, &entities.DataLoadError{Source: source, Sheet: sheet, Err: fmt.Errorf("sheet not found")}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, &entities.DataLoadError{Source: source, Sheet: sheet, Err: err}
	}
	if len(rows) == 0 {
		return nil, nil, &entities.DataLoadError{Source: source, Sheet: sheet, Err: fmt.Errorf("empty sheet")}
	}

	header := tabular.NewHeader(rows[0])
	if missing := header.Missing(required...); len(missing) > 0 {
		return nil, nil, &entities.DataLoadError{Source: source, Sheet: sheet, Columns: missing}
	}

	return rows[1:], header, nil
}
