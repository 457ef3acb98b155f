package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vsinha/explan/pkg/application/dto"
	"github.com/vsinha/explan/pkg/domain/entities"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	warnStyle   = cellStyle.Foreground(lipgloss.Color("214"))
	okStyle     = cellStyle.Foreground(lipgloss.Color("42"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

// numeric columns are right aligned
const (
	colQuantity = 3
	colStock    = 4
	colToMake   = 5
	colText     = 6
)

// WriteText prints the plan as a table followed by the summary line
func WriteText(w io.Writer, result *dto.PlanResult, productivitySheet string) error {
	rows := make([][]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		rows = append(rows, record(row, productivitySheet))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(Columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			switch col {
			case colQuantity, colStock, colToMake:
				return numberStyle
			case colText:
				if row >= 0 && row < len(result.Rows) {
					return instructionStyle(result.Rows[row].Instruction.Kind)
				}
			}
			return cellStyle
		})

	if _, err := fmt.Fprintln(w, titleStyle.Render("📋 Plan de Fabricación")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, Summary(result))
	return err
}

func instructionStyle(kind entities.InstructionKind) lipgloss.Style {
	switch kind {
	case entities.Scheduled:
		return okStyle
	case entities.InvalidProductivity, entities.MoldNotRegistered, entities.StartOutOfRange:
		return warnStyle
	default:
		return cellStyle
	}
}
