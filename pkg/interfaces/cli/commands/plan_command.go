package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsinha/explan/pkg/application/services/filter"
	"github.com/vsinha/explan/pkg/application/services/orchestration"
	"github.com/vsinha/explan/pkg/domain/entities"
	"github.com/vsinha/explan/pkg/infrastructure/config"
	"github.com/vsinha/explan/pkg/infrastructure/metrics"
	"github.com/vsinha/explan/pkg/interfaces/cli/output"
)

// Config holds the flag values of the plan command. Empty fields keep the
// value from the configuration file.
type Config struct {
	Input   string
	Year    int
	Month   int
	Mold    string
	Line    string
	Format  string
	Output  string
	Verbose bool
}

// apply overrides the loaded settings with the flags that were set
func (c Config) apply(settings *config.Config) error {
	if c.Input != "" {
		settings.Input.Path = c.Input
	}
	if c.Format != "" {
		settings.Output.Format = c.Format
	}
	if c.Output != "" {
		settings.Output.Path = c.Output
	}
	if c.Verbose {
		settings.Logging.Level = "debug"
	}
	return settings.Validate()
}

// Criteria returns the filter criteria selected by the flags
func (c Config) Criteria() filter.Criteria {
	return filter.Criteria{
		Year:  c.Year,
		Month: c.Month,
		Mold:  entities.NormalizeMold(c.Mold),
		Line:  c.Line,
	}
}

// PlanCommand computes and renders the manufacturing plan
type PlanCommand struct {
	config   Config
	settings *config.Config
	out      io.Writer
}

// NewPlanCommand creates a new plan command with the given configuration
func NewPlanCommand(cfg Config, settings *config.Config, out io.Writer) *PlanCommand {
	if settings == nil {
		settings = config.Default()
	}
	if out == nil {
		out = os.Stdout
	}
	return &PlanCommand{config: cfg, settings: settings, out: out}
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) error {
	if err := c.config.apply(c.settings); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	criteria := c.config.Criteria()
	if err := criteria.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	log := newLogger(c.settings, "plan")
	if c.config.Verbose {
		c.printHeader()
	}

	planner, _, err := newPlanner(c.settings, log, metrics.NopRecorder{})
	if err != nil {
		return err
	}

	startTime := time.Now()
	result, err := planner.Run(ctx, criteria)
	if orchestration.IsEmptyResult(err) {
		fmt.Fprintln(c.out, output.Notice(err))
		return nil
	}
	if err != nil {
		return fmt.Errorf("error computing plan: %w", err)
	}
	if c.config.Verbose {
		fmt.Fprintf(c.out, "✅ Plan computed in %v\n\n", time.Since(startTime))
	}

	path := c.settings.Output.Path
	switch {
	case c.config.Output != "":
	case c.settings.Output.Format == output.FormatText:
		path = ""
	case c.settings.Output.Format != output.FormatXLSX && path == output.DefaultXLSXFile:
		// the default path names the workbook; other formats go to stdout
		path = ""
	}
	err = output.Generate(result, output.Config{
		Format:            c.settings.Output.Format,
		Path:              path,
		ProductivitySheet: c.settings.Input.ProductivitySheet,
		Out:               c.out,
		Verbose:           c.config.Verbose,
	})
	if err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}
	return nil
}

// printHeader prints the command header information
func (c *PlanCommand) printHeader() {
	fmt.Fprintf(c.out, "🚀 Mold manufacturing plan\n")
	fmt.Fprintf(c.out, "Input: %s\n", c.settings.Input.Path)
	fmt.Fprintf(c.out, "Sheets: %s / %s\n", c.settings.Input.DemandSheet, c.settings.Input.ProductivitySheet)
	fmt.Fprintf(c.out, "Lead time: %d days, %d shifts per day\n",
		c.settings.Scheduling.LeadTimeDays, c.settings.Scheduling.ShiftsPerDay)
	fmt.Fprintf(c.out, "Output format: %s\n\n", c.settings.Output.Format)
}

func newPlanCmd(root *rootOptions) *cobra.Command {
	var cfg Config

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute the manufacturing plan",
		Example: `  explan plan --input "PRODUCCION KARDEX.xlsx"
  explan plan --year 2024 --month 3 --format xlsx --output plan.xlsx
  explan plan --input ./data --mold MYIFZ01 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			settings, err := root.load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return NewPlanCommand(cfg, settings, cmd.OutOrStdout()).Execute(ctx)
		},
	}

	addFilterFlags(cmd, &cfg)
	cmd.Flags().StringVarP(&cfg.Format, "format", "f", "", "output format: text, json, csv, xlsx")
	cmd.Flags().StringVarP(&cfg.Output, "output", "o", "", "output file (default stdout, Plan_de_Fabricacion.xlsx for xlsx)")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable verbose output")
	return cmd
}

func addFilterFlags(cmd *cobra.Command, cfg *Config) {
	cmd.Flags().StringVarP(&cfg.Input, "input", "i", "", "workbook (.xlsx) or directory with demand.csv and productivity.csv")
	cmd.Flags().IntVar(&cfg.Year, "year", 0, "only change dates in this year")
	cmd.Flags().IntVar(&cfg.Month, "month", 0, "only change dates in this month (1-12)")
	cmd.Flags().StringVar(&cfg.Mold, "mold", "", "only this mold")
	cmd.Flags().StringVar(&cfg.Line, "line", "", "only this production line")
}
