package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vsinha/explan/pkg/application/services/filter"
	"github.com/vsinha/explan/pkg/infrastructure/config"
	"github.com/vsinha/explan/pkg/infrastructure/metrics"
)

// FiltersCommand lists the values each plan filter can take
type FiltersCommand struct {
	config   Config
	settings *config.Config
	out      io.Writer
	asJSON   bool
}

// NewFiltersCommand creates a new filters command
func NewFiltersCommand(cfg Config, settings *config.Config, out io.Writer, asJSON bool) *FiltersCommand {
	if settings == nil {
		settings = config.Default()
	}
	if out == nil {
		out = os.Stdout
	}
	return &FiltersCommand{config: cfg, settings: settings, out: out, asJSON: asJSON}
}

// Execute prints the filter options
func (c *FiltersCommand) Execute() error {
	if err := c.config.apply(c.settings); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	planner, _, err := newPlanner(c.settings, newLogger(c.settings, "filters"), metrics.NopRecorder{})
	if err != nil {
		return err
	}
	opts, err := planner.FilterOptions(c.config.Criteria())
	if err != nil {
		return err
	}

	if c.asJSON {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(opts)
	}
	return writeOptions(c.out, opts)
}

func writeOptions(w io.Writer, opts filter.Options) error {
	years := make([]string, len(opts.Years))
	for i, y := range opts.Years {
		years[i] = strconv.Itoa(y)
	}
	months := make([]string, len(opts.Months))
	for i, m := range opts.Months {
		months[i] = fmt.Sprintf("%d=%s", m.Number, m.Name)
	}
	molds := make([]string, len(opts.Molds))
	for i, m := range opts.Molds {
		molds[i] = m.String()
	}

	_, err := fmt.Fprintf(w, "📅 Años: %s\n🗓️ Meses: %s\n🔩 Moldes: %s\n🏭 Líneas: %s\n",
		strings.Join(years, ", "),
		strings.Join(months, ", "),
		strings.Join(molds, ", "),
		strings.Join(opts.Lines, ", "))
	return err
}

func newFiltersCmd(root *rootOptions) *cobra.Command {
	var (
		cfg    Config
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "filters",
		Short: "List the years, months, molds and lines available for filtering",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := root.load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return NewFiltersCommand(cfg, settings, cmd.OutOrStdout(), asJSON).Execute()
		},
	}
	addFilterFlags(cmd, &cfg)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the options as JSON")
	return cmd
}
