package commands

import (
	"github.com/spf13/cobra"

	"github.com/vsinha/explan/pkg/infrastructure/config"
)

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	configPath string
}

func (o *rootOptions) load() (*config.Config, error) {
	return config.Load(o.configPath)
}

// NewRootCommand builds the explan command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "explan",
		Short:         "Mold manufacturing plan calculator",
		Long:          "explan computes when each mold must start manufacturing so it is ready before its production line changeover.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "configuration file (.toml, .yaml or .json)")

	root.AddCommand(
		newPlanCmd(opts),
		newFiltersCmd(opts),
		newServeCmd(opts),
		newConfigCmd(),
	)
	return root
}

// Execute runs the CLI.
func Execute() error { return NewRootCommand().Execute() }
