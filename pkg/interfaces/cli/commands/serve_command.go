package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vsinha/explan/pkg/infrastructure/metrics"
	"github.com/vsinha/explan/pkg/interfaces/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		input string
		addr  string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the plan API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			settings, err := root.load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if input != "" {
				settings.Input.Path = input
			}
			if addr != "" {
				settings.Server.Addr = addr
			}

			log := newLogger(settings, "serve")
			recorder, err := metrics.NewPromRecorder(prometheus.DefaultRegisterer)
			if err != nil {
				return fmt.Errorf("metrics: %w", err)
			}
			planner, _, err := newPlanner(settings, log, recorder)
			if err != nil {
				return err
			}

			srv := server.New(planner, server.Options{
				DevMode:           settings.Server.DevMode,
				ProductivitySheet: settings.Input.ProductivitySheet,
				Gatherer:          prometheus.DefaultGatherer,
				Logger:            log,
			})
			return srv.Run(ctx, settings.Server.Addr)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "workbook (.xlsx) or directory with demand.csv and productivity.csv")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	return cmd
}
