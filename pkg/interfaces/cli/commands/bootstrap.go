package commands

import (
	"fmt"
	"os"

	"github.com/vsinha/explan/pkg/application/dto"
	"github.com/vsinha/explan/pkg/application/services/orchestration"
	"github.com/vsinha/explan/pkg/application/services/scheduler"
	"github.com/vsinha/explan/pkg/domain/entities"
	"github.com/vsinha/explan/pkg/infrastructure/config"
	"github.com/vsinha/explan/pkg/infrastructure/logger"
	"github.com/vsinha/explan/pkg/infrastructure/metrics"
	"github.com/vsinha/explan/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/explan/pkg/infrastructure/repositories/xlsx"
)

// loadDataset reads the input named by settings: a directory holds the CSV
// pair, anything else is opened as a workbook.
func loadDataset(settings *config.Config) (*dto.Dataset, error) {
	path := settings.Input.Path
	info, err := os.Stat(path)
	if err != nil {
		return nil, &entities.DataLoadError{Source: path, Err: err}
	}

	if info.IsDir() {
		return csv.NewLoader(settings.Input.Columns).Load(path)
	}
	return xlsx.NewLoader(xlsx.Options{
		DemandSheet:       settings.Input.DemandSheet,
		ProductivitySheet: settings.Input.ProductivitySheet,
		Columns:           settings.Input.Columns,
	}).Load(path)
}

// newScheduler builds the scheduler from the scheduling section
func newScheduler(settings *config.Config) (*scheduler.Scheduler, error) {
	policy := scheduler.Policy{
		LeadTimeDays: settings.Scheduling.LeadTimeDays,
		ShiftsPerDay: settings.Scheduling.ShiftsPerDay,
		Rules:        scheduler.PrefixRules(settings.Scheduling.PriorityPrefixes),
	}
	sched, err := scheduler.New(policy)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduling policy: %w", err)
	}
	return sched, nil
}

func newLogger(settings *config.Config, component string) logger.Logger {
	return logger.New(component, logger.Options{
		Level:  settings.Logging.Level,
		Format: settings.Logging.Format,
	})
}

// newPlanner loads the dataset and wires the orchestrator, logging data
// quality warnings once.
func newPlanner(settings *config.Config, log logger.Logger, recorder metrics.Recorder) (*orchestration.PlanningOrchestrator, *dto.Dataset, error) {
	ds, err := loadDataset(settings)
	if err != nil {
		return nil, nil, err
	}
	log.Infof("loaded %d demand records and %d productivity records from %s",
		len(ds.Demand), len(ds.Productivity), ds.Source)

	sched, err := newScheduler(settings)
	if err != nil {
		return nil, nil, err
	}
	planner, err := orchestration.NewFromDataset(sched, ds, log)
	if err != nil {
		return nil, nil, err
	}
	planner.WithRecorder(recorder)

	if _, err := planner.Validate(); err != nil {
		return nil, nil, err
	}
	return planner, ds, nil
}
