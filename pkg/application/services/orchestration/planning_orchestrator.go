package orchestration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vsinha/explan/pkg/application/dto"
	"github.com/vsinha/explan/pkg/application/services/expander"
	"github.com/vsinha/explan/pkg/application/services/filter"
	"github.com/vsinha/explan/pkg/application/services/scheduler"
	"github.com/vsinha/explan/pkg/domain/entities"
	"github.com/vsinha/explan/pkg/domain/repositories"
	"github.com/vsinha/explan/pkg/domain/services"
	"github.com/vsinha/explan/pkg/infrastructure/logger"
	"github.com/vsinha/explan/pkg/infrastructure/metrics"
	"github.com/vsinha/explan/pkg/infrastructure/repositories/memory"
)

// PlanningOrchestrator runs the plan pipeline: expand, filter, schedule, summarize.
// It only reads from its repositories and is safe for concurrent Run calls.
type PlanningOrchestrator struct {
	scheduler        *scheduler.Scheduler
	demandRepo       repositories.DemandRepository
	productivityRepo repositories.ProductivityRepository
	validator        *services.DatasetValidator
	recorder         metrics.Recorder
	logger           logger.Logger
	source           string
	now              func() time.Time
}

// NewPlanningOrchestrator creates a new planning orchestrator. A nil scheduler
// uses the default policy and a nil logger discards output.
func NewPlanningOrchestrator(
	sched *scheduler.Scheduler,
	demandRepo repositories.DemandRepository,
	productivityRepo repositories.ProductivityRepository,
	log logger.Logger,
) *PlanningOrchestrator {
	if sched == nil {
		sched = scheduler.Default()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PlanningOrchestrator{
		scheduler:        sched,
		demandRepo:       demandRepo,
		productivityRepo: productivityRepo,
		validator:        services.NewDatasetValidator(),
		recorder:         metrics.NopRecorder{},
		logger:           log.With("orchestrator"),
		now:              time.Now,
	}
}

// NewFromDataset loads a dataset into in-memory repositories and wires an
// orchestrator over them.
func NewFromDataset(sched *scheduler.Scheduler, ds *dto.Dataset, log logger.Logger) (*PlanningOrchestrator, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset cannot be nil")
	}

	demandRepo := memory.NewDemandRepository(len(ds.Demand))
	if err := demandRepo.LoadDemandRecords(ds.Demand); err != nil {
		return nil, fmt.Errorf("failed to load demand records: %w", err)
	}
	productivityRepo := memory.NewProductivityRepository(len(ds.Productivity))
	if err := productivityRepo.LoadProductivity(ds.Productivity); err != nil {
		return nil, fmt.Errorf("failed to load productivity: %w", err)
	}

	po := NewPlanningOrchestrator(sched, demandRepo, productivityRepo, log)
	po.source = ds.Source
	return po, nil
}

// WithRecorder sets the metrics recorder and returns the orchestrator
func (po *PlanningOrchestrator) WithRecorder(r metrics.Recorder) *PlanningOrchestrator {
	if r == nil {
		r = metrics.NopRecorder{}
	}
	po.recorder = r
	return po
}

// Validate reports data quality problems in the repositories and logs each one
func (po *PlanningOrchestrator) Validate() (*services.ValidationResult, error) {
	result, err := po.validate()
	if err != nil {
		return nil, err
	}
	for _, w := range result.Warnings {
		po.logger.Warnf("%s", w)
	}
	return result, nil
}

func (po *PlanningOrchestrator) validate() (*services.ValidationResult, error) {
	demand, err := po.demandRepo.GetDemandRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to read demand records: %w", err)
	}
	productivity, err := po.productivityRepo.GetAllProductivity()
	if err != nil {
		return nil, fmt.Errorf("failed to read productivity: %w", err)
	}

	records := make([]*entities.MoldDemandRecord, len(demand))
	for i := range demand {
		records[i] = &demand[i]
	}
	return po.validator.Validate(records, productivity), nil
}

// Run computes the manufacturing plan for the events matching criteria.
// It returns entities.ErrNoEvents or entities.ErrNoMatchingEvents when there
// is nothing to plan.
func (po *PlanningOrchestrator) Run(ctx context.Context, criteria filter.Criteria) (*dto.PlanResult, error) {
	start := po.now()

	result, err := po.run(ctx, criteria)
	elapsed := po.now().Sub(start)
	switch {
	case err == nil:
		po.recorder.RecordPlan(metrics.OutcomeOK, result.Counts, elapsed)
		po.logger.Infof("plan %s computed: %d rows, %s to manufacture in %s",
			result.RunID, len(result.Rows), result.Total, result.TotalLabel)
	case IsEmptyResult(err):
		po.recorder.RecordPlan(metrics.OutcomeEmpty, nil, elapsed)
		po.logger.Infof("nothing to plan: %v", err)
	default:
		po.recorder.RecordPlan(metrics.OutcomeError, nil, elapsed)
		po.logger.Errorf("plan failed: %v", err)
	}
	return result, err
}

func (po *PlanningOrchestrator) run(ctx context.Context, criteria filter.Criteria) (*dto.PlanResult, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	// Step 1: expand demand records into dated events
	events, err := po.events()
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, entities.ErrNoEvents
	}

	// Step 2: apply the filters
	selected := filter.Apply(events, criteria)
	if len(selected) == 0 {
		return nil, entities.ErrNoMatchingEvents
	}
	po.logger.Debugf("%d of %d events match %+v", len(selected), len(events), criteria)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 3: schedule and summarize
	rows := po.scheduler.ComputeExplan(selected, po.productivityRepo)

	quality, err := po.validate()
	if err != nil {
		return nil, err
	}

	return &dto.PlanResult{
		RunID:       uuid.New(),
		GeneratedAt: po.now().UTC(),
		Source:      po.source,
		Criteria:    criteria,
		Rows:        rows,
		Total:       filter.Total(selected),
		TotalLabel:  filter.Label(criteria),
		Counts:      dto.CountInstructions(rows),
		Warnings:    quality.Warnings,
	}, nil
}

// FilterOptions lists the selectable filter values under criteria
func (po *PlanningOrchestrator) FilterOptions(criteria filter.Criteria) (filter.Options, error) {
	if err := criteria.Validate(); err != nil {
		return filter.Options{}, err
	}
	events, err := po.events()
	if err != nil {
		return filter.Options{}, err
	}
	return filter.BuildOptions(events, criteria), nil
}

func (po *PlanningOrchestrator) events() ([]entities.ScheduleEvent, error) {
	records, err := po.demandRepo.GetDemandRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to read demand records: %w", err)
	}
	return expander.Expand(records), nil
}

// IsEmptyResult reports whether err means there was nothing to plan
func IsEmptyResult(err error) bool {
	return errors.Is(err, entities.ErrNoEvents) || errors.Is(err, entities.ErrNoMatchingEvents)
}
