package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vsinha/explan/pkg/domain/entities"
)

// Plan outcomes
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Recorder receives one observation per plan computation
type Recorder interface {
	RecordPlan(outcome string, counts map[entities.InstructionKind]int, elapsed time.Duration)
}

// NopRecorder discards every observation.
type NopRecorder struct{}

func (NopRecorder) RecordPlan(string, map[entities.InstructionKind]int, time.Duration) {}

// PromRecorder records plan computations in Prometheus metrics.
type PromRecorder struct {
	plans    *prometheus.CounterVec
	rows     *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewPromRecorder registers the planner metrics on reg. If reg is nil the
// default registerer is used; collectors that are already registered are reused.
func NewPromRecorder(reg prometheus.Registerer) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "explan_plans_total",
		Help: "Total number of computed manufacturing plans by outcome",
	}, []string{"outcome"})
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "explan_plan_rows_total",
		Help: "Total number of plan rows by instruction kind",
	}, []string{"instruction"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "explan_plan_duration_seconds",
		Help:    "Time spent computing a manufacturing plan",
		Buckets: prometheus.DefBuckets,
	})

	var err error
	if plans, err = register(reg, plans); err != nil {
		return nil, err
	}
	if rows, err = register(reg, rows); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	return &PromRecorder{plans: plans, rows: rows, duration: duration}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordPlan counts the plan by outcome and its rows by instruction kind.
func (r *PromRecorder) RecordPlan(outcome string, counts map[entities.InstructionKind]int, elapsed time.Duration) {
	r.plans.WithLabelValues(outcome).Inc()
	for kind, n := range counts {
		r.rows.WithLabelValues(kind.String()).Add(float64(n))
	}
	r.duration.Observe(elapsed.Seconds())
}
