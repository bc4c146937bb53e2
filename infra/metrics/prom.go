package metrics

import (
	coremetrics "github.com/Cavendish02/AI-Factory-Robots/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records scheduler events in Prometheus metrics.
type PromSink struct {
	assignments *prometheus.CounterVec
	outcomes    *prometheus.CounterVec
	pathCost    prometheus.Histogram
	fleet       prometheus.Gauge
}

// NewPromSink registers metrics on the default Prometheus registerer. The
// Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_assignments_total",
		Help: "Total number of task assignments",
	}, []string{"robot_id", "urgency"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_task_outcomes_total",
		Help: "Total number of tasks reaching a terminal state",
	}, []string{"status"})
	pathCost := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fleet_path_cost_cells",
		Help:    "Cost in cells of reserved routes",
		Buckets: prometheus.LinearBuckets(0, 5, 12),
	})
	fleet := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleet_robots_available",
		Help: "Number of robots currently in the available pool",
	})

	if err := reg.Register(assignments); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			assignments = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(outcomes); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			outcomes = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(pathCost); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			pathCost = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(fleet); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			fleet = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{assignments: assignments, outcomes: outcomes, pathCost: pathCost, fleet: fleet}, nil
}

// RecordAssignment increments the assignment counter and observes the route
// cost.
func (s *PromSink) RecordAssignment(rec coremetrics.AssignmentRecord) error {
	s.assignments.WithLabelValues(rec.RobotID, rec.Urgency).Inc()
	s.pathCost.Observe(rec.PathCost)
	return nil
}

// RecordOutcome increments the terminal-state counter.
func (s *PromSink) RecordOutcome(rec coremetrics.OutcomeRecord) error {
	s.outcomes.WithLabelValues(rec.Status).Inc()
	return nil
}

// RecordFleet sets the available-robots gauge.
func (s *PromSink) RecordFleet(available int) error {
	s.fleet.Set(float64(available))
	return nil
}
