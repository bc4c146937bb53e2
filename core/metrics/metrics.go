package metrics

// AssignmentRecord captures one successful task-to-robot match.
type AssignmentRecord struct {
	TaskID   string
	RobotID  string
	Urgency  string
	Score    float64
	PathCost float64
	Turns    int
}

// OutcomeRecord captures a task reaching a terminal state.
type OutcomeRecord struct {
	TaskID  string
	Status  string
	Reason  string
	Seconds float64
}

// Sink records scheduler observations. Implementations must be safe for
// concurrent use.
type Sink interface {
	RecordAssignment(rec AssignmentRecord) error
	RecordOutcome(rec OutcomeRecord) error
	RecordFleet(available int) error
}

// DefaultPrometheusPort is the port /metrics is served on when none is
// configured.
const DefaultPrometheusPort = "2112"

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
}

// SetDefaults applies the default Prometheus port.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = DefaultPrometheusPort
	}
}

// NopSink discards every record.
type NopSink struct{}

func (NopSink) RecordAssignment(AssignmentRecord) error { return nil }
func (NopSink) RecordOutcome(OutcomeRecord) error       { return nil }
func (NopSink) RecordFleet(int) error                   { return nil }
