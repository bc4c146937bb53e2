// Package charging decides when robots should leave the available pool to
// recharge. Charge level dominates the rules, tempered by velocity, fleet
// load and the distance to the nearest station.
package charging

import "github.com/Cavendish02/AI-Factory-Robots/core/model"

// Priority is the charging urgency for a robot.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

// String returns a human readable priority name.
func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	}
	return "low"
}

// Config holds charging thresholds. The resume threshold is an empirical
// knob, so it stays overridable.
type Config struct {
	// ResumeThreshold is the charge percentage at which a charging robot
	// returns to the available pool.
	ResumeThreshold float64 `json:"resume_threshold"`
	// ChargeRatePerTick is the charge gained per tick while docked.
	ChargeRatePerTick float64 `json:"charge_rate_per_tick"`
	// DrainRatePerStep is the base charge lost per movement step.
	DrainRatePerStep float64 `json:"drain_rate_per_step"`
}

// SetDefaults applies the charging constants.
func (c *Config) SetDefaults() {
	if c.ResumeThreshold == 0 {
		c.ResumeThreshold = 80
	}
	if c.ChargeRatePerTick == 0 {
		c.ChargeRatePerTick = 2.0
	}
	if c.DrainRatePerStep == 0 {
		c.DrainRatePerStep = 0.08
	}
}

// Decision is the outcome of a policy evaluation.
type Decision struct {
	Priority Priority
	Score    float64
}

// Policy evaluates charging priorities. It is a pure decision function
// consulted between task cycles; acting on the decision is the scheduler's
// job.
type Policy struct {
	cfg Config
}

// NewPolicy returns a Policy with defaults applied.
func NewPolicy(cfg Config) *Policy {
	cfg.SetDefaults()
	return &Policy{cfg: cfg}
}

// Config returns the effective configuration.
func (p *Policy) Config() Config { return p.cfg }

// Evaluate rates how urgently the robot needs charging. availableCount is the
// size of the current available pool, distToStation the walking distance to
// the nearest charging station. A critical decision means the robot must be
// pulled from the ranker's candidate pool until it recharges.
func (p *Policy) Evaluate(r *model.Robot, availableCount int, distToStation float64) Decision {
	charge := r.Charge
	switch {
	case charge < 15:
		return Decision{Priority: PriorityCritical, Score: 10.0}
	case charge < 25 && r.Velocity < 15:
		return Decision{Priority: PriorityCritical, Score: 9.0}
	case charge < 35 && distToStation > 25:
		return Decision{Priority: PriorityCritical, Score: 9.5}
	case charge < 35:
		return Decision{Priority: PriorityHigh, Score: 7.5}
	case charge < 50 && availableCount > 2:
		return Decision{Priority: PriorityHigh, Score: 6.5}
	case charge < 60:
		return Decision{Priority: PriorityMedium, Score: 4.5}
	case charge < 75:
		return Decision{Priority: PriorityLow, Score: 2.5}
	}
	return Decision{Priority: PriorityLow, Score: 1.0}
}

// Recharged reports whether a charging robot may resume work.
func (p *Policy) Recharged(r *model.Robot) bool {
	return r.Charge >= p.cfg.ResumeThreshold
}
