// Package ranking selects which robot executes which delivery task.
package ranking

import (
	"github.com/Cavendish02/AI-Factory-Robots/core/model"
)

// Config holds the scoring weights. The weights are independent knobs and do
// not have to sum to 1.
type Config struct {
	// Alpha weighs the speed factor.
	Alpha float64 `json:"alpha"`
	// Beta weighs the energy factor.
	Beta float64 `json:"beta"`
}

// SetDefaults applies the default weights.
func (c *Config) SetDefaults() {
	if c.Alpha == 0 {
		c.Alpha = 0.6
	}
	if c.Beta == 0 {
		c.Beta = 0.4
	}
}

// distanceEpsilon keeps the denominator positive when the pickup and dropoff
// coincide with the robot's position.
const distanceEpsilon = 0.1

// Ranker scores candidate robots against tasks.
type Ranker struct {
	alpha float64
	beta  float64
}

// New returns a Ranker with the given weights.
func New(cfg Config) *Ranker {
	cfg.SetDefaults()
	return &Ranker{alpha: cfg.Alpha, beta: cfg.Beta}
}

// Score rates a robot for a task. Robots that are not available score exactly
// 0, as do robots whose capacity is below the task weight; neither is
// distinguishable from a poor match.
func (r *Ranker) Score(robot *model.Robot, task *model.Task) float64 {
	if robot.Status != model.StatusAvailable {
		return 0
	}

	d1 := robot.Pos.Manhattan(task.Pickup)
	d2 := task.Pickup.Manhattan(task.Dropoff)
	totalDistance := float64(d1+d2) + distanceEpsilon

	speedFactor := robot.Velocity / model.MaxVelocity * r.alpha
	energyFactor := robot.Charge / model.MaxCharge * r.beta

	weightOK := 0.0
	if robot.Capacity >= task.Weight {
		weightOK = 1.0
	}

	return (speedFactor + energyFactor) / totalDistance * weightOK * task.Urgency.Multiplier()
}

// SelectBest returns the available robot with the strictly greatest score.
// Ties go to the first candidate in iteration order, which keeps selection
// stable. When no available robot qualifies it returns (nil, -1); callers
// retry on a later cycle rather than failing.
func (r *Ranker) SelectBest(robots []*model.Robot, task *model.Task) (*model.Robot, float64) {
	var best *model.Robot
	bestScore := -1.0
	for _, robot := range robots {
		score := r.Score(robot, task)
		if robot.Status == model.StatusAvailable && score > bestScore {
			best = robot
			bestScore = score
		}
	}
	if best == nil {
		return nil, -1
	}
	return best, bestScore
}
