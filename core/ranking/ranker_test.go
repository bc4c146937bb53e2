package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Cavendish02/AI-Factory-Robots/core/model"
)

func referenceRobot() *model.Robot {
	return &model.Robot{
		ID:       "R1",
		Pos:      model.Cell{X: 0, Y: 0},
		Status:   model.StatusAvailable,
		Velocity: 30,
		Charge:   100,
		Capacity: 10,
	}
}

func referenceTask() *model.Task {
	// D1 = 2, D2 = 3.
	return &model.Task{
		ID:      "T1",
		Pickup:  model.Cell{X: 2, Y: 0},
		Dropoff: model.Cell{X: 5, Y: 0},
		Urgency: model.UrgencyNormal,
		Weight:  5,
	}
}

func TestScoreReferenceScenario(t *testing.T) {
	r := New(Config{})
	// ((30/30*0.6)+(100/100*0.4)) / (2+3+0.1) = 1/5.1
	assert.InDelta(t, 0.19608, r.Score(referenceRobot(), referenceTask()), 1e-4)
}

func TestScoreUrgencyMultipliers(t *testing.T) {
	r := New(Config{})
	base := r.Score(referenceRobot(), referenceTask())

	urgent := referenceTask()
	urgent.Urgency = model.UrgencyUrgent
	assert.InDelta(t, base*1.5, r.Score(referenceRobot(), urgent), 1e-9)

	emergency := referenceTask()
	emergency.Urgency = model.UrgencyEmergency
	assert.InDelta(t, base*2.0, r.Score(referenceRobot(), emergency), 1e-9)
}

func TestScoreNonAvailableIsZero(t *testing.T) {
	r := New(Config{})
	for _, status := range []model.RobotStatus{
		model.StatusBusy, model.StatusCharging, model.StatusMaintenance, model.StatusIdle,
	} {
		robot := referenceRobot()
		robot.Status = status
		assert.Zero(t, r.Score(robot, referenceTask()), "status %s", status)
	}
}

func TestScoreCapacityGate(t *testing.T) {
	r := New(Config{})
	task := referenceTask()
	task.Weight = 25
	assert.Zero(t, r.Score(referenceRobot(), task))
}

func TestScoreZeroDistanceUsesEpsilon(t *testing.T) {
	r := New(Config{})
	robot := referenceRobot()
	task := referenceTask()
	task.Pickup = robot.Pos
	task.Dropoff = robot.Pos
	// Denominator is 0.1, not 0.
	assert.InDelta(t, 10.0, r.Score(robot, task), 1e-9)
}

func TestScoreCustomWeights(t *testing.T) {
	r := New(Config{Alpha: 1, Beta: 1})
	// (1 + 1) / 5.1
	assert.InDelta(t, 2.0/5.1, r.Score(referenceRobot(), referenceTask()), 1e-9)
}

func TestSelectBestPrefersHigherScore(t *testing.T) {
	r := New(Config{})
	slow := referenceRobot()
	slow.ID = "slow"
	slow.Velocity = 15
	fast := referenceRobot()
	fast.ID = "fast"

	best, score := r.SelectBest([]*model.Robot{slow, fast}, referenceTask())
	assert.Equal(t, "fast", best.ID)
	assert.Greater(t, score, 0.0)
}

func TestSelectBestStableOnTies(t *testing.T) {
	r := New(Config{})
	a := referenceRobot()
	a.ID = "a"
	b := referenceRobot()
	b.ID = "b"

	best, _ := r.SelectBest([]*model.Robot{a, b}, referenceTask())
	assert.Equal(t, "a", best.ID, "first candidate wins ties")
}

func TestSelectBestNoneAvailable(t *testing.T) {
	r := New(Config{})
	busy := referenceRobot()
	busy.Status = model.StatusBusy
	charging := referenceRobot()
	charging.ID = "R2"
	charging.Status = model.StatusCharging

	best, score := r.SelectBest([]*model.Robot{busy, charging}, referenceTask())
	assert.Nil(t, best)
	assert.Equal(t, -1.0, score)
}
