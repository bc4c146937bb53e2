// Package stats aggregates terminal task and robot state for reporting. It is
// a read-only consumer of the scheduler's entities.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/Cavendish02/AI-Factory-Robots/core/model"
)

// RobotUsage summarizes one robot's contribution.
type RobotUsage struct {
	RobotID         string
	TasksCompleted  int
	Distance        float64
	Charge          float64
	UtilizationRate float64 // share of completed tasks, percent
}

// Snapshot is a point-in-time summary of the whole system.
type Snapshot struct {
	TasksCompleted int
	TasksCancelled int
	TasksPending   int
	TasksActive    int

	TotalDistance   float64
	BatteryConsumed float64

	// Task duration statistics over completed tasks, in seconds. NaN when no
	// task has completed yet.
	MeanTaskSeconds   float64
	StdDevTaskSeconds float64

	Robots []RobotUsage
}

// Collect builds a snapshot from the current fleet and task list.
func Collect(robots []*model.Robot, tasks []*model.Task) Snapshot {
	snap := Snapshot{
		MeanTaskSeconds:   math.NaN(),
		StdDevTaskSeconds: math.NaN(),
	}

	var durations []float64
	for _, t := range tasks {
		switch t.Status {
		case model.TaskCompleted:
			snap.TasksCompleted++
			durations = append(durations, t.Duration().Seconds())
		case model.TaskCancelled:
			snap.TasksCancelled++
		case model.TaskPending:
			snap.TasksPending++
		default:
			snap.TasksActive++
		}
	}
	if len(durations) > 0 {
		snap.MeanTaskSeconds = stat.Mean(durations, nil)
		snap.StdDevTaskSeconds = stat.StdDev(durations, nil)
	}

	for _, r := range robots {
		snap.TotalDistance += r.TotalDistance
		snap.BatteryConsumed += r.BatteryConsumed
		usage := RobotUsage{
			RobotID:        r.ID,
			TasksCompleted: r.CompletedTasks,
			Distance:       r.TotalDistance,
			Charge:         r.Charge,
		}
		if snap.TasksCompleted > 0 {
			usage.UtilizationRate = float64(r.CompletedTasks) / float64(snap.TasksCompleted) * 100
		}
		snap.Robots = append(snap.Robots, usage)
	}
	return snap
}

// EfficiencyScore is the completed share of all terminal and live tasks,
// 0..100. Zero when no task exists.
func (s Snapshot) EfficiencyScore() float64 {
	total := s.TasksCompleted + s.TasksCancelled + s.TasksPending + s.TasksActive
	if total == 0 {
		return 0
	}
	return float64(s.TasksCompleted) / float64(total) * 100
}
