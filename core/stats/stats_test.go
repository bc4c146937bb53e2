package stats

import (
	"math"
	"testing"
	"time"

	"github.com/Cavendish02/AI-Factory-Robots/core/model"
)

func completedTask(seconds float64) *model.Task {
	t := model.NewTask(model.Cell{X: 1, Y: 1}, model.Cell{X: 5, Y: 1}, model.UrgencyNormal, 1, "parts")
	now := time.Now()
	t.CreatedAt = now.Add(-time.Duration(seconds * float64(time.Second)))
	t.Status = model.TaskCompleted
	t.CompletedAt = now
	return t
}

func TestCollectCountsByStatus(t *testing.T) {
	cancelled := model.NewTask(model.Cell{}, model.Cell{}, model.UrgencyNormal, 1, "parts")
	cancelled.Cancel("no path to source")
	pending := model.NewTask(model.Cell{}, model.Cell{}, model.UrgencyNormal, 1, "parts")
	active := model.NewTask(model.Cell{}, model.Cell{}, model.UrgencyNormal, 1, "parts")
	active.Assign("R1")

	snap := Collect(nil, []*model.Task{completedTask(10), cancelled, pending, active})
	if snap.TasksCompleted != 1 || snap.TasksCancelled != 1 || snap.TasksPending != 1 || snap.TasksActive != 1 {
		t.Fatalf("counts %+v", snap)
	}
}

func TestCollectDurationStatistics(t *testing.T) {
	tasks := []*model.Task{completedTask(10), completedTask(20), completedTask(30)}
	snap := Collect(nil, tasks)

	if math.Abs(snap.MeanTaskSeconds-20) > 0.1 {
		t.Fatalf("mean %.3f, want ~20", snap.MeanTaskSeconds)
	}
	// Sample standard deviation of {10,20,30} is 10.
	if math.Abs(snap.StdDevTaskSeconds-10) > 0.1 {
		t.Fatalf("stddev %.3f, want ~10", snap.StdDevTaskSeconds)
	}
}

func TestCollectNoCompletedTasksMeansNaN(t *testing.T) {
	snap := Collect(nil, nil)
	if !math.IsNaN(snap.MeanTaskSeconds) || !math.IsNaN(snap.StdDevTaskSeconds) {
		t.Fatalf("expected NaN, got mean=%.3f stddev=%.3f", snap.MeanTaskSeconds, snap.StdDevTaskSeconds)
	}
}

func TestCollectRobotUsage(t *testing.T) {
	robots := []*model.Robot{
		{ID: "R1", CompletedTasks: 3, TotalDistance: 120, BatteryConsumed: 9.6, Charge: 70},
		{ID: "R2", CompletedTasks: 1, TotalDistance: 40, BatteryConsumed: 3.2, Charge: 85},
	}
	tasks := []*model.Task{completedTask(5), completedTask(5), completedTask(5), completedTask(5)}

	snap := Collect(robots, tasks)
	if snap.TotalDistance != 160 {
		t.Fatalf("total distance %.1f", snap.TotalDistance)
	}
	if math.Abs(snap.BatteryConsumed-12.8) > 1e-9 {
		t.Fatalf("battery consumed %.2f", snap.BatteryConsumed)
	}
	if len(snap.Robots) != 2 {
		t.Fatalf("robots %d", len(snap.Robots))
	}
	if snap.Robots[0].UtilizationRate != 75 {
		t.Fatalf("R1 utilization %.1f, want 75", snap.Robots[0].UtilizationRate)
	}
	if snap.Robots[1].UtilizationRate != 25 {
		t.Fatalf("R2 utilization %.1f, want 25", snap.Robots[1].UtilizationRate)
	}
}

func TestEfficiencyScore(t *testing.T) {
	cases := []struct {
		name string
		snap Snapshot
		want float64
	}{
		{"empty", Snapshot{}, 0},
		{"all completed", Snapshot{TasksCompleted: 4}, 100},
		{"half", Snapshot{TasksCompleted: 2, TasksCancelled: 1, TasksPending: 1}, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.snap.EfficiencyScore(); got != tc.want {
				t.Fatalf("got %.1f, want %.1f", got, tc.want)
			}
		})
	}
}
