package simulator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Cavendish02/AI-Factory-Robots/core/charging"
	"github.com/Cavendish02/AI-Factory-Robots/core/grid"
	"github.com/Cavendish02/AI-Factory-Robots/core/model"
	"github.com/Cavendish02/AI-Factory-Robots/core/ranking"
	"github.com/Cavendish02/AI-Factory-Robots/core/reservation"
	"github.com/Cavendish02/AI-Factory-Robots/core/scheduler"
)

func newTestWorld(t *testing.T, rows []string) (*World, *scheduler.Scheduler, *grid.Grid) {
	t.Helper()
	g, err := grid.Parse(rows)
	if err != nil {
		t.Fatalf("parse grid: %v", err)
	}
	sched, err := scheduler.New(scheduler.Config{}, g, ranking.New(ranking.Config{}),
		reservation.NewTable(reservation.Config{}), charging.NewPolicy(charging.Config{}),
		nil, nil, nil)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	return NewWorld(g, sched, charging.Config{}, nil), sched, g
}

func testRobot(pos model.Cell) *model.Robot {
	return &model.Robot{
		ID:       "R1",
		Pos:      pos,
		Status:   model.StatusAvailable,
		Velocity: 25,
		Charge:   90,
		Capacity: 10,
	}
}

func TestStepDeliversTaskEndToEnd(t *testing.T) {
	rows := []string{
		"#########",
		"#R1S   D#",
		"#########",
	}
	w, sched, _ := newTestWorld(t, rows)
	robot := testRobot(model.Cell{X: 1, Y: 1})
	sched.AddRobot(robot)
	task := model.NewTask(model.Cell{X: 3, Y: 1}, model.Cell{X: 7, Y: 1}, model.UrgencyNormal, 2, "parts")
	sched.AddTask(task)

	// The route is 6 cells long; a handful of extra ticks covers waypoint
	// consumption steps.
	for i := 0; i < 20 && task.Status != model.TaskCompleted; i++ {
		w.Step()
	}

	if task.Status != model.TaskCompleted {
		t.Fatalf("task status %s after simulation", task.Status)
	}
	if robot.Pos != task.Dropoff {
		t.Fatalf("robot at %v, want %v", robot.Pos, task.Dropoff)
	}
	if robot.Status != model.StatusAvailable {
		t.Fatalf("robot status %s", robot.Status)
	}
	if robot.TotalDistance != 6 {
		t.Fatalf("distance %.0f, want 6", robot.TotalDistance)
	}
	if robot.BatteryConsumed <= 0 {
		t.Fatal("no battery consumed")
	}
}

func TestStepMovesOneCellPerTick(t *testing.T) {
	rows := []string{
		"#########",
		"#R1S   D#",
		"#########",
	}
	w, sched, _ := newTestWorld(t, rows)
	robot := testRobot(model.Cell{X: 1, Y: 1})
	sched.AddRobot(robot)
	sched.AddTask(model.NewTask(model.Cell{X: 3, Y: 1}, model.Cell{X: 7, Y: 1}, model.UrgencyNormal, 2, "parts"))

	w.Step()
	if robot.Status != model.StatusBusy {
		t.Fatalf("robot status %s after assignment tick", robot.Status)
	}
	from := robot.Pos
	w.Step()
	if got := robot.Pos.Manhattan(from); got != 1 {
		t.Fatalf("moved %d cells in one tick", got)
	}
}

func TestStepInterpolatesLargerAxisFirst(t *testing.T) {
	rows := []string{
		"######",
		"#R1 D#",
		"#    #",
		"#S   #",
		"######",
	}
	w, sched, _ := newTestWorld(t, rows)
	robot := testRobot(model.Cell{X: 1, Y: 1})
	robot.Status = model.StatusBusy
	robot.Route = model.Path{{X: 4, Y: 2}}
	sched.AddRobot(robot)

	w.Step()
	// dx=3 beats dy=1: the first move is horizontal.
	if robot.Pos != (model.Cell{X: 2, Y: 1}) {
		t.Fatalf("robot at %v, want (2,1)", robot.Pos)
	}
}

func TestStepRechargesChargingRobot(t *testing.T) {
	rows := []string{
		"#####",
		"#R1S#",
		"# D #",
		"#####",
	}
	w, sched, _ := newTestWorld(t, rows)
	robot := testRobot(model.Cell{X: 1, Y: 1})
	robot.Status = model.StatusCharging
	robot.Charge = 50
	sched.AddRobot(robot)

	w.Step()
	if robot.Charge != 52 {
		t.Fatalf("charge %.1f, want 52", robot.Charge)
	}
	if robot.Status != model.StatusCharging {
		t.Fatalf("robot status %s", robot.Status)
	}
}

func TestStepResumesRechargedRobot(t *testing.T) {
	rows := []string{
		"#####",
		"#R1S#",
		"# D #",
		"#####",
	}
	w, sched, _ := newTestWorld(t, rows)
	robot := testRobot(model.Cell{X: 1, Y: 1})
	robot.Status = model.StatusCharging
	robot.Charge = 82
	sched.AddRobot(robot)

	w.Step()
	if robot.Status != model.StatusAvailable {
		t.Fatalf("robot status %s, want available", robot.Status)
	}
}

type recordingLogger struct {
	nopLogger
	debugs []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.debugs = append(l.debugs, fmt.Sprintf(format, args...))
}

func TestStepLogsWaypointMilestones(t *testing.T) {
	rows := []string{
		"#########",
		"#R1S   D#",
		"#########",
	}
	g, err := grid.Parse(rows)
	if err != nil {
		t.Fatalf("parse grid: %v", err)
	}
	sched, err := scheduler.New(scheduler.Config{}, g, ranking.New(ranking.Config{}),
		reservation.NewTable(reservation.Config{}), charging.NewPolicy(charging.Config{}),
		nil, nil, nil)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	log := &recordingLogger{}
	w := NewWorld(g, sched, charging.Config{}, log)

	robot := testRobot(model.Cell{X: 1, Y: 1})
	sched.AddRobot(robot)
	task := model.NewTask(model.Cell{X: 3, Y: 1}, model.Cell{X: 7, Y: 1}, model.UrgencyNormal, 2, "parts")
	sched.AddTask(task)

	for i := 0; i < 20 && task.Status != model.TaskCompleted; i++ {
		w.Step()
	}

	var sawFinal bool
	for _, msg := range log.debugs {
		if strings.Contains(msg, "final waypoint (7,1)") {
			sawFinal = true
		}
	}
	if !sawFinal {
		t.Fatalf("no final waypoint log, got %q", log.debugs)
	}
}

func TestTickAdvances(t *testing.T) {
	rows := []string{
		"#####",
		"#R1S#",
		"# D #",
		"#####",
	}
	w, _, _ := newTestWorld(t, rows)
	if w.Tick() != 0 {
		t.Fatalf("initial tick %d", w.Tick())
	}
	w.Step()
	w.Step()
	if w.Tick() != 2 {
		t.Fatalf("tick %d, want 2", w.Tick())
	}
}

func TestGeneratorIsReproducible(t *testing.T) {
	g, err := grid.Parse(grid.DefaultLayout)
	if err != nil {
		t.Fatalf("parse layout: %v", err)
	}

	a := NewGenerator(g, 7)
	b := NewGenerator(g, 7)
	for i := 0; i < 10; i++ {
		ta, tb := a.Next(), b.Next()
		if ta.Pickup != tb.Pickup || ta.Dropoff != tb.Dropoff ||
			ta.Urgency != tb.Urgency || ta.Weight != tb.Weight || ta.Category != tb.Category {
			t.Fatalf("divergence at task %d: %+v vs %+v", i, ta, tb)
		}
	}
}

func TestGeneratorProducesValidTasks(t *testing.T) {
	g, err := grid.Parse(grid.DefaultLayout)
	if err != nil {
		t.Fatalf("parse layout: %v", err)
	}
	sources := make(map[model.Cell]bool)
	for _, s := range g.Sources() {
		sources[s] = true
	}
	dests := make(map[model.Cell]bool)
	for _, d := range g.Destinations() {
		dests[d] = true
	}

	gen := NewGenerator(g, 42)
	for i := 0; i < 50; i++ {
		task := gen.Next()
		if !sources[task.Pickup] {
			t.Fatalf("pickup %v is not a source", task.Pickup)
		}
		if !dests[task.Dropoff] {
			t.Fatalf("dropoff %v is not a destination", task.Dropoff)
		}
		if task.Weight < 1 || task.Weight > 10 {
			t.Fatalf("weight %.2f out of range", task.Weight)
		}
		if task.Status != model.TaskPending {
			t.Fatalf("status %s", task.Status)
		}
	}
}
