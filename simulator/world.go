// Package simulator drives robot motion tick by tick. It is the execution
// collaborator of the scheduler: the scheduler plans and reserves, the world
// moves robots one cell per tick and signals completion back.
package simulator

import (
	"github.com/Cavendish02/AI-Factory-Robots/core/charging"
	"github.com/Cavendish02/AI-Factory-Robots/core/grid"
	"github.com/Cavendish02/AI-Factory-Robots/core/logger"
	"github.com/Cavendish02/AI-Factory-Robots/core/model"
	"github.com/Cavendish02/AI-Factory-Robots/core/scheduler"
)

// World advances the simulation. All mutation happens inside Step, which the
// host calls from a single goroutine: movement is a serialized tick separate
// from the assignment cycle.
type World struct {
	grid  *grid.Grid
	sched *scheduler.Scheduler
	cfg   charging.Config
	log   logger.Logger
	tick  int
}

// NewWorld builds a movement driver over the scheduler's fleet. log may be
// nil.
func NewWorld(g *grid.Grid, sched *scheduler.Scheduler, cfg charging.Config, log logger.Logger) *World {
	cfg.SetDefaults()
	if log == nil {
		log = nopLogger{}
	}
	return &World{grid: g, sched: sched, cfg: cfg, log: log}
}

// Tick returns the current simulation tick.
func (w *World) Tick() int { return w.tick }

// Step runs one full tick: charging policy, one assignment cycle, then one
// movement step for every robot.
func (w *World) Step() {
	w.sched.EvaluateCharging(w.stationDistance)
	w.sched.AssignNext(w.tick)
	for _, robot := range w.sched.Robots() {
		w.advance(robot)
	}
	w.tick++
}

// advance moves a busy robot one grid unit toward its next waypoint. Routes
// are simplified, so consecutive waypoints may be several cells apart; the
// robot interpolates axis by axis, larger delta first.
func (w *World) advance(robot *model.Robot) {
	switch robot.Status {
	case model.StatusCharging:
		robot.Recharge(w.cfg.ChargeRatePerTick)
		return
	case model.StatusBusy:
	default:
		return
	}
	if len(robot.Route) == 0 {
		return
	}

	next := robot.Route[0]
	if robot.Pos == next {
		robot.Route = robot.Route[1:]
		if len(robot.Route) == 0 {
			w.log.Debugf("%s reached final waypoint (%d,%d) at tick %d",
				robot.ID, robot.Pos.X, robot.Pos.Y, w.tick)
			w.sched.OnRouteCompleted(robot)
			return
		}
		w.log.Debugf("%s reached waypoint (%d,%d), %d remaining",
			robot.ID, robot.Pos.X, robot.Pos.Y, len(robot.Route))
		return
	}

	dx := next.X - robot.Pos.X
	dy := next.Y - robot.Pos.Y
	if absInt(dx) > absInt(dy) {
		robot.Pos.X += sign(dx)
	} else {
		robot.Pos.Y += sign(dy)
	}
	robot.TotalDistance++
	robot.Drain(w.cfg.DrainRatePerStep)
}

// stationDistance is the walking distance to the nearest source cell, which
// doubles as the charging dock in this layout.
func (w *World) stationDistance(robot *model.Robot) float64 {
	best := -1
	for _, s := range w.grid.Sources() {
		if d := robot.Pos.Manhattan(s); best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return 0
	}
	return float64(best)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
