// Package reservation implements the spacetime occupancy ledger that keeps
// two robots from being predicted at the same cell within a small time margin.
package reservation

import (
	"sync"

	"github.com/Cavendish02/AI-Factory-Robots/core/model"
)

// DefaultConflictWindowTicks is the margin within which two robots may not
// share a cell. The value is empirical, which is why it stays a named knob.
const DefaultConflictWindowTicks = 2

// Config holds reservation settings.
type Config struct {
	// ConflictWindowTicks is the minimum tick distance between two robots'
	// claims on the same cell.
	ConflictWindowTicks int `json:"conflict_window_ticks"`
}

// SetDefaults applies the default conflict window.
func (c *Config) SetDefaults() {
	if c.ConflictWindowTicks == 0 {
		c.ConflictWindowTicks = DefaultConflictWindowTicks
	}
}

type entry struct {
	robotID string
	tick    int
}

// Table is a time-indexed occupancy ledger. It is the one shared mutable
// structure the core exposes to concurrent callers, so the check-and-commit
// in TryReserve runs under a single mutex. Each scheduler owns its own Table
// instance; there is no process-wide singleton.
type Table struct {
	mu     sync.Mutex
	window int
	cells  map[model.Cell]entry
	routes map[string]model.Path
}

// NewTable returns an empty table.
func NewTable(cfg Config) *Table {
	cfg.SetDefaults()
	return &Table{
		window: cfg.ConflictWindowTicks,
		cells:  make(map[model.Cell]entry),
		routes: make(map[string]model.Path),
	}
}

// TryReserve claims every cell of the path for the robot, step i at tick
// startTick+i. The call is all-or-nothing: if any cell is held by a different
// robot within the conflict window, nothing is committed and the call returns
// false. A robot's own prior claims are overwritten. The core never
// force-overwrites another robot's reservation.
func (t *Table) TryReserve(robotID string, path model.Path, startTick int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, cell := range path {
		tick := startTick + i
		if e, ok := t.cells[cell]; ok {
			if e.robotID != robotID && absInt(tick-e.tick) < t.window {
				return false
			}
		}
	}

	for i, cell := range path {
		t.cells[cell] = entry{robotID: robotID, tick: startTick + i}
	}
	t.routes[robotID] = path.Clone()
	return true
}

// Release removes every claim owned by the robot. No-op when the robot holds
// no reservation.
func (t *Table) Release(robotID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	path, ok := t.routes[robotID]
	if !ok {
		return
	}
	for _, cell := range path {
		if e, ok := t.cells[cell]; ok && e.robotID == robotID {
			delete(t.cells, cell)
		}
	}
	delete(t.routes, robotID)
}

// Route returns the path currently reserved by the robot, nil when none.
func (t *Table) Route(robotID string) model.Path {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.routes[robotID].Clone()
}

// DynamicObstacles returns every cell claimed by another robot within the
// conflict window of currentTick. Feed the result into the search exclusion
// set so new routes steer around other robots' near-term positions.
func (t *Table) DynamicObstacles(currentTick int, excludeRobotID string) model.CellSet {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(model.CellSet)
	for cell, e := range t.cells {
		if e.robotID != excludeRobotID && absInt(e.tick-currentTick) < t.window {
			out.Add(cell)
		}
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
