// Package grid provides the static walkability index over the factory floor.
package grid

import (
	"fmt"

	"github.com/Cavendish02/AI-Factory-Robots/core/model"
)

// Kind classifies a grid cell.
type Kind int

const (
	Floor Kind = iota
	Wall
	Obstacle
	Source
	Destination
)

// directions is the fixed neighbor expansion order: down, up, right, left.
// Search tie-breaking depends on this order, do not reorder.
var directions = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// Grid is an immutable cell-kind matrix. Built once at startup, read-only
// afterwards.
type Grid struct {
	width  int
	height int
	cells  [][]Kind

	sources      []model.Cell
	destinations []model.Cell
	starts       map[string]model.Cell
}

// Parse builds a grid from an ASCII layout. Legend: '#' wall, 'O' obstacle,
// ' ' floor, 'S' source, 'D' destination, 'R' followed by a digit marks a
// robot start cell (the digit cell itself stays floor).
func Parse(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("grid: empty layout")
	}
	width := len(rows[0])
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("grid: row %d has length %d, want %d", y, len(row), width)
		}
	}

	g := &Grid{
		width:  width,
		height: len(rows),
		cells:  make([][]Kind, len(rows)),
		starts: make(map[string]model.Cell),
	}
	for y, row := range rows {
		g.cells[y] = make([]Kind, width)
		for x := 0; x < width; x++ {
			c := model.Cell{X: x, Y: y}
			switch ch := row[x]; {
			case ch == '#':
				g.cells[y][x] = Wall
			case ch == 'O':
				g.cells[y][x] = Obstacle
			case ch == 'S':
				g.cells[y][x] = Source
				g.sources = append(g.sources, c)
			case ch == 'D':
				g.cells[y][x] = Destination
				g.destinations = append(g.destinations, c)
			case ch == 'R' && x+1 < width && row[x+1] >= '0' && row[x+1] <= '9':
				g.starts["R"+string(row[x+1])] = c
			}
		}
	}
	return g, nil
}

// Validate rejects a layout unusable by the dispatch engine. This is the only
// fatal precondition: the engine itself never re-checks it.
func (g *Grid) Validate() error {
	if len(g.sources) == 0 {
		return fmt.Errorf("grid: no source cell in layout")
	}
	if len(g.destinations) == 0 {
		return fmt.Errorf("grid: no destination cell in layout")
	}
	if len(g.starts) == 0 {
		return fmt.Errorf("grid: no robot start cell in layout")
	}
	return nil
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// KindAt returns the kind of the cell, Wall for out-of-bounds coordinates.
func (g *Grid) KindAt(c model.Cell) Kind {
	if c.X < 0 || c.X >= g.width || c.Y < 0 || c.Y >= g.height {
		return Wall
	}
	return g.cells[c.Y][c.X]
}

// Walkable reports whether a robot may occupy the cell. Out-of-bounds, wall
// and obstacle cells are not walkable.
func (g *Grid) Walkable(c model.Cell) bool {
	k := g.KindAt(c)
	return k != Wall && k != Obstacle
}

// Neighbors returns the walkable 4-neighbors of the cell in the fixed order
// down, up, right, left.
func (g *Grid) Neighbors(c model.Cell) []model.Cell {
	out := make([]model.Cell, 0, 4)
	for _, d := range directions {
		n := model.Cell{X: c.X + d[0], Y: c.Y + d[1]}
		if g.Walkable(n) {
			out = append(out, n)
		}
	}
	return out
}

// Sources returns the pickup cells declared in the layout.
func (g *Grid) Sources() []model.Cell { return g.sources }

// Destinations returns the dropoff cells declared in the layout.
func (g *Grid) Destinations() []model.Cell { return g.destinations }

// Starts returns the robot start cells keyed by robot ID.
func (g *Grid) Starts() map[string]model.Cell { return g.starts }
