package model

import "math"

// Cell is a discrete grid coordinate. Cells have no identity beyond their
// coordinates.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Manhattan returns the Manhattan distance to another cell.
func (c Cell) Manhattan(o Cell) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// Euclidean returns the straight-line distance to another cell.
func (c Cell) Euclidean(o Cell) float64 {
	dx := float64(c.X - o.X)
	dy := float64(c.Y - o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Path is an ordered cell sequence, start inclusive. An empty path means
// "no route".
type Path []Cell

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// CellSet is a set of cells, used as the exclusion set for a search call.
type CellSet map[Cell]struct{}

// NewCellSet builds a set from the given cells.
func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

// Add inserts a cell into the set.
func (s CellSet) Add(c Cell) { s[c] = struct{}{} }

// Has reports whether the cell is in the set.
func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}
