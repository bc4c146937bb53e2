package pathfind

import (
	"math"

	"github.com/Cavendish02/AI-Factory-Robots/core/model"
)

// Simplify drops colinear interior waypoints: a point survives only when the
// incoming and outgoing step directions differ. First and last points are
// always kept, paths of length <= 2 pass through unchanged. Simplify is
// idempotent.
func Simplify(p model.Path) model.Path {
	if len(p) <= 2 {
		return p
	}
	out := model.Path{p[0]}
	for i := 1; i < len(p)-1; i++ {
		in := step(p[i-1], p[i])
		outDir := step(p[i], p[i+1])
		if in != outDir {
			out = append(out, p[i])
		}
	}
	return append(out, p[len(p)-1])
}

// Metrics are the scalar costing figures derived from a path.
type Metrics struct {
	// Length is the number of cells in the path.
	Length int
	// Cost is Length-1; +Inf for an empty path, the "unreachable" sentinel.
	// Check math.IsInf before using it in arithmetic.
	Cost float64
	// Turns counts direction changes between consecutive steps.
	Turns int
	// StraightSegments is Turns+1 for paths longer than two points, else 0.
	StraightSegments int
}

// Measure derives metrics from a path.
func Measure(p model.Path) Metrics {
	if len(p) == 0 {
		return Metrics{Cost: math.Inf(1)}
	}
	m := Metrics{
		Length: len(p),
		Cost:   float64(len(p) - 1),
	}
	if len(p) > 2 {
		dir := step(p[0], p[1])
		for i := 2; i < len(p); i++ {
			next := step(p[i-1], p[i])
			if next != dir {
				m.Turns++
				dir = next
			}
		}
		m.StraightSegments = m.Turns + 1
	}
	return m
}

type direction struct{ dx, dy int }

func step(from, to model.Cell) direction {
	return direction{dx: to.X - from.X, dy: to.Y - from.Y}
}
