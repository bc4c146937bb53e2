// Package pathfind computes collision-aware routes over the factory grid.
//
// The three search variants (breadth-first, uniform-cost, A*) share one
// expansion loop and differ only in how the frontier is ordered. All steps
// cost 1, so every variant returns a step-optimal path.
package pathfind

import (
	"fmt"

	"github.com/Cavendish02/AI-Factory-Robots/core/grid"
	"github.com/Cavendish02/AI-Factory-Robots/core/model"
)

// Strategy selects how the search frontier is ordered.
type Strategy int

const (
	// BFS explores in insertion order.
	BFS Strategy = iota
	// Dijkstra orders the frontier by distance from the start.
	Dijkstra
	// AStar orders the frontier by distance plus the Manhattan heuristic.
	AStar
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case BFS:
		return "bfs"
	case Dijkstra:
		return "dijkstra"
	case AStar:
		return "astar"
	}
	return "unknown"
}

// ParseStrategy maps a configuration string to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "bfs":
		return BFS, nil
	case "dijkstra":
		return Dijkstra, nil
	case "astar", "":
		return AStar, nil
	}
	return AStar, fmt.Errorf("pathfind: unknown strategy %q", s)
}

// Searcher runs grid searches. It holds no mutable state and is safe for
// concurrent use.
type Searcher struct {
	grid *grid.Grid
}

// New returns a Searcher over the given grid.
func New(g *grid.Grid) *Searcher {
	return &Searcher{grid: g}
}

// Find computes a route from start to goal avoiding static obstacles and the
// optional exclusion set. It returns an empty path when the goal is
// unreachable; callers treat that as "no route", never as an error. Output is
// deterministic for identical inputs: frontier ties are broken by a
// monotonically increasing insertion counter.
func (s *Searcher) Find(strategy Strategy, start, goal model.Cell, excluded model.CellSet) model.Path {
	if start == goal {
		return model.Path{start}
	}

	frontier := newFrontier()
	frontier.push(start, 0)

	dist := map[model.Cell]int{start: 0}
	cameFrom := make(map[model.Cell]model.Cell)
	visited := make(model.CellSet)

	for frontier.Len() > 0 {
		current := frontier.pop()
		if visited.Has(current) {
			// Lazily skip entries superseded by a shorter relaxation.
			continue
		}
		visited.Add(current)

		if current == goal {
			return reconstruct(cameFrom, start, goal)
		}

		for _, next := range s.grid.Neighbors(current) {
			if visited.Has(next) || excluded.Has(next) {
				continue
			}
			tentative := dist[current] + 1
			if known, seen := dist[next]; seen && tentative >= known {
				continue
			}
			dist[next] = tentative
			cameFrom[next] = current
			frontier.push(next, priority(strategy, tentative, next, goal))
		}
	}
	return model.Path{}
}

// priority maps a relaxed cell to its frontier ordering key. BFS uses a
// constant so the insertion counter alone orders the frontier (FIFO).
func priority(strategy Strategy, distance int, cell, goal model.Cell) int {
	switch strategy {
	case Dijkstra:
		return distance
	case AStar:
		return distance + cell.Manhattan(goal)
	}
	return 0
}

// reconstruct walks the predecessor map from goal back to start and reverses
// the result.
func reconstruct(cameFrom map[model.Cell]model.Cell, start, goal model.Cell) model.Path {
	path := model.Path{goal}
	for cur := goal; cur != start; {
		cur = cameFrom[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
