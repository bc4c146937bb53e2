package simulator

import (
	"math/rand"

	"github.com/Cavendish02/AI-Factory-Robots/core/grid"
	"github.com/Cavendish02/AI-Factory-Robots/core/model"
)

var categories = []string{"parts", "tools", "materials", "documents", "food"}

// Generator produces random delivery tasks between the layout's source and
// destination cells. A fixed seed makes a run reproducible.
type Generator struct {
	grid *grid.Grid
	rng  *rand.Rand
}

// NewGenerator creates a Generator with the given seed.
func NewGenerator(g *grid.Grid, seed int64) *Generator {
	return &Generator{grid: g, rng: rand.New(rand.NewSource(seed))}
}

// Next creates one pending task: random source to random destination, weight
// 1..10 kg, urgency skewed toward normal.
func (g *Generator) Next() *model.Task {
	sources := g.grid.Sources()
	dests := g.grid.Destinations()
	pickup := sources[g.rng.Intn(len(sources))]
	dropoff := dests[g.rng.Intn(len(dests))]

	urgency := model.UrgencyNormal
	switch r := g.rng.Float64(); {
	case r > 0.9:
		urgency = model.UrgencyEmergency
	case r > 0.6:
		urgency = model.UrgencyUrgent
	}

	weight := 1 + g.rng.Float64()*9
	category := categories[g.rng.Intn(len(categories))]
	return model.NewTask(pickup, dropoff, urgency, weight, category)
}
