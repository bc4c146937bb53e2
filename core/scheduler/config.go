package scheduler

import "github.com/Cavendish02/AI-Factory-Robots/core/pathfind"

// Config defines scheduler settings.
type Config struct {
	// Strategy selects the search variant: "bfs", "dijkstra" or "astar".
	Strategy string `json:"strategy"`
}

// SetDefaults applies the default search strategy.
func (c *Config) SetDefaults() {
	if c.Strategy == "" {
		c.Strategy = "astar"
	}
}

// Validate checks the strategy name.
func (c Config) Validate() error {
	_, err := pathfind.ParseStrategy(c.Strategy)
	return err
}
