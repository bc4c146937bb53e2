package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Cavendish02/AI-Factory-Robots/core/charging"
	"github.com/Cavendish02/AI-Factory-Robots/core/metrics"
	"github.com/Cavendish02/AI-Factory-Robots/core/ranking"
	"github.com/Cavendish02/AI-Factory-Robots/core/reservation"
	"github.com/Cavendish02/AI-Factory-Robots/core/scheduler"
)

// RobotConfig declares one robot of the fleet. Position comes from the map's
// start cells, keyed by ID.
type RobotConfig struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Velocity float64 `json:"velocity"`
	Charge   float64 `json:"charge"`
	Capacity float64 `json:"capacity"`
}

// MapConfig selects the floor layout: inline rows, a layout file (one row per
// line), or neither for the built-in default.
type MapConfig struct {
	Rows []string `json:"rows"`
	File string   `json:"file"`
}

// Layout resolves the configured rows.
func (m MapConfig) Layout() ([]string, error) {
	if len(m.Rows) > 0 {
		return m.Rows, nil
	}
	if m.File == "" {
		return nil, nil
	}
	data, err := os.ReadFile(m.File)
	if err != nil {
		return nil, fmt.Errorf("read map file: %w", err)
	}
	rows := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	return rows, nil
}

// SimulationConfig drives the tick loop.
type SimulationConfig struct {
	TickMillis        int   `json:"tick_millis"`
	MaxTicks          int   `json:"max_ticks"`
	TaskEveryTicks    int   `json:"task_every_ticks"`
	Seed              int64 `json:"seed"`
	StatsEverySeconds int   `json:"stats_every_seconds"`
}

// SetDefaults applies loop defaults.
func (c *SimulationConfig) SetDefaults() {
	if c.TickMillis == 0 {
		c.TickMillis = 100
	}
	if c.TaskEveryTicks == 0 {
		c.TaskEveryTicks = 40
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	if c.StatsEverySeconds == 0 {
		c.StatsEverySeconds = 30
	}
}

// Config is the root configuration.
type Config struct {
	Map         MapConfig          `json:"map"`
	Robots      []RobotConfig      `json:"robots"`
	Ranker      ranking.Config     `json:"ranker"`
	Reservation reservation.Config `json:"reservation"`
	Charging    charging.Config    `json:"charging"`
	Scheduler   scheduler.Config   `json:"scheduler"`
	Metrics     metrics.Config     `json:"metrics"`
	Simulation  SimulationConfig   `json:"simulation"`
}

// Load reads the configuration file (yaml or json) and applies FLEET_
// environment overrides, FLEET_SCHEDULER__STRATEGY=bfs style.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("FLEET_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "fleet_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a runnable configuration without a file: built-in layout
// and the reference fleet.
func Default() *Config {
	cfg := &Config{
		Robots: []RobotConfig{
			{ID: "R1", Name: "CargoBot-1", Velocity: 25, Charge: 75, Capacity: 8},
			{ID: "R2", Name: "CargoBot-2", Velocity: 18, Charge: 85, Capacity: 15},
			{ID: "R3", Name: "CargoBot-3", Velocity: 22, Charge: 90, Capacity: 10},
			{ID: "R4", Name: "CargoBot-4", Velocity: 28, Charge: 80, Capacity: 6},
		},
	}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults applies defaults across every section.
func (c *Config) SetDefaults() {
	c.Ranker.SetDefaults()
	c.Reservation.SetDefaults()
	c.Charging.SetDefaults()
	c.Scheduler.SetDefaults()
	c.Metrics.SetDefaults()
	c.Simulation.SetDefaults()
}

// Validate checks cross-section consistency.
func (c *Config) Validate() error {
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	if len(c.Robots) == 0 {
		return fmt.Errorf("config: at least one robot is required")
	}
	seen := make(map[string]struct{}, len(c.Robots))
	for _, r := range c.Robots {
		if r.ID == "" {
			return fmt.Errorf("config: robot with empty id")
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("config: duplicate robot id %s", r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}
