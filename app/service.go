// Package app wires configuration into a running dispatch service.
package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Cavendish02/AI-Factory-Robots/config"
	"github.com/Cavendish02/AI-Factory-Robots/core/charging"
	"github.com/Cavendish02/AI-Factory-Robots/core/events"
	"github.com/Cavendish02/AI-Factory-Robots/core/grid"
	coremetrics "github.com/Cavendish02/AI-Factory-Robots/core/metrics"
	"github.com/Cavendish02/AI-Factory-Robots/core/model"
	"github.com/Cavendish02/AI-Factory-Robots/core/ranking"
	"github.com/Cavendish02/AI-Factory-Robots/core/reservation"
	"github.com/Cavendish02/AI-Factory-Robots/core/scheduler"
	"github.com/Cavendish02/AI-Factory-Robots/core/stats"
	"github.com/Cavendish02/AI-Factory-Robots/infra/logger"
	"github.com/Cavendish02/AI-Factory-Robots/infra/metrics"
	"github.com/Cavendish02/AI-Factory-Robots/internal/eventbus"
	"github.com/Cavendish02/AI-Factory-Robots/simulator"
)

// Service orchestrates the scheduler, the movement driver and the reporting
// jobs.
type Service struct {
	Scheduler *scheduler.Scheduler
	World     *simulator.World
	Grid      *grid.Grid

	cfg     *config.Config
	gen     *simulator.Generator
	bus     *eventbus.Bus[events.Event]
	cron    *cron.Cron
	statsCh chan struct{}
	log     logger.Logger

	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	layout, err := cfg.Map.Layout()
	if err != nil {
		return nil, err
	}
	if layout == nil {
		layout = grid.DefaultLayout
	}
	g, err := grid.Parse(layout)
	if err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	var sink coremetrics.Sink = coremetrics.NopSink{}
	if cfg.Metrics.PrometheusEnabled {
		s, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sink = s
	}

	bus := eventbus.New[events.Event]()
	table := reservation.NewTable(cfg.Reservation)
	ranker := ranking.New(cfg.Ranker)
	policy := charging.NewPolicy(cfg.Charging)
	sched, err := scheduler.New(cfg.Scheduler, g, ranker, table, policy, bus, sink, logger.New("scheduler"))
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}

	starts := g.Starts()
	for _, rc := range cfg.Robots {
		pos, ok := starts[rc.ID]
		if !ok {
			return nil, fmt.Errorf("robot %s has no start cell in the layout", rc.ID)
		}
		sched.AddRobot(&model.Robot{
			ID:       rc.ID,
			Name:     rc.Name,
			Pos:      pos,
			Status:   model.StatusAvailable,
			Velocity: rc.Velocity,
			Charge:   rc.Charge,
			Capacity: rc.Capacity,
		})
	}

	svc := &Service{
		Scheduler: sched,
		World:     simulator.NewWorld(g, sched, cfg.Charging, logger.New("world")),
		Grid:      g,
		cfg:       cfg,
		gen:       simulator.NewGenerator(g, cfg.Simulation.Seed),
		bus:       bus,
		cron:      cron.New(),
		statsCh:   make(chan struct{}, 1),
		log:       logg,
	}
	// The cron job only signals; the summary itself runs on the tick
	// goroutine, the sole owner of the fleet entities.
	if _, err := svc.cron.AddFunc(
		fmt.Sprintf("@every %ds", cfg.Simulation.StatsEverySeconds),
		func() {
			select {
			case svc.statsCh <- struct{}{}:
			default:
			}
		},
	); err != nil {
		return nil, fmt.Errorf("stats job: %w", err)
	}
	svc.promEnabled = cfg.Metrics.PrometheusEnabled
	svc.promPort = cfg.Metrics.PrometheusPort
	return svc, nil
}

// Run drives the tick loop until the context is cancelled or the configured
// tick budget runs out.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	s.cron.Start()

	ticker := time.NewTicker(time.Duration(s.cfg.Simulation.TickMillis) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.statsCh:
			s.logStats()
		case <-ticker.C:
			if s.cfg.Simulation.MaxTicks > 0 && s.World.Tick() >= s.cfg.Simulation.MaxTicks {
				return nil
			}
			if s.World.Tick()%s.cfg.Simulation.TaskEveryTicks == 0 {
				task := s.gen.Next()
				s.Scheduler.AddTask(task)
				s.log.Infof("task %s queued: %s %s -> (%d,%d)",
					task.ID, task.Urgency, task.Category, task.Dropoff.X, task.Dropoff.Y)
			}
			s.World.Step()
		}
	}
}

// Close stops the background jobs and the event bus.
func (s *Service) Close() error {
	s.cron.Stop()
	s.bus.Close()
	return nil
}

func (s *Service) logStats() {
	snap := stats.Collect(s.Scheduler.Robots(), s.Scheduler.Tasks())
	fields := map[string]any{
		"completed":  snap.TasksCompleted,
		"cancelled":  snap.TasksCancelled,
		"pending":    snap.TasksPending,
		"distance":   snap.TotalDistance,
		"efficiency": snap.EfficiencyScore(),
	}
	if !math.IsNaN(snap.MeanTaskSeconds) {
		fields["mean_task_seconds"] = snap.MeanTaskSeconds
	}
	s.log.Debugw("fleet summary", fields)
}
