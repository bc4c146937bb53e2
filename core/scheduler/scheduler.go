// Package scheduler runs the assignment cycle: pick a pending task, rank the
// fleet, route the winner through pickup and dropoff, simplify the route and
// claim it in the reservation table.
package scheduler

import (
	"sort"
	"sync"

	"github.com/Cavendish02/AI-Factory-Robots/core/charging"
	"github.com/Cavendish02/AI-Factory-Robots/core/events"
	"github.com/Cavendish02/AI-Factory-Robots/core/grid"
	"github.com/Cavendish02/AI-Factory-Robots/core/logger"
	"github.com/Cavendish02/AI-Factory-Robots/core/metrics"
	"github.com/Cavendish02/AI-Factory-Robots/core/model"
	"github.com/Cavendish02/AI-Factory-Robots/core/pathfind"
	"github.com/Cavendish02/AI-Factory-Robots/core/ranking"
	"github.com/Cavendish02/AI-Factory-Robots/core/reservation"
	"github.com/Cavendish02/AI-Factory-Robots/internal/eventbus"
)

// Cancellation reasons surfaced to reporting.
const (
	ReasonNoPathToSource      = "no path to source"
	ReasonNoPathToDestination = "no path to destination"
	ReasonReservationConflict = "reservation conflict"
	ReasonCriticalBattery     = "critical battery level"
)

// Assignment is the outcome of a successful cycle: the plan handed to the
// movement driver.
type Assignment struct {
	Task    *model.Task
	Robot   *model.Robot
	Route   model.Path
	Metrics pathfind.Metrics
	Score   float64
}

// Scheduler owns the fleet state and the reservation table. All methods are
// serialized by an internal mutex so a concurrent host never observes a
// half-finished cycle.
type Scheduler struct {
	mu sync.Mutex

	strategy pathfind.Strategy
	search   *pathfind.Searcher
	ranker   *ranking.Ranker
	table    *reservation.Table
	policy   *charging.Policy

	robots []*model.Robot
	tasks  []*model.Task

	bus  *eventbus.Bus[events.Event]
	sink metrics.Sink
	log  logger.Logger
}

// New builds a Scheduler. bus, sink and log may be nil.
func New(cfg Config, g *grid.Grid, ranker *ranking.Ranker, table *reservation.Table,
	policy *charging.Policy, bus *eventbus.Bus[events.Event], sink metrics.Sink,
	log logger.Logger) (*Scheduler, error) {

	cfg.SetDefaults()
	strategy, err := pathfind.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Scheduler{
		strategy: strategy,
		search:   pathfind.New(g),
		ranker:   ranker,
		table:    table,
		policy:   policy,
		bus:      bus,
		sink:     sink,
		log:      log,
	}, nil
}

// AddRobot registers a robot with the fleet.
func (s *Scheduler) AddRobot(r *model.Robot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.robots = append(s.robots, r)
}

// AddTask enqueues a delivery request.
func (s *Scheduler) AddTask(t *model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, t)
}

// Robots returns the fleet.
func (s *Scheduler) Robots() []*model.Robot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.Robot(nil), s.robots...)
}

// Tasks returns every task ever enqueued, including terminal ones, for
// reporting.
func (s *Scheduler) Tasks() []*model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.Task(nil), s.tasks...)
}

// Table exposes the reservation table to the movement driver.
func (s *Scheduler) Table() *reservation.Table { return s.table }

// AssignNext runs one assignment cycle at the given tick. It returns nil when
// there is nothing to do this cycle: no pending task, no eligible robot
// (retry later), or the chosen plan was cancelled or deferred.
func (s *Scheduler) AssignNext(tick int) *Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.nextPending()
	if task == nil {
		return nil
	}

	robot, score := s.ranker.SelectBest(s.robots, task)
	if robot == nil {
		s.log.Debugf("task %s: no eligible robot, retrying next cycle", task.ID)
		return nil
	}

	obstacles := s.table.DynamicObstacles(tick, robot.ID)

	toPickup := s.search.Find(s.strategy, robot.Pos, task.Pickup, obstacles)
	if len(toPickup) == 0 {
		s.cancelLocked(task, ReasonNoPathToSource)
		return nil
	}
	toDropoff := s.search.Find(s.strategy, task.Pickup, task.Dropoff, obstacles)
	if len(toDropoff) == 0 {
		s.cancelLocked(task, ReasonNoPathToDestination)
		return nil
	}

	// Merge the two legs, dropping the duplicated pickup cell.
	full := append(toPickup.Clone(), toDropoff[1:]...)
	route := pathfind.Simplify(full)
	m := pathfind.Measure(route)

	if !s.table.TryReserve(robot.ID, route, tick) {
		// The plan is discarded, never forced. The task goes back to the
		// pending queue until its attempts run out.
		if !task.Retry() {
			s.cancelLocked(task, ReasonReservationConflict)
			return nil
		}
		s.log.Debugf("task %s: reservation conflict, %d attempts left",
			task.ID, task.MaxAttempts-task.Attempts)
		return nil
	}

	task.Assign(robot.ID)
	robot.Status = model.StatusBusy
	robot.Route = route.Clone()
	robot.TaskID = task.ID

	s.log.Infof("task %s assigned to %s (score %.3f, cost %.0f, %d turns)",
		task.ID, robot.ID, score, m.Cost, m.Turns)
	s.publish(events.AssignmentEvent{
		TaskID:   task.ID,
		RobotID:  robot.ID,
		Score:    score,
		PathCost: m.Cost,
		Turns:    m.Turns,
		Tick:     tick,
	})
	if err := s.sink.RecordAssignment(metrics.AssignmentRecord{
		TaskID:   task.ID,
		RobotID:  robot.ID,
		Urgency:  task.Urgency.String(),
		Score:    score,
		PathCost: m.Cost,
		Turns:    m.Turns,
	}); err != nil {
		s.log.Warnf("record assignment: %v", err)
	}

	return &Assignment{Task: task, Robot: robot, Route: route, Metrics: m, Score: score}
}

// OnRouteCompleted is called by the movement driver when a robot consumed its
// whole route. It finalizes the task and frees the reservation.
func (s *Scheduler) OnRouteCompleted(robot *model.Robot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.taskByID(robot.TaskID)
	robot.Route = nil
	robot.TaskID = ""
	robot.Status = model.StatusAvailable
	robot.CompletedTasks++
	s.table.Release(robot.ID)

	if task == nil {
		return
	}
	task.Complete()
	s.log.Infof("task %s completed by %s", task.ID, robot.ID)
	s.publish(events.TaskCompletedEvent{
		TaskID:   task.ID,
		RobotID:  robot.ID,
		Duration: task.Duration(),
	})
	if err := s.sink.RecordOutcome(metrics.OutcomeRecord{
		TaskID:  task.ID,
		Status:  task.Status.String(),
		Seconds: task.Duration().Seconds(),
	}); err != nil {
		s.log.Warnf("record outcome: %v", err)
	}
}

// Cancel cancels a task and releases any reservation held for it.
func (s *Scheduler) Cancel(task *model.Task, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if task.AssignedTo != "" {
		if robot := s.robotByID(task.AssignedTo); robot != nil {
			robot.Route = nil
			robot.TaskID = ""
			if robot.Status == model.StatusBusy {
				robot.Status = model.StatusAvailable
			}
			s.table.Release(robot.ID)
		}
	}
	s.cancelLocked(task, reason)
}

// EvaluateCharging applies the charging policy across the fleet.
// stationDist supplies the distance from a robot to its nearest charging
// station; nil uses a neutral default. Robots rated critical are pulled from
// the candidate pool (their task, if any, is cancelled); charging robots at
// the resume threshold return to it.
func (s *Scheduler) EvaluateCharging(stationDist func(*model.Robot) float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stationDist == nil {
		stationDist = func(*model.Robot) float64 { return 5 }
	}
	available := s.availableLocked()
	for _, robot := range s.robots {
		if robot.Status == model.StatusCharging {
			if s.policy.Recharged(robot) {
				robot.Status = model.StatusAvailable
				s.log.Infof("%s recharged to %.1f%%, back in pool", robot.ID, robot.Charge)
			}
			continue
		}
		dec := s.policy.Evaluate(robot, available, stationDist(robot))
		if dec.Priority != charging.PriorityCritical {
			continue
		}
		if task := s.taskByID(robot.TaskID); task != nil {
			s.table.Release(robot.ID)
			s.cancelLocked(task, ReasonCriticalBattery)
		}
		robot.Route = nil
		robot.TaskID = ""
		robot.Status = model.StatusCharging
		s.log.Warnf("%s critical battery (%.1f%%), pulled for charging", robot.ID, robot.Charge)
		s.publish(events.ChargingEvent{
			RobotID:  robot.ID,
			Priority: dec.Priority.String(),
			Charge:   robot.Charge,
		})
	}
	if err := s.sink.RecordFleet(s.availableLocked()); err != nil {
		s.log.Warnf("record fleet: %v", err)
	}
}

// nextPending returns the pending task with the highest priority score.
// Equal scores keep enqueue order.
func (s *Scheduler) nextPending() *model.Task {
	var pending []*model.Task
	for _, t := range s.tasks {
		if t.Status == model.TaskPending {
			pending = append(pending, t)
		}
	}
	if len(pending) == 0 {
		return nil
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].PriorityScore() > pending[j].PriorityScore()
	})
	return pending[0]
}

func (s *Scheduler) cancelLocked(task *model.Task, reason string) {
	task.Cancel(reason)
	s.log.Warnf("task %s cancelled: %s", task.ID, reason)
	s.publish(events.TaskCancelledEvent{TaskID: task.ID, Reason: reason})
	if err := s.sink.RecordOutcome(metrics.OutcomeRecord{
		TaskID: task.ID,
		Status: task.Status.String(),
		Reason: reason,
	}); err != nil {
		s.log.Warnf("record outcome: %v", err)
	}
}

func (s *Scheduler) availableLocked() int {
	n := 0
	for _, r := range s.robots {
		if r.Status == model.StatusAvailable {
			n++
		}
	}
	return n
}

func (s *Scheduler) taskByID(id string) *model.Task {
	if id == "" {
		return nil
	}
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *Scheduler) robotByID(id string) *model.Robot {
	for _, r := range s.robots {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (s *Scheduler) publish(e events.Event) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
