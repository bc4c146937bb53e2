package events

import "time"

// Event is implemented by every scheduler event.
type Event interface{ event() }

// AssignmentEvent is published when a task is matched to a robot and its
// route reserved.
type AssignmentEvent struct {
	TaskID   string
	RobotID  string
	Score    float64
	PathCost float64
	Turns    int
	Tick     int
}

// TaskCompletedEvent is published when a robot reaches the dropoff cell.
type TaskCompletedEvent struct {
	TaskID   string
	RobotID  string
	Duration time.Duration
}

// TaskCancelledEvent is published when a task is cancelled.
type TaskCancelledEvent struct {
	TaskID string
	Reason string
}

// ChargingEvent is published when the charging policy changes a robot's
// availability.
type ChargingEvent struct {
	RobotID  string
	Priority string
	Charge   float64
}

func (AssignmentEvent) event()    {}
func (TaskCompletedEvent) event() {}
func (TaskCancelledEvent) event() {}
func (ChargingEvent) event()      {}
