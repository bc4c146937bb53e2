package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskUrgency classifies how quickly a delivery must happen.
type TaskUrgency int

const (
	UrgencyNormal TaskUrgency = iota
	UrgencyUrgent
	UrgencyEmergency
)

// String returns a human readable urgency name.
func (u TaskUrgency) String() string {
	switch u {
	case UrgencyNormal:
		return "normal"
	case UrgencyUrgent:
		return "urgent"
	case UrgencyEmergency:
		return "emergency"
	}
	return "unknown"
}

// Multiplier returns the score multiplier applied by the ranker.
func (u TaskUrgency) Multiplier() float64 {
	switch u {
	case UrgencyUrgent:
		return 1.5
	case UrgencyEmergency:
		return 2.0
	}
	return 1.0
}

// TaskStatus is the lifecycle state of a task.
type TaskStatus int

const (
	TaskPending TaskStatus = iota
	TaskAssigned
	TaskInProgress
	TaskCompleted
	TaskCancelled
)

// String returns a human readable status name.
func (s TaskStatus) String() string {
	switch s {
	case TaskPending:
		return "pending"
	case TaskAssigned:
		return "assigned"
	case TaskInProgress:
		return "in_progress"
	case TaskCompleted:
		return "completed"
	case TaskCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Terminal reports whether the task reached a final state.
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskCancelled
}

// DefaultMaxAttempts bounds how often a task may return to the pending queue.
const DefaultMaxAttempts = 3

// categoryPriority weighs item categories when ordering the pending queue.
var categoryPriority = map[string]int{
	"materials": 4,
	"parts":     3,
	"tools":     2,
	"food":      2,
	"documents": 1,
}

// Task is a pickup-to-dropoff delivery request. The request itself is
// immutable; only the lifecycle fields mutate.
type Task struct {
	ID       string
	Pickup   Cell
	Dropoff  Cell
	Urgency  TaskUrgency
	Weight   float64 // kg
	Category string

	Status       TaskStatus
	AssignedTo   string
	CancelReason string

	CreatedAt   time.Time
	AssignedAt  time.Time
	CompletedAt time.Time
	CancelledAt time.Time

	Attempts    int
	MaxAttempts int
}

// NewTask creates a pending task with a generated identifier.
func NewTask(pickup, dropoff Cell, urgency TaskUrgency, weight float64, category string) *Task {
	return &Task{
		ID:          uuid.NewString(),
		Pickup:      pickup,
		Dropoff:     dropoff,
		Urgency:     urgency,
		Weight:      weight,
		Category:    category,
		Status:      TaskPending,
		CreatedAt:   time.Now(),
		MaxAttempts: DefaultMaxAttempts,
	}
}

// PriorityScore orders pending tasks: category weight times urgency.
func (t *Task) PriorityScore() int {
	base, ok := categoryPriority[t.Category]
	if !ok {
		base = 1
	}
	mult := 1
	switch t.Urgency {
	case UrgencyUrgent:
		mult = 2
	case UrgencyEmergency:
		mult = 3
	}
	return base * mult
}

// Assign marks the task as in progress on the given robot.
func (t *Task) Assign(robotID string) {
	t.Status = TaskInProgress
	t.AssignedTo = robotID
	t.AssignedAt = time.Now()
}

// Complete marks the task as completed.
func (t *Task) Complete() {
	t.Status = TaskCompleted
	t.CompletedAt = time.Now()
}

// Cancel marks the task as cancelled with a reason.
func (t *Task) Cancel(reason string) {
	t.Status = TaskCancelled
	t.CancelReason = reason
	t.CancelledAt = time.Now()
}

// Retry returns the task to the pending queue if attempts remain.
func (t *Task) Retry() bool {
	if t.Attempts >= t.MaxAttempts {
		return false
	}
	t.Attempts++
	t.Status = TaskPending
	t.AssignedTo = ""
	return true
}

// Duration is the time from creation to the terminal state, zero when the
// task is still live.
func (t *Task) Duration() time.Duration {
	switch {
	case !t.CompletedAt.IsZero():
		return t.CompletedAt.Sub(t.CreatedAt)
	case !t.CancelledAt.IsZero():
		return t.CancelledAt.Sub(t.CreatedAt)
	}
	return 0
}

// WaitTime is the time the task spent waiting for an assignment.
func (t *Task) WaitTime() time.Duration {
	if t.AssignedAt.IsZero() {
		return time.Since(t.CreatedAt)
	}
	return t.AssignedAt.Sub(t.CreatedAt)
}
