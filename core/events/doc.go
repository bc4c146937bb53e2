// Package events defines the scheduler related events emitted on the event bus.
//
// Available event types:
//   - AssignmentEvent: a task was matched to a robot and its route reserved
//   - TaskCompletedEvent: a robot finished its delivery
//   - TaskCancelledEvent: a task reached the cancelled state
//   - ChargingEvent: the charging policy pulled a robot from the pool
package events
