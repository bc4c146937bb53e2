package model

// RobotStatus is the operational state of a robot.
type RobotStatus int

const (
	StatusAvailable RobotStatus = iota
	StatusBusy
	StatusCharging
	StatusMaintenance
	StatusIdle
)

// String returns a human readable status name.
func (s RobotStatus) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusBusy:
		return "busy"
	case StatusCharging:
		return "charging"
	case StatusMaintenance:
		return "maintenance"
	case StatusIdle:
		return "idle"
	}
	return "unknown"
}

const (
	// MaxVelocity is the velocity used to normalize the speed factor.
	MaxVelocity = 30.0
	// MaxCharge is the charge level used to normalize the energy factor.
	MaxCharge = 100.0
)

// Robot is a mobile delivery unit. Created once at system start; status and
// position mutate every movement tick, the identity never changes.
type Robot struct {
	ID   string
	Name string
	Pos  Cell

	Status   RobotStatus
	Velocity float64 // cells per time unit, up to MaxVelocity
	Charge   float64 // percent, 0..MaxCharge
	Capacity float64 // payload weight limit in kg

	// Route the robot is currently executing, consumed waypoint by waypoint
	// by the movement driver.
	Route  Path
	TaskID string

	CompletedTasks  int
	TotalDistance   float64
	BatteryConsumed float64
}

// Available reports whether the robot can take a new task.
func (r *Robot) Available() bool { return r.Status == StatusAvailable }

// Drain reduces charge for one movement step. The drain scales with how fast
// the robot travels.
func (r *Robot) Drain(ratePerStep float64) {
	d := ratePerStep * r.Velocity / MaxVelocity
	r.Charge -= d
	if r.Charge < 0 {
		r.Charge = 0
	}
	r.BatteryConsumed += d
}

// Recharge raises the charge by rate, capped at MaxCharge.
func (r *Robot) Recharge(rate float64) {
	r.Charge += rate
	if r.Charge > MaxCharge {
		r.Charge = MaxCharge
	}
}
