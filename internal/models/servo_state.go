package models

import "time"

// Position limits for a standard 180° servo, matching the hardware range.
const (
	MinPosition  = 0
	MaxPosition  = 180
	HomePosition = 90 // center; startup and timeout-recovery position
)

// Tracking states derived from the current position.
const (
	StateHome     = "HOME"     // position == HomePosition
	StateTracking = "TRACKING" // anything else
)

// ServoState is the current snapshot of the actuator.
type ServoState struct {
	Position      int       `json:"position"` // degrees, 0..180
	State         string    `json:"state"`    // HOME | TRACKING
	LastCommandAt time.Time `json:"last_command_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ClampPosition forces deg into the valid servo range.
// Every write path clamps; validation of client input happens earlier.
func ClampPosition(deg int) int {
	if deg < MinPosition {
		return MinPosition
	}
	if deg > MaxPosition {
		return MaxPosition
	}
	return deg
}

// StateFor returns the tracking state implied by a position.
func StateFor(position int) string {
	if position == HomePosition {
		return StateHome
	}
	return StateTracking
}
