package models

import "time"

// Event types recorded in the history log.
const (
	EventCommand  = "COMMAND"  // position applied from a client request
	EventRecenter = "RECENTER" // watchdog or shutdown returned the servo home
	EventStartup  = "STARTUP"  // process start, servo homed
	EventError    = "ERROR"    // driver write failed
)

// ServoEvent is a single history log entry.
type ServoEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // COMMAND | RECENTER | STARTUP | ERROR
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
