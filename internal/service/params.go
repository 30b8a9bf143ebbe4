package service

import "time"

// Status is the read-only snapshot served at GET /status. The field set and
// JSON names match the firmware contract consumed by the tracking client.
type Status struct {
	Status       string `json:"status"`        // always "ok"
	Position     int    `json:"position"`      // degrees, 0..180
	UptimeMillis int64  `json:"uptime"`        // ms since process start
	WifiStrength int    `json:"wifi_strength"` // dBm; 0 when unknown
}

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "COMMAND", "RECENTER", "STARTUP", "ERROR"
}
