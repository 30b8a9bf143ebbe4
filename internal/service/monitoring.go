package service

import (
	"context"
	"time"

	"controlling_servo/internal/wifi"
)

type MonitoringService struct {
	store     *Store
	signal    wifi.SignalReader
	startedAt time.Time
}

func NewMonitoringService(store *Store, signal wifi.SignalReader) *MonitoringService {
	return &MonitoringService{
		store:     store,
		signal:    signal,
		startedAt: time.Now(),
	}
}

// GetStatus returns the live snapshot: position, uptime and link strength.
// No side effects; a failed RSSI read degrades to 0 rather than failing the
// status call.
func (s *MonitoringService) GetStatus(_ context.Context) Status {
	strength := 0
	if s.signal != nil {
		if v, err := s.signal.Strength(); err == nil {
			strength = v
		}
	}
	return Status{
		Status:       "ok",
		Position:     s.store.Position(),
		UptimeMillis: time.Since(s.startedAt).Milliseconds(),
		WifiStrength: strength,
	}
}
