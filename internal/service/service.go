package service

import (
	"context"
	"time"

	"controlling_servo/internal/driver"
	"controlling_servo/internal/logger"
	"controlling_servo/internal/models"
	"controlling_servo/internal/repository"
	"controlling_servo/internal/wifi"
)

// Dead-man's-switch threshold: silence longer than this recenters the servo.
const CommandTimeout = 5 * time.Second

// Servo exposes control operations on the actuator.
type Servo interface {
	SetPosition(ctx context.Context, deg int) (models.ServoState, error)
	Home(ctx context.Context, eventType, description string) (models.ServoState, error)
}

// Monitoring exposes the read-only status snapshot (position, uptime, link).
type Monitoring interface {
	GetStatus(ctx context.Context) Status
}

// EventLog exposes the append-only history with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ServoEvent, error)
}

// Watchdog runs the background sweep that recenters the servo after command
// silence. Stop via context cancellation in main() for graceful shutdown.
type Watchdog interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services behind one dependency for the HTTP layer.
type Service struct {
	Servo
	Monitoring
	EventLog
	Watchdog
}

// NewService wires the driver, repositories and link reader into concrete
// services. All of them share one Store: the single owner of actuator state.
func NewService(repos *repository.Repository, drv driver.Servo, signal wifi.SignalReader, log *logger.Logger) *Service {
	store := NewStore(time.Now().UTC())
	return &Service{
		Servo:      NewServoService(store, drv, repos.StateRepo, repos.EventRepo),
		Monitoring: NewMonitoringService(store, signal),
		EventLog:   NewEventLogService(repos.EventRepo),
		Watchdog:   NewWatchdogService(store, drv, repos.StateRepo, repos.EventRepo, log, CommandTimeout),
	}
}
