package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"controlling_servo/internal/driver"
	"controlling_servo/internal/models"
	"controlling_servo/internal/repository"
)

// ErrOutOfRange rejects client positions outside 0..180. Client input is
// rejected, not clamped; only internal write paths clamp.
var ErrOutOfRange = errors.New("position must be 0-180")

type ServoService struct {
	store     *Store
	drv       driver.Servo
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
}

func NewServoService(store *Store, drv driver.Servo, stateRepo repository.StateRepo, eventRepo repository.EventRepo) *ServoService {
	return &ServoService{store: store, drv: drv, stateRepo: stateRepo, eventRepo: eventRepo}
}

// SetPosition validates deg, commands the actuator synchronously, then
// updates the store and resets the command clock. A rejected position leaves
// state and hardware untouched.
func (s *ServoService) SetPosition(ctx context.Context, deg int) (models.ServoState, error) {
	if deg < models.MinPosition || deg > models.MaxPosition {
		return models.ServoState{}, ErrOutOfRange
	}
	return s.move(ctx, deg, models.EventCommand, fmt.Sprintf("position set to %d", deg))
}

// Home drives the actuator to the center position. Used at startup and on
// graceful shutdown; the event type tells the history log which one.
func (s *ServoService) Home(ctx context.Context, eventType, description string) (models.ServoState, error) {
	return s.move(ctx, models.HomePosition, eventType, description)
}

func (s *ServoService) move(ctx context.Context, deg int, eventType, description string) (models.ServoState, error) {
	written, err := s.drv.Move(ctx, deg)
	if err != nil {
		// Best-effort: an event-log failure must not mask the driver error.
		_ = s.eventRepo.Append(ctx, models.ServoEvent{
			OccurredAt:  time.Now().UTC(),
			Type:        models.EventError,
			Description: "driver write failed",
			Metadata:    map[string]any{"position": deg, "error": err.Error()},
		})
		return models.ServoState{}, fmt.Errorf("move servo: %w", err)
	}

	st := s.store.Apply(written, time.Now().UTC())

	// Snapshot and history persist best-effort; the move already happened.
	_ = s.stateRepo.Save(ctx, st)
	_ = s.eventRepo.Append(ctx, models.ServoEvent{
		OccurredAt:  st.UpdatedAt,
		Type:        eventType,
		Description: description,
		Metadata:    map[string]any{"position": st.Position, "state": st.State},
	})

	return st, nil
}
