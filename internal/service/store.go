package service

import (
	"sync"
	"time"

	"controlling_servo/internal/models"
)

// Store is the single owner of actuator state. gin serves requests
// concurrently and the watchdog ticks on its own goroutine, so every
// mutation goes through one mutex; commands apply in the order the lock
// admits them.
type Store struct {
	mu            sync.Mutex
	position      int
	lastCommandAt time.Time
	updatedAt     time.Time
}

// NewStore returns a store resting at the home position with the command
// clock starting at now.
func NewStore(now time.Time) *Store {
	return &Store{
		position:      models.HomePosition,
		lastCommandAt: now,
		updatedAt:     now,
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() models.ServoState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() models.ServoState {
	return models.ServoState{
		Position:      s.position,
		State:         models.StateFor(s.position),
		LastCommandAt: s.lastCommandAt,
		UpdatedAt:     s.updatedAt,
	}
}

// Position returns only the current angle.
func (s *Store) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// Apply records a commanded position and resets the command clock.
// The position is clamped; validation of client input happens in the service.
func (s *Store) Apply(deg int, now time.Time) models.ServoState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.position = models.ClampPosition(deg)
	s.lastCommandAt = now
	s.updatedAt = now
	return s.snapshotLocked()
}

// Sweep checks the dead-man's-switch. When the silence exceeds timeout:
//   - already home: only reset the clock. The reset keeps elapsed bounded
//     and stops the branch from refiring every tick;
//   - away from home: report true without mutating. The caller commits the
//     recenter through Apply once the hardware write succeeds; a failed
//     write leaves the deadline expired so the next tick retries.
func (s *Store) Sweep(now time.Time, timeout time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastCommandAt) <= timeout {
		return false
	}

	if s.position == models.HomePosition {
		s.lastCommandAt = now
		return false
	}

	return true
}
