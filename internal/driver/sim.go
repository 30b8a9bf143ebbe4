package driver

import (
	"context"
	"sync"

	"controlling_servo/internal/models"
)

// Sim is an in-memory servo for development without hardware attached.
type Sim struct {
	mu       sync.Mutex
	position int
	moves    int
}

// NewSim returns a simulated servo resting at the home position.
func NewSim() *Sim {
	return &Sim{position: models.HomePosition}
}

func (s *Sim) Move(ctx context.Context, deg int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	deg = clamp(deg)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = deg
	s.moves++
	return deg, nil
}

func (s *Sim) Close() error { return nil }

// Position reports the last written angle.
func (s *Sim) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// Moves reports how many writes have been issued.
func (s *Sim) Moves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moves
}
