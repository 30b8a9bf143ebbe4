package repository

import (
	"context"
	"database/sql"
	"time"

	"controlling_servo/internal/models"
)

// StateRepo persists the latest actuator snapshot (single row). The in-memory
// store stays authoritative; this record exists for post-mortem inspection
// and the process always re-homes on start.
type StateRepo interface {
	Save(ctx context.Context, s models.ServoState) error
	Load(ctx context.Context) (models.ServoState, error)
}

// EventRepo is the append-only command/recenter history.
type EventRepo interface {
	Append(ctx context.Context, e models.ServoEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.ServoEvent, error)
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StateRepo: NewStateSQLite(db),
		EventRepo: NewEventSQLite(db),
	}
}
