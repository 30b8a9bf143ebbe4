package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"controlling_servo/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	servoStateRowID = 1

	insertOrUpdateStateSQL = `
		INSERT INTO servo_state (id, position, state, last_command_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			position=excluded.position,
			state=excluded.state,
			last_command_at=excluded.last_command_at,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT position, state, last_command_at, updated_at
		FROM servo_state WHERE id=?
	`
)

// normalizeTimestamp persists UTC and fills zero values with now.
func normalizeTimestamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

// Save upserts the servo_state row (id always 1).
func (r *StateSQLite) Save(ctx context.Context, state models.ServoState) error {
	_, err := r.db.ExecContext(ctx, insertOrUpdateStateSQL,
		servoStateRowID,
		state.Position,
		state.State,
		normalizeTimestamp(state.LastCommandAt),
		normalizeTimestamp(state.UpdatedAt),
	)
	return err
}

// Load fetches the single servo_state row. A missing row returns a zero
// snapshot and no error: the process has simply never persisted state yet.
func (r *StateSQLite) Load(ctx context.Context) (models.ServoState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, servoStateRowID)

	var s models.ServoState
	if err := row.Scan(
		&s.Position,
		&s.State,
		&s.LastCommandAt,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ServoState{}, nil
		}
		return models.ServoState{}, err
	}

	s.LastCommandAt = s.LastCommandAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}
