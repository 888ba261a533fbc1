package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"reflow_oven/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	ovenStateRowID = 1

	insertOrUpdateStateSQL = `
		INSERT INTO oven_state (id, mode, profile_idx, profile_name, elapsed_s, setpoint_c, temp_c, heat, fan, running, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mode=excluded.mode,
			profile_idx=excluded.profile_idx,
			profile_name=excluded.profile_name,
			elapsed_s=excluded.elapsed_s,
			setpoint_c=excluded.setpoint_c,
			temp_c=excluded.temp_c,
			heat=excluded.heat,
			fan=excluded.fan,
			running=excluded.running,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, mode, profile_idx, profile_name, elapsed_s, setpoint_c, temp_c, heat, fan, running, updated_at
		FROM oven_state WHERE id=?
	`
)

// Save updates or inserts the oven_state row (id always 1).
func (r *StateSQLite) Save(ctx context.Context, state models.OvenState) error {
	// ensure UpdatedAt is always persisted as UTC; set if zero
	tsUTC := state.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertOrUpdateStateSQL,
		ovenStateRowID,
		state.Mode,
		state.ProfileIndex,
		state.ProfileName,
		state.ElapsedSec,
		state.SetpointC,
		state.ActualTempC,
		state.HeatOn,
		state.FanOn,
		state.IsRunning,
		tsUTC,
	)
	return err
}

// Load fetches the single oven_state row (id=1).
func (r *StateSQLite) Load(ctx context.Context) (models.OvenState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, ovenStateRowID)

	var s models.OvenState
	if err := row.Scan(
		&s.ID,
		&s.Mode,
		&s.ProfileIndex,
		&s.ProfileName,
		&s.ElapsedSec,
		&s.SetpointC,
		&s.ActualTempC,
		&s.HeatOn,
		&s.FanOn,
		&s.IsRunning,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.OvenState{}, nil // no state yet
		}
		return models.OvenState{}, err
	}
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}
