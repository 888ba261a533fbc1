package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"reflow_oven/internal/models"
)

const (
	selectConfigSQL = `SELECT value FROM config WHERE key = ?`

	upsertConfigSQL = `
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`

	countProfilesSQL     = `SELECT COUNT(*) FROM profiles`
	selectProfileSQL     = `SELECT name, setpoints FROM profiles WHERE idx = ?`
	updateProfileNameSQL = `UPDATE profiles SET name = ? WHERE idx = ?`
	updateProfileFullSQL = `UPDATE profiles SET name = ?, setpoints = ? WHERE idx = ?`
)

// ProfileSQLite plays the role of the oven's non-volatile profile storage.
// Setpoint edits go to an in-memory working copy of one profile and only
// reach the database when StoreProfile commits them; names write through
// immediately. This mirrors how the oven firmware edits EEPROM profiles.
type ProfileSQLite struct {
	db *sql.DB

	// working copy of the profile being read/edited; workIdx is the local
	// index loaded into it, or -1 when empty.
	workIdx int
	work    models.Profile
}

func NewProfileSQLite(db *sql.DB) *ProfileSQLite {
	return &ProfileSQLite{db: db, workIdx: -1}
}

// GetConfig reads a scalar configuration slot. Missing keys read as 0.
func (r *ProfileSQLite) GetConfig(ctx context.Context, key string) (int, error) {
	var v int
	err := r.db.QueryRowContext(ctx, selectConfigSQL, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read config %q: %w", key, err)
	}
	return v, nil
}

// SetConfig writes a scalar configuration slot.
func (r *ProfileSQLite) SetConfig(ctx context.Context, key string, value int) error {
	if _, err := r.db.ExecContext(ctx, upsertConfigSQL, key, value); err != nil {
		return fmt.Errorf("write config %q: %w", key, err)
	}
	return nil
}

// CountProfiles reports how many persisted profiles exist.
func (r *ProfileSQLite) CountProfiles(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countProfilesSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return n, nil
}

// GetProfileName returns the stored name of profile local.
func (r *ProfileSQLite) GetProfileName(ctx context.Context, local int) (string, error) {
	if err := r.loadWork(ctx, local); err != nil {
		return "", err
	}
	return r.work.Name, nil
}

// SetProfileName renames profile local. Unlike setpoints, names write
// through to the database immediately.
func (r *ProfileSQLite) SetProfileName(ctx context.Context, local int, name string) error {
	res, err := r.db.ExecContext(ctx, updateProfileNameSQL, name, local)
	if err != nil {
		return fmt.Errorf("rename profile %d: %w", local, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("rename profile %d: no such profile", local)
	}
	if r.workIdx == local {
		r.work.Name = name
	}
	return nil
}

// GetSample returns the setpoint at pos of profile local, reading through
// the working copy.
func (r *ProfileSQLite) GetSample(ctx context.Context, local, pos int) (int, error) {
	if pos < 0 || pos >= models.NumProfileTemps {
		return 0, fmt.Errorf("sample position %d out of range", pos)
	}
	if err := r.loadWork(ctx, local); err != nil {
		return 0, err
	}
	return r.work.Setpoints[pos], nil
}

// SetSample writes the setpoint at pos of profile local into the working
// copy. The change stays in memory until StoreProfile commits it.
func (r *ProfileSQLite) SetSample(ctx context.Context, local, pos, value int) error {
	if pos < 0 || pos >= models.NumProfileTemps {
		return fmt.Errorf("sample position %d out of range", pos)
	}
	if err := r.loadWork(ctx, local); err != nil {
		return err
	}
	r.work.Setpoints[pos] = value
	return nil
}

// StoreProfile commits the in-memory working copy as permanent record
// local.
func (r *ProfileSQLite) StoreProfile(ctx context.Context, local int) error {
	if err := r.loadWork(ctx, local); err != nil {
		return err
	}
	raw, err := json.Marshal(r.work.Setpoints[:])
	if err != nil {
		return fmt.Errorf("marshal setpoints of profile %d: %w", local, err)
	}
	if _, err := r.db.ExecContext(ctx, updateProfileFullSQL, r.work.Name, string(raw), local); err != nil {
		return fmt.Errorf("store profile %d: %w", local, err)
	}
	return nil
}

// loadWork ensures the working copy holds profile local. Switching to a
// different profile discards uncommitted setpoint edits, same as the
// firmware's single RAM buffer.
func (r *ProfileSQLite) loadWork(ctx context.Context, local int) error {
	if r.workIdx == local {
		return nil
	}
	var (
		name string
		raw  string
	)
	err := r.db.QueryRowContext(ctx, selectProfileSQL, local).Scan(&name, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("no persisted profile %d", local)
	}
	if err != nil {
		return fmt.Errorf("load profile %d: %w", local, err)
	}

	var setpoints []int
	if err := json.Unmarshal([]byte(raw), &setpoints); err != nil {
		return fmt.Errorf("decode setpoints of profile %d: %w", local, err)
	}

	r.work = models.Profile{Name: name}
	copy(r.work.Setpoints[:], setpoints)
	r.workIdx = local
	return nil
}
