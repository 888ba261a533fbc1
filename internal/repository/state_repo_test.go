package repository_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"reflect"
	"regexp"
	"testing"
	"time"

	"reflow_oven/internal/models"
	"reflow_oven/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestStateSQLite_Save_SetsUTCWhenTimeZero(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewStateSQLite(db)

	// zero UpdatedAt should be replaced by time.Now().UTC()
	state := models.OvenState{
		Mode:         "REFLOW",
		ProfileIndex: 4,
		ProfileName:  "CUSTOM #1",
		ElapsedSec:   42.5,
		SetpointC:    183,
		ActualTempC:  180.2,
		HeatOn:       true,
		IsRunning:    true,
	}

	isUTCRecent := sqlmockArgumentFunc(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		if !ok || tm.Location() != time.UTC {
			return false
		}
		now := time.Now().UTC()
		return !tm.Before(now.Add(-5*time.Second)) && !tm.After(now.Add(5*time.Second))
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO oven_state")).
		WithArgs(
			1, // id constant
			state.Mode,
			state.ProfileIndex,
			state.ProfileName,
			state.ElapsedSec,
			state.SetpointC,
			state.ActualTempC,
			state.HeatOn,
			state.FanOn,
			state.IsRunning,
			isUTCRecent,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateSQLite_Save_ConvertsGivenTimeToUTC(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewStateSQLite(db)

	locTokyo, _ := time.LoadLocation("Asia/Tokyo")
	original := time.Date(2026, 8, 5, 12, 34, 56, 0, locTokyo) // non-UTC
	expectedUTC := original.UTC()

	state := models.OvenState{
		Mode:      "STANDBY",
		UpdatedAt: original,
	}

	isExactUTC := sqlmockArgumentFunc(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		if !ok {
			return false
		}
		return tm.Equal(expectedUTC) && tm.Location() == time.UTC
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO oven_state")).
		WithArgs(
			1,
			state.Mode,
			state.ProfileIndex,
			state.ProfileName,
			state.ElapsedSec,
			state.SetpointC,
			state.ActualTempC,
			state.HeatOn,
			state.FanOn,
			state.IsRunning,
			isExactUTC,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateSQLite_Save_ExecErrorIsPropagated(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewStateSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO oven_state")).
		WillReturnError(errors.New("db down"))

	if err := repo.Save(context.Background(), models.OvenState{Mode: "STANDBY"}); err == nil {
		t.Fatalf("Save() expected error, got nil")
	}
}

func TestStateSQLite_Load_NoRowsReturnsZeroValueAndNilError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewStateSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, mode, profile_idx")).
		WithArgs(1).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	var zero models.OvenState
	if !reflect.DeepEqual(got, zero) {
		t.Fatalf("Load() expected zero state, got: %+v", got)
	}
}

func TestStateSQLite_Load_HappyPathAndUTC(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewStateSQLite(db)

	cols := []string{"id", "mode", "profile_idx", "profile_name", "elapsed_s", "setpoint_c", "temp_c", "heat", "fan", "running", "updated_at"}
	locNY, _ := time.LoadLocation("America/New_York")
	nonUTC := time.Date(2026, 2, 1, 8, 30, 0, 0, locNY)

	rows := sqlmock.NewRows(cols).
		AddRow(1, "REFLOW", 4, "CUSTOM #1", 120.0, 150.0, 148.6, true, false, true, nonUTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, mode, profile_idx")).
		WithArgs(1).
		WillReturnRows(rows)

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if got.ID != 1 ||
		got.Mode != "REFLOW" ||
		got.ProfileIndex != 4 ||
		got.ProfileName != "CUSTOM #1" ||
		got.ElapsedSec != 120.0 ||
		got.SetpointC != 150.0 ||
		got.ActualTempC != 148.6 ||
		!got.HeatOn || got.FanOn || !got.IsRunning {
		t.Fatalf("Load() unexpected fields: %+v", got)
	}
	if got.UpdatedAt.Location() != time.UTC {
		t.Fatalf("Load() UpdatedAt not UTC: %v (%v)", got.UpdatedAt, got.UpdatedAt.Location())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// Helpers

type sqlmockArgumentFunc func(v driver.Value) bool

func (f sqlmockArgumentFunc) Match(v driver.Value) bool {
	return f(v)
}
