package repository

import (
	"context"
	"database/sql"
	"time"

	"reflow_oven/internal/models"
)

// ProfileStore is the persistence contract of the profile space: scalar
// config slots plus per-profile name/sample records addressed by local
// (persisted-range) index.
type ProfileStore interface {
	GetConfig(ctx context.Context, key string) (int, error)
	SetConfig(ctx context.Context, key string, value int) error
	CountProfiles(ctx context.Context) (int, error)
	StoreProfile(ctx context.Context, local int) error
	GetProfileName(ctx context.Context, local int) (string, error)
	SetProfileName(ctx context.Context, local int, name string) error
	GetSample(ctx context.Context, local, pos int) (int, error)
	SetSample(ctx context.Context, local, pos, value int) error
}

type StateRepo interface {
	Save(ctx context.Context, s models.OvenState) error
	Load(ctx context.Context) (models.OvenState, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.OvenEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.OvenEvent, error)
}

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type Repository struct {
	Profiles ProfileStore
	State    StateRepo
	Events   EventRepo
	Auth     Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Profiles: NewProfileSQLite(db),
		State:    NewStateSQLite(db),
		Events:   NewEventSQLite(db),
		Auth:     NewUserRepository(db),
	}
}
