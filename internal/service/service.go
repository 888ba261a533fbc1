package service

import (
	"context"
	"time"

	"reflow_oven/internal/logger"
	"reflow_oven/internal/models"
	"reflow_oven/internal/repository"
)

// ProfileManager is the unified profile index space consumed by the
// services. *profile.Manager satisfies it.
type ProfileManager interface {
	Count() int
	Current() int
	IsPersisted(idx int) bool
	Select(ctx context.Context, idx int) int
	Name(ctx context.Context, idx int) string
	Rename(ctx context.Context, idx int, name string)
	SampleAt(ctx context.Context, pos int) int
	SetSampleAt(ctx context.Context, pos, value int)
	SaveCurrent(ctx context.Context) error
	SetpointAt(ctx context.Context, seconds float64) float64
}

// Profiles exposes the profile catalog and edit flows.
type Profiles interface {
	List(ctx context.Context) []ProfileSummary
	Current(ctx context.Context) ProfileDetail
	Select(ctx context.Context, idx int) (int, error)
	Rename(ctx context.Context, name string) (string, error)
	SetSetpoint(ctx context.Context, pos, value int) (int, error)
	Save(ctx context.Context) error
	SetpointAt(ctx context.Context, seconds float64) float64
}

// Oven exposes run control: start and stop a reflow run of the currently
// selected profile.
type Oven interface {
	StartRun(ctx context.Context) error
	StopRun(ctx context.Context) error
}

// Monitoring exposes the read-only oven snapshot.
type Monitoring interface {
	GetState(ctx context.Context) (models.OvenState, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.OvenEvent, error)
}

// Runner drives the periodic control tick that samples the interpolator
// and advances the simulated oven. Stop via context cancellation.
type Runner interface {
	Run(ctx context.Context, tick time.Duration)
}

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Service aggregates all sub-services.
type Service struct {
	Profiles
	Oven
	Monitoring
	EventLog
	Runner
	Authorization
}

func NewService(repos *repository.Repository, mgr ProfileManager, log *logger.Logger, jwtSigningKey string) *Service {
	return &Service{
		Profiles:      NewProfileService(mgr, repos.Events),
		Oven:          NewOvenService(mgr, repos.State, repos.Events),
		Monitoring:    NewMonitoringService(repos.State),
		EventLog:      NewEventLogService(repos.Events),
		Runner:        NewRunnerService(mgr, repos.State, repos.Events, log),
		Authorization: NewAuthService(repos.Auth, jwtSigningKey),
	}
}
