package service

import (
	"context"
	"time"

	"reflow_oven/internal/models"
	"reflow_oven/internal/repository"
)

type MonitoringService struct {
	stateRepo repository.StateRepo
}

func NewMonitoringService(stateRepo repository.StateRepo) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo}
}

// GetState returns the latest persisted oven state.
// If no state is persisted yet, returns a baseline STANDBY snapshot.
func (s *MonitoringService) GetState(ctx context.Context) (models.OvenState, error) {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.OvenState{}, err
	}
	if state.ID == 0 {
		return s.baselineState(), nil
	}
	state.UpdatedAt = toUTC(state.UpdatedAt)
	return state, nil
}

// baselineState returns a sensible default snapshot for an uninitialized DB.
func (s *MonitoringService) baselineState() models.OvenState {
	return models.OvenState{
		ID:          1, // DB schema enforces single-row state with id=1
		Mode:        models.ModeStandby.String(),
		ActualTempC: ambientC,
		UpdatedAt:   time.Now().UTC(),
	}
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
