package service

import (
	"context"
	"errors"
	"time"

	"reflow_oven/internal/models"
	"reflow_oven/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrRunInProgress = errors.New("a run is already in progress")
	ErrNoRun         = errors.New("no run in progress")
)

// ambientC is the resting temperature the simulated oven drifts to.
const ambientC = 25.0

// OvenService owns run lifecycle: starting a reflow run of the currently
// selected profile and stopping it. The periodic advance of a running
// oven lives in RunnerService.
type OvenService struct {
	mgr       ProfileManager
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
}

func NewOvenService(mgr ProfileManager, stateRepo repository.StateRepo, eventRepo repository.EventRepo) *OvenService {
	return &OvenService{mgr: mgr, stateRepo: stateRepo, eventRepo: eventRepo}
}

// StartRun begins a reflow run of the currently selected profile at
// elapsed time zero.
func (s *OvenService) StartRun(ctx context.Context) error {
	now := time.Now().UTC()

	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return err
	}
	if st.IsRunning {
		return ErrRunInProgress
	}

	idx := s.mgr.Current()
	name := s.mgr.Name(ctx, idx)

	temp := st.ActualTempC
	if st.ID == 0 {
		temp = ambientC
	}
	st = models.OvenState{
		ID:           1,
		Mode:         models.ModeReflow.String(),
		ProfileIndex: idx,
		ProfileName:  name,
		ElapsedSec:   0,
		SetpointC:    s.mgr.SetpointAt(ctx, 0),
		ActualTempC:  temp,
		HeatOn:       true,
		FanOn:        false,
		IsRunning:    true,
		UpdatedAt:    now,
	}
	if err := s.stateRepo.Save(ctx, st); err != nil {
		return err
	}

	return s.eventRepo.Append(ctx, models.OvenEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now,
		Type:        EventRunStart,
		Description: "Reflow run started with profile " + name,
		Metadata:    map[string]any{"profile_index": idx, "profile_name": name},
	})
}

// StopRun aborts the run: heat off, fan on for cooldown, standby mode.
func (s *OvenService) StopRun(ctx context.Context) error {
	now := time.Now().UTC()

	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return err
	}
	if !st.IsRunning {
		return ErrNoRun
	}

	st.IsRunning = false
	st.Mode = models.ModeStandbyFan.String()
	st.SetpointC = 0
	st.HeatOn = false
	st.FanOn = true
	st.UpdatedAt = now

	if err := s.stateRepo.Save(ctx, st); err != nil {
		return err
	}

	return s.eventRepo.Append(ctx, models.OvenEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now,
		Type:        EventRunStop,
		Description: "Reflow run stopped",
		Metadata:    map[string]any{"elapsed_sec": st.ElapsedSec, "temp_c": st.ActualTempC},
	})
}
