package service

import (
	"context"
	"math"
	"time"

	"reflow_oven/internal/logger"
	"reflow_oven/internal/models"
	"reflow_oven/internal/repository"

	"github.com/google/uuid"
)

// Plant constants for the simulated oven.
const (
	heaterLagSec   = 20.0 // first-order lag toward the setpoint
	fanCoolPerSec  = 3.0  // °C per second with the fan on
	idleCoolPerSec = 0.5  // °C per second passive drift
	hysteresisC    = 1.0  // relay band around the setpoint
)

// RunnerService is the periodic control tick. Each tick it advances the
// elapsed process time, asks the profile manager for the interpolated
// setpoint and moves the simulated oven temperature toward it. A setpoint
// of 0 past the start of the run means the profile is complete and ends
// the run. The real PID/relay loop the hardware uses is outside this
// module; the runner stands in for it against the same setpoint source.
type RunnerService struct {
	mgr       ProfileManager
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	log       *logger.Logger
}

func NewRunnerService(mgr ProfileManager, stateRepo repository.StateRepo, eventRepo repository.EventRepo, log *logger.Logger) *RunnerService {
	return &RunnerService{mgr: mgr, stateRepo: stateRepo, eventRepo: eventRepo, log: log}
}

// Run ticks at the given interval until ctx is canceled.
func (s *RunnerService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.step(ctx, now.UTC())
		}
	}
}

// step advances the oven by one tick. Kept separate from Run so tests can
// drive it with explicit times.
func (s *RunnerService) step(ctx context.Context, now time.Time) {
	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		s.log.Warnw("runner: state load failed", "err", err)
		return
	}

	// Initialize state if empty
	if st.ID == 0 {
		st = models.OvenState{
			ID:          1,
			Mode:        models.ModeStandby.String(),
			ActualTempC: ambientC,
			UpdatedAt:   now,
		}
		s.save(ctx, st)
		return
	}

	elapsed := now.Sub(st.UpdatedAt).Seconds()
	if elapsed <= 0 {
		return
	}

	if !st.IsRunning {
		if s.coolDown(&st, elapsed) {
			st.UpdatedAt = now
			s.save(ctx, st)
		}
		return
	}

	st.ElapsedSec += elapsed
	sp := s.mgr.SetpointAt(ctx, st.ElapsedSec)

	if sp == 0 {
		// Past the last non-zero sample: the profile is done.
		st.IsRunning = false
		st.Mode = models.ModeStandbyFan.String()
		st.SetpointC = 0
		st.HeatOn = false
		st.FanOn = true
		st.UpdatedAt = now
		s.save(ctx, st)

		if err := s.eventRepo.Append(ctx, models.OvenEvent{
			EventID:     uuid.NewString(),
			OccurredAt:  now,
			Type:        EventRunDone,
			Description: "Profile complete; run finished",
			Metadata: map[string]any{
				"profile_index": st.ProfileIndex,
				"profile_name":  st.ProfileName,
				"elapsed_sec":   st.ElapsedSec,
			},
		}); err != nil {
			s.log.Warnw("runner: done event not logged", "err", err)
		}
		return
	}

	st.SetpointC = sp
	st.ActualTempC += (sp - st.ActualTempC) * math.Min(1, elapsed/heaterLagSec)
	st.HeatOn = sp > st.ActualTempC+hysteresisC
	st.FanOn = st.ActualTempC > sp+hysteresisC
	st.UpdatedAt = now
	s.save(ctx, st)
}

// coolDown drifts an idle oven toward ambient. Returns true if anything
// changed.
func (s *RunnerService) coolDown(st *models.OvenState, elapsed float64) bool {
	if st.ActualTempC <= ambientC {
		if st.FanOn {
			st.FanOn = false
			st.Mode = models.ModeStandby.String()
			return true
		}
		return false
	}
	rate := idleCoolPerSec
	if st.FanOn {
		rate = fanCoolPerSec
	}
	st.ActualTempC = math.Max(st.ActualTempC-rate*elapsed, ambientC)
	if st.ActualTempC == ambientC && st.FanOn {
		st.FanOn = false
		st.Mode = models.ModeStandby.String()
	}
	return true
}

func (s *RunnerService) save(ctx context.Context, st models.OvenState) {
	if err := s.stateRepo.Save(ctx, st); err != nil {
		s.log.Warnw("runner: state save failed", "err", err)
	}
}
