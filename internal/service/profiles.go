package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reflow_oven/internal/models"
	"reflow_oven/internal/repository"

	"github.com/google/uuid"
)

var (
	// ErrSetpointRejected reports an edit the profile core refused: bad
	// position, value above the ceiling, or a read-only target.
	ErrSetpointRejected = errors.New("setpoint not stored: position, value or profile not writable")
)

// ProfileService exposes the unified profile space to the API: listing,
// selection, renaming, per-setpoint edits and the explicit save action.
// Mutations go through the manager, which enforces the read-only catalog
// range and value bounds; every effective mutation appends an event.
type ProfileService struct {
	mgr       ProfileManager
	eventRepo repository.EventRepo
}

func NewProfileService(mgr ProfileManager, eventRepo repository.EventRepo) *ProfileService {
	return &ProfileService{mgr: mgr, eventRepo: eventRepo}
}

// List returns a summary of every addressable profile, built-in first.
func (s *ProfileService) List(ctx context.Context) []ProfileSummary {
	out := make([]ProfileSummary, 0, s.mgr.Count())
	for idx := 0; idx < s.mgr.Count(); idx++ {
		src := "rom"
		if s.mgr.IsPersisted(idx) {
			src = "stored"
		}
		out = append(out, ProfileSummary{
			Index:    idx,
			Name:     s.mgr.Name(ctx, idx),
			Source:   src,
			Selected: idx == s.mgr.Current(),
		})
	}
	return out
}

// Current returns the selected profile including its setpoint table.
func (s *ProfileService) Current(ctx context.Context) ProfileDetail {
	idx := s.mgr.Current()
	src := "rom"
	if s.mgr.IsPersisted(idx) {
		src = "stored"
	}
	var p models.Profile
	for pos := 0; pos < models.NumProfileTemps; pos++ {
		p.Setpoints[pos] = s.mgr.SampleAt(ctx, pos)
	}
	return ProfileDetail{
		ProfileSummary: ProfileSummary{
			Index:    idx,
			Name:     s.mgr.Name(ctx, idx),
			Source:   src,
			Selected: true,
		},
		Setpoints:     p.Setpoints[:],
		ActiveSeconds: p.ActiveSeconds(),
	}
}

// Select makes idx the current profile, wrapping out-of-range indices back
// into range, and returns the resolved index.
func (s *ProfileService) Select(ctx context.Context, idx int) (int, error) {
	resolved := s.mgr.Select(ctx, idx)
	err := s.eventRepo.Append(ctx, models.OvenEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        EventProfileSelect,
		Description: fmt.Sprintf("Profile %d (%s) selected", resolved, s.mgr.Name(ctx, resolved)),
		Metadata:    map[string]any{"requested": idx, "resolved": resolved},
	})
	return resolved, err
}

// Rename renames the current profile and returns the name in effect
// afterwards. Built-in profiles keep their name; the caller sees the
// unchanged name rather than an error.
func (s *ProfileService) Rename(ctx context.Context, name string) (string, error) {
	writable := s.mgr.IsPersisted(s.mgr.Current())
	s.mgr.Rename(ctx, s.mgr.Current(), name)
	effective := s.mgr.Name(ctx, s.mgr.Current())

	if !writable {
		return effective, nil
	}
	err := s.eventRepo.Append(ctx, models.OvenEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        EventProfileEdit,
		Description: "Profile renamed to " + effective,
		Metadata:    map[string]any{"index": s.mgr.Current()},
	})
	return effective, err
}

// SetSetpoint writes one setpoint of the current profile and returns the
// value actually stored, re-read after the write. A rejected write leaves
// the stored value unchanged and surfaces ErrSetpointRejected.
func (s *ProfileService) SetSetpoint(ctx context.Context, pos, value int) (int, error) {
	s.mgr.SetSampleAt(ctx, pos, value)
	stored := s.mgr.SampleAt(ctx, pos)
	if stored != value {
		return stored, ErrSetpointRejected
	}
	err := s.eventRepo.Append(ctx, models.OvenEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        EventProfileEdit,
		Description: fmt.Sprintf("Setpoint %d set to %d", pos, value),
		Metadata:    map[string]any{"index": s.mgr.Current(), "pos": pos, "value": value},
	})
	return stored, err
}

// Save commits the current profile's working copy to permanent storage.
func (s *ProfileService) Save(ctx context.Context) error {
	if err := s.mgr.SaveCurrent(ctx); err != nil {
		return err
	}
	return s.eventRepo.Append(ctx, models.OvenEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        EventProfileSave,
		Description: fmt.Sprintf("Profile %d (%s) saved", s.mgr.Current(), s.mgr.Name(ctx, s.mgr.Current())),
	})
}

// SetpointAt returns the interpolated target temperature of the current
// profile at the given elapsed seconds.
func (s *ProfileService) SetpointAt(ctx context.Context, seconds float64) float64 {
	return s.mgr.SetpointAt(ctx, seconds)
}
