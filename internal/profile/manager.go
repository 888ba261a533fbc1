package profile

import (
	"context"
	"errors"

	"reflow_oven/internal/logger"
	"reflow_oven/internal/models"
)

// UseCurrent may be passed as the index argument of Manager accessors to
// address the currently selected profile.
const UseCurrent = -1

// selectedProfileKey is the config slot the selection survives restarts in.
const selectedProfileKey = "selected_profile"

// ErrReadOnlyProfile is returned by SaveCurrent when the selection is a
// built-in profile.
var ErrReadOnlyProfile = errors.New("selected profile is read-only")

// Store is the persisted-profile collaborator. Local indices are relative
// to the persisted range, i.e. unified index minus RomCount().
type Store interface {
	GetConfig(ctx context.Context, key string) (int, error)
	SetConfig(ctx context.Context, key string, value int) error
	CountProfiles(ctx context.Context) (int, error)
	StoreProfile(ctx context.Context, local int) error
	GetProfileName(ctx context.Context, local int) (string, error)
	SetProfileName(ctx context.Context, local int, name string) error
	GetSample(ctx context.Context, local, pos int) (int, error)
	SetSample(ctx context.Context, local, pos, value int) error
}

// Manager maps the unified profile index space onto the built-in catalog
// and the persisted store, and tracks the current selection. It is not
// safe for concurrent use; the control loop and editor are expected to
// serialize access.
type Manager struct {
	store Store
	log   *logger.Logger

	current    int
	totalCount int
}

func NewManager(store Store, log *logger.Logger) *Manager {
	return &Manager{store: store, log: log}
}

// Init loads the previously selected index from the config slot and counts
// the persisted profiles. Call once at startup and again whenever the
// persisted count may have changed.
func (m *Manager) Init(ctx context.Context) error {
	idx, err := m.store.GetConfig(ctx, selectedProfileKey)
	if err != nil {
		return err
	}
	n, err := m.store.CountProfiles(ctx)
	if err != nil {
		return err
	}
	m.current = idx
	m.totalCount = len(romProfiles) + n
	return nil
}

// Count reports the total number of addressable profiles, built-in and
// persisted combined.
func (m *Manager) Count() int {
	return m.totalCount
}

// Current returns the currently selected index.
func (m *Manager) Current() int {
	return m.current
}

// IsPersisted reports whether idx (or the current selection, for
// UseCurrent) addresses the persisted store. The upper bound is
// deliberately non-strict: idx == Count() still classifies as persisted,
// matching the stock firmware. Select never produces that value.
func (m *Manager) IsPersisted(idx int) bool {
	if idx == UseCurrent {
		idx = m.current
	}
	if idx < len(romProfiles) || idx > m.totalCount {
		return false
	}
	return true
}

// Select wraps idx into [0, Count()-1] and makes it the current selection,
// persisting it to the config slot. Returns the resolved index.
func (m *Manager) Select(ctx context.Context, idx int) int {
	m.current = wrap(idx, 0, m.totalCount-1)
	if err := m.store.SetConfig(ctx, selectedProfileKey, m.current); err != nil {
		m.log.Warnw("profile selection not persisted", "index", m.current, "err", err)
	}
	return m.current
}

// Name returns the display name of the profile at idx, or of the current
// selection for UseCurrent. Indices beyond Count() yield "unknown".
func (m *Manager) Name(ctx context.Context, idx int) string {
	if idx > m.totalCount {
		return "unknown"
	}
	if idx == UseCurrent {
		idx = m.current
	}
	if m.IsPersisted(idx) {
		name, err := m.store.GetProfileName(ctx, idx-len(romProfiles))
		if err != nil {
			m.log.Warnw("profile name read failed", "index", idx, "err", err)
			return "unknown"
		}
		return name
	}
	return romProfiles[idx].Name
}

// Rename sets the display name of the profile at idx (UseCurrent for the
// selection). Built-in profiles are read-only; renaming one does nothing.
// Names longer than MaxProfileNameLen are truncated.
func (m *Manager) Rename(ctx context.Context, idx int, name string) {
	if idx == UseCurrent {
		idx = m.current
	}
	if !m.IsPersisted(idx) {
		return
	}
	if len(name) > models.MaxProfileNameLen {
		name = name[:models.MaxProfileNameLen]
	}
	if err := m.store.SetProfileName(ctx, idx-len(romProfiles), name); err != nil {
		m.log.Warnw("profile rename failed", "index", idx, "name", name, "err", err)
	}
}

// SampleAt returns the setpoint at position pos of the currently selected
// profile. Positions outside [0, NumProfileTemps) read as 0, the same
// sentinel that terminates a profile, so the caller never has to handle a
// failure.
func (m *Manager) SampleAt(ctx context.Context, pos int) int {
	if pos < 0 || pos > models.NumProfileTemps-1 {
		return 0
	}
	if m.IsPersisted(UseCurrent) {
		v, err := m.store.GetSample(ctx, m.current-len(romProfiles), pos)
		if err != nil {
			m.log.Warnw("profile sample read failed", "index", m.current, "pos", pos, "err", err)
			return 0
		}
		return v
	}
	return romProfiles[m.current].Setpoints[pos]
}

// SetSampleAt writes value at position pos of the currently selected
// profile. Effective only when the selection is persisted-backed, pos is
// within capacity and value does not exceed SetpointMax; otherwise the
// write is dropped with a warning. Edit flows must re-read to confirm.
func (m *Manager) SetSampleAt(ctx context.Context, pos, value int) {
	if pos >= 0 && pos < models.NumProfileTemps && value <= models.SetpointMax && m.IsPersisted(UseCurrent) {
		if err := m.store.SetSample(ctx, m.current-len(romProfiles), pos, value); err != nil {
			m.log.Warnw("profile sample write failed", "index", m.current, "pos", pos, "err", err)
		}
		return
	}
	m.log.Warnw("profile sample write rejected",
		"index", m.current, "pos", pos, "value", value)
}

// SaveCurrent commits the in-memory working copy of the current profile as
// a permanent record. Unlike the sample accessors this reports failure:
// saving is an explicit user action with an expected outcome.
func (m *Manager) SaveCurrent(ctx context.Context) error {
	if m.IsPersisted(UseCurrent) {
		return m.store.StoreProfile(ctx, m.current-len(romProfiles))
	}
	return ErrReadOnlyProfile
}

// wrap folds v into [lo, hi] by modular arithmetic, so stepping past either
// end of the profile list cycles around instead of clamping.
func wrap(v, lo, hi int) int {
	n := hi - lo + 1
	v = (v - lo) % n
	if v < 0 {
		v += n
	}
	return v + lo
}
