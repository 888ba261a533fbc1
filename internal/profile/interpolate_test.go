package profile

import (
	"context"
	"testing"

	"reflow_oven/internal/models"
)

// editable profile shaped like the firmware's leaded curve: peak 215 at
// pos 21, then the terminator.
func peakProfile() models.Profile {
	p := models.Profile{Name: "PEAK"}
	for i := 0; i <= 20; i++ {
		p.Setpoints[i] = 50 + 5*i
	}
	p.Setpoints[21] = 215
	return p
}

func TestSetpointAt_ZeroEqualsFirstSample(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, twoStoredProfiles())
	for idx := 0; idx < RomCount(); idx++ {
		m.Select(ctx, idx)
		if got, want := m.SetpointAt(ctx, 0), float64(m.SampleAt(ctx, 0)); got != want {
			t.Errorf("profile %d: SetpointAt(0) = %v, want %v", idx, got, want)
		}
	}
}

func TestSetpointAt_Midpoint(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(peakProfile())
	m := newTestManager(t, store)
	m.Select(ctx, RomCount())

	// samples 50 and 55 bound t in [0,10)
	if got := m.SetpointAt(ctx, 5); got != 52.5 {
		t.Errorf("SetpointAt(5) = %v, want 52.5", got)
	}
}

func TestSetpointAt_FlatSegment(t *testing.T) {
	ctx := context.Background()
	p := models.Profile{Name: "FLAT"}
	p.Setpoints[0] = 50
	p.Setpoints[1] = 50
	p.Setpoints[2] = 50
	m := newTestManager(t, newFakeStore(p))
	m.Select(ctx, RomCount())

	if got := m.SetpointAt(ctx, 15); got != 50 {
		t.Errorf("SetpointAt(15) = %v, want 50", got)
	}
}

func TestSetpointAt_NoInterpolationIntoTerminator(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, newFakeStore(peakProfile()))
	m.Select(ctx, RomCount())

	// pos 21 holds 215, pos 22 the terminator: the last real value is
	// returned unmodified across the whole slot.
	for _, tt := range []float64{210, 215, 219.9} {
		if got := m.SetpointAt(ctx, tt); got != 215 {
			t.Errorf("SetpointAt(%v) = %v, want 215", tt, got)
		}
	}
}

func TestSetpointAt_PastEndIsZero(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, newFakeStore(peakProfile()))
	m.Select(ctx, RomCount())

	for _, tt := range []float64{220, 470, 2000} {
		if got := m.SetpointAt(ctx, tt); got != 0 {
			t.Errorf("SetpointAt(%v) = %v, want 0 (profile complete)", tt, got)
		}
	}
}

func TestSetpointAt_BetweenBoundingSamples(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, twoStoredProfiles())
	m.Select(ctx, 0) // LF profile, the longest built-in

	for tenths := 0; tenths < 4700; tenths += 25 {
		tt := float64(tenths) / 10
		idx := int(tt) / models.SampleIntervalSec
		v1 := float64(m.SampleAt(ctx, idx))
		v2 := float64(m.SampleAt(ctx, idx+1))
		if v2 == 0 {
			continue
		}
		lo, hi := v1, v2
		if lo > hi {
			lo, hi = hi, lo
		}
		got := m.SetpointAt(ctx, tt)
		if got < lo || got > hi {
			t.Fatalf("SetpointAt(%v) = %v outside [%v, %v]", tt, got, lo, hi)
		}
	}
}
