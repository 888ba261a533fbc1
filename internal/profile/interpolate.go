package profile

import (
	"context"
	"math"

	"reflow_oven/internal/models"
)

const sampleInterval = float64(models.SampleIntervalSec)

// SetpointAt returns the target temperature of the currently selected
// profile at the given elapsed seconds, linearly interpolated between the
// two surrounding 10-second samples. It returns 0 once past the time span
// used by the profile, which doubles as the "profile complete" indication.
// The last real value is never interpolated toward the zero terminator.
//
// Deterministic, O(1) and allocation-free: safe to call from every control
// tick.
func (m *Manager) SetpointAt(ctx context.Context, seconds float64) float64 {
	idx := int(seconds / sampleInterval)
	rest := math.Mod(seconds, sampleInterval)

	// Both reads saturate to 0 for large indices.
	v1 := float64(m.SampleAt(ctx, idx))
	v2 := float64(m.SampleAt(ctx, idx+1))

	if v2 == 0 {
		return v1
	}
	return v1 + (v2-v1)*rest/sampleInterval
}
