package models

// Data-format constants shared with the profile storage layer. A profile
// table must stay zero-terminated, so only NumProfileTemps-1 entries can
// carry real temperatures.
const (
	NumProfileTemps   = 48 // one entry per 10 s, covering 0-470 s
	SampleIntervalSec = 10
	SetpointMin       = 30  // °C
	SetpointMax       = 260 // °C
	MaxProfileNameLen = 31
)

// Profile is a named temperature curve sampled every 10 seconds.
// A setpoint of 0 marks the end of the curve; it is not a literal 0 °C
// target, which therefore cannot be represented.
type Profile struct {
	Name      string               `json:"name"`
	Setpoints [NumProfileTemps]int `json:"setpoints"`
}

// ActiveSeconds returns the time span covered by the profile, i.e. the
// position of the last non-zero setpoint times the sample interval.
func (p Profile) ActiveSeconds() int {
	last := -1
	for i, v := range p.Setpoints {
		if v != 0 {
			last = i
		}
	}
	return (last + 1) * SampleIntervalSec
}
