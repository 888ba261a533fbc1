// Package profile implements the unified profile space of the oven: a set
// of immutable built-in profiles plus a variable number of user-editable
// profiles in persistent storage, addressed through one linear index, and
// the time-to-setpoint interpolation the control loop samples.
package profile

import "reflow_oven/internal/models"

// Built-in reference profiles. Tables hold one temperature per 10 s and
// must stay zero-terminated, so at most 47 entries are usable.
var romProfiles = []models.Profile{
	{
		// SynTECH-LF normal temp lead-free profile
		Name: "LF DESIGNED PROF",
		Setpoints: [models.NumProfileTemps]int{
			25, 25, 40, 55, 70, 85, 100, 115, 130, 145, 152, 155, 158, 161, 164, 167,
			170, 173, 176, 179, 182, 185, 188, 191, 194, 197, 200, 210, 220, 230, 240, 240,
			240, 240, 230, 220, 210, 200, 190, 180, 170, 160,
		},
	},
	{
		// NC-31 low-temp lead-free profile, peak adjusted from 158 to 165C
		Name: "NC-31 LOW-TEMP LF",
		Setpoints: [models.NumProfileTemps]int{
			50, 50, 50, 50, 55, 70, 85, 90, 95, 100, 102, 105, 107, 110, 112, 115,
			117, 120, 122, 127, 132, 138, 148, 158, 160,
		},
	},
	{
		// Amtech 4300 63Sn/37Pb leaded profile, peak adjusted from 205 to 220C
		Name: "4300 63SN/37PB",
		Setpoints: [models.NumProfileTemps]int{
			50, 50, 50, 60, 73, 86, 100, 113, 126, 140, 143, 147, 150, 154, 157, 161,
			164, 168, 171, 175, 179, 183, 195, 207, 215,
		},
	},
	{
		// Ramp speed test profile, useful against the simulated oven
		Name: "RAMP SPEED TEST",
		Setpoints: [models.NumProfileTemps]int{
			50, 50, 50, 50, 245, 245, 245, 245, 245, 245, 245, 245, 245, 245, 245, 245,
			245, 245, 245, 245, 245, 245, 245, 245, 245,
		},
	},
}

// RomCount reports how many built-in profiles exist. They occupy the range
// [0, RomCount) of the unified index space.
func RomCount() int {
	return len(romProfiles)
}
