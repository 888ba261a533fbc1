package service

import "time"

// ProfileSummary is one row of the profile listing.
type ProfileSummary struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Source   string `json:"source"` // "rom" | "stored"
	Selected bool   `json:"selected"`
}

// ProfileDetail is the currently selected profile with its full setpoint
// table.
type ProfileDetail struct {
	ProfileSummary
	Setpoints     []int `json:"setpoints"`
	ActiveSeconds int   `json:"active_seconds"`
}

// Event types appended by the services.
const (
	EventRunStart      = "RUN_START"
	EventRunStop       = "RUN_STOP"
	EventRunDone       = "RUN_DONE"
	EventProfileSelect = "PROFILE_SELECT"
	EventProfileEdit   = "PROFILE_EDIT"
	EventProfileSave   = "PROFILE_SAVE"
	EventError         = "ERROR"
)

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "RUN_START", "RUN_STOP", "RUN_DONE", "PROFILE_SELECT", "PROFILE_EDIT", "PROFILE_SAVE", "ERROR"
}
