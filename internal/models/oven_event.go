package models

import "time"

// OvenEvent is a single log entry.
type OvenEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // RUN_START | RUN_STOP | RUN_DONE | PROFILE_SELECT | PROFILE_EDIT | PROFILE_SAVE | ERROR
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
