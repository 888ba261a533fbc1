package models

import "time"

// ReflowMode is the state of the control loop that consumes setpoints.
// The mode machine itself (PID/relay control) lives outside this module;
// the enum is declared here as part of the shared contract.
type ReflowMode int

const (
	ModeInitial ReflowMode = iota
	ModeStandby
	ModeBake
	ModeReflow
	ModeStandbyFan
)

func (m ReflowMode) String() string {
	switch m {
	case ModeStandby:
		return "STANDBY"
	case ModeBake:
		return "BAKE"
	case ModeReflow:
		return "REFLOW"
	case ModeStandbyFan:
		return "STANDBY_FAN"
	default:
		return "INITIAL"
	}
}

// OvenState is the current snapshot of the oven and its run.
type OvenState struct {
	ID           int       `json:"id"`
	Mode         string    `json:"mode"`                   // INITIAL | STANDBY | BAKE | REFLOW | STANDBY_FAN
	ProfileIndex int       `json:"profile_index"`          // index in the unified profile space
	ProfileName  string    `json:"profile_name"`           // resolved at run start
	ElapsedSec   float64   `json:"elapsed_sec"`            // process time since run start
	SetpointC    float64   `json:"setpoint_c"`             // interpolated target, 0 once past the profile
	ActualTempC  float64   `json:"actual_temp_c"`          // °C
	HeatOn       bool      `json:"heat_on"`
	FanOn        bool      `json:"fan_on"`
	IsRunning    bool      `json:"is_running"`
	UpdatedAt    time.Time `json:"updated_at"`
}
