package domain

import "time"

// RunState enumerates pipeline run lifecycle states.
type RunState string

const (
	RunStateIdle      RunState = "idle"
	RunStateRunning   RunState = "running"
	RunStateSucceeded RunState = "succeeded"
	RunStateFailed    RunState = "failed"
)

// Run records one end-to-end pipeline execution: one image plus one tone in,
// one caption or one error out.
type Run struct {
	ID        string
	Tone      Tone
	State     RunState
	Caption   string
	Error     string
	LatencyMS int
	CreatedAt time.Time
}
