package domain

import "time"

// RunStatus records how a run ended.
type RunStatus string

const (
	RunCompleted RunStatus = "completed" // Machine reached its halting state
	RunFailed    RunStatus = "failed"    // Decode, bounds, limit or strict-match failure
)

// RunRecord is the persisted trace of one machine run. Stores keep
// records by ID; everything needed to replay the run is on the record.
type RunRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Code      string    `json:"code"`
	Word      string    `json:"word,omitempty"`
	TapeSize  int       `json:"tape_size"`
	Strict    bool      `json:"strict,omitempty"`
	StepLimit int       `json:"step_limit,omitempty"`
	Status    RunStatus `json:"status"`

	// Outcome fields. Result/Steps/FinalState/FinalTape are only set for
	// completed runs; Error only for failed ones.
	Result     int      `json:"result,omitempty"`
	Steps      int      `json:"steps,omitempty"`
	FinalState State    `json:"final_state,omitempty"`
	FinalTape  []Symbol `json:"final_tape,omitempty"`
	Error      string   `json:"error,omitempty"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}
