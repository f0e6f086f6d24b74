package domain

import (
	"slices"
	"time"
)

// Outcome classifies how a reconstruction run ended.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	// OutcomeError means the process could not be started or awaited.
	OutcomeError Outcome = "error"
)

// Run is the persisted record of one reconstruction attempt.
type Run struct {
	ID          string        `json:"id"`
	Dataset     string        `json:"dataset"`
	DatasetPath string        `json:"dataset_path"`
	Binary      string        `json:"binary"`
	Outputs     Outputs       `json:"outputs"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
	ExitCode    int           `json:"exit_code"`
	Outcome     Outcome       `json:"outcome"`
	Error       string        `json:"error,omitempty"`
}

// OutcomeOf maps an exit status and an execution error to an Outcome.
func OutcomeOf(status ExitStatus, err error) Outcome {
	switch {
	case err != nil:
		return OutcomeError
	case status.Success():
		return OutcomeSucceeded
	default:
		return OutcomeFailed
	}
}

// SortRuns orders runs by start time, oldest first. Ties keep ID order.
func SortRuns(runs []Run) {
	slices.SortStableFunc(runs, func(a, b Run) int {
		if c := a.StartedAt.Compare(b.StartedAt); c != 0 {
			return c
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}
