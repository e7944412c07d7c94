package suite

import (
	"time"

	"digital.vasic.checks/pkg/assertion"
)

// Status constants for suite outcomes.
const (
	StatusPending = "pending"
	StatusRunning = "running"
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
	StatusError   = "error"
)

// Result captures the outcome of running one suite.
type Result struct {
	// SuiteID is the unique identifier of the suite.
	SuiteID ID `json:"suite_id"`

	// SuiteName is the human-readable name.
	SuiteName string `json:"suite_name"`

	// Category is the suite category.
	Category string `json:"category,omitempty"`

	// Status is one of the Status* constants.
	Status string `json:"status"`

	// StartTime is when the suite began.
	StartTime time.Time `json:"start_time"`

	// EndTime is when the suite finished.
	EndTime time.Time `json:"end_time"`

	// Duration is the wall-clock run time.
	Duration time.Duration `json:"duration"`

	// Checks is the number of checks performed.
	Checks int `json:"checks"`

	// Failures is the number of failed checks.
	Failures int `json:"failures"`

	// Diagnostics holds every failure reported by the suite.
	Diagnostics []assertion.Diagnostic `json:"diagnostics"`

	// Error holds the panic message when the suite body crashed
	// outside of a check.
	Error string `json:"error,omitempty"`
}

// Passed returns true if the suite finished without failures.
func (r *Result) Passed() bool {
	return r.Status == StatusPassed
}

// PassedChecks returns the number of checks that held.
func (r *Result) PassedChecks() int {
	if n := r.Checks - r.Failures; n > 0 {
		return n
	}
	return 0
}

// IsFinal returns true if the status is a terminal state.
func (r *Result) IsFinal() bool {
	switch r.Status {
	case StatusPassed, StatusFailed, StatusSkipped, StatusError:
		return true
	}
	return false
}
