package monitor

import (
	"time"

	"digital.vasic.checks/pkg/assertion"
	"digital.vasic.checks/pkg/suite"
)

// EventType represents the type of suite event.
type EventType string

const (
	EventStarted    EventType = "started"
	EventPassed     EventType = "passed"
	EventFailed     EventType = "failed"
	EventError      EventType = "error"
	EventSkipped    EventType = "skipped"
	EventDiagnostic EventType = "diagnostic"
)

// SuiteEvent represents a lifecycle event during a run.
type SuiteEvent struct {
	Type       EventType             `json:"type"`
	SuiteID    suite.ID              `json:"suite_id"`
	Name       string                `json:"name,omitempty"`
	Category   string                `json:"category,omitempty"`
	Status     string                `json:"status,omitempty"`
	Message    string                `json:"message,omitempty"`
	Duration   time.Duration         `json:"duration,omitempty"`
	Checks     int                   `json:"checks,omitempty"`
	Failures   int                   `json:"failures,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
	Diagnostic *assertion.Diagnostic `json:"diagnostic,omitempty"`
}

// resultEventType maps a final suite status to its event type.
func resultEventType(status string) EventType {
	switch status {
	case suite.StatusPassed:
		return EventPassed
	case suite.StatusFailed:
		return EventFailed
	case suite.StatusSkipped:
		return EventSkipped
	default:
		return EventError
	}
}
