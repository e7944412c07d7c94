package monitor

import (
	"digital.vasic.checks/pkg/assertion"
	"digital.vasic.checks/pkg/suite"
)

// Sink is an assertion.Sink that turns every diagnostic into a
// diagnostic event on the collector.
type Sink struct {
	collector *EventCollector
}

// NewSink creates a sink emitting into collector.
func NewSink(collector *EventCollector) *Sink {
	return &Sink{collector: collector}
}

// Report emits d as an EventDiagnostic.
func (s *Sink) Report(d assertion.Diagnostic) {
	s.collector.Emit(SuiteEvent{
		Type:       EventDiagnostic,
		SuiteID:    suite.ID(d.Suite),
		Message:    d.Message,
		Timestamp:  d.Time,
		Diagnostic: &d,
	})
}
