// Package metrics records check and suite counters.
package metrics

import "time"

// CheckMetrics defines the interface for recording check metrics.
type CheckMetrics interface {
	// RecordCheck records one check outcome.
	RecordCheck(suiteID, op string, passed bool)
	// RecordSuite records a finished suite.
	RecordSuite(suiteID, status string, duration time.Duration)
	// IncrementRunTotal increments the total run counter.
	IncrementRunTotal()
	// SetActiveSuites sets the gauge of running suites.
	SetActiveSuites(count int)
}

// NoopMetrics is a no-op implementation of CheckMetrics
// useful for testing or when metrics collection is disabled.
type NoopMetrics struct{}

func (NoopMetrics) RecordCheck(_, _ string, _ bool)           {}
func (NoopMetrics) RecordSuite(_, _ string, _ time.Duration) {}
func (NoopMetrics) IncrementRunTotal()                        {}
func (NoopMetrics) SetActiveSuites(_ int)                     {}
