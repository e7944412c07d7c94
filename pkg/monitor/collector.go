// Package monitor collects suite events and serves them live over
// WebSocket and Server-Sent Events.
package monitor

import (
	"sync"
	"time"

	"digital.vasic.checks/pkg/suite"
)

// EventCollector captures suite events and timing data.
type EventCollector struct {
	mu       sync.RWMutex
	events   []SuiteEvent
	handlers []func(SuiteEvent)
	stats    CollectorStats
}

// CollectorStats holds aggregate statistics.
type CollectorStats struct {
	Total       int           `json:"total"`
	Passed      int           `json:"passed"`
	Failed      int           `json:"failed"`
	Errored     int           `json:"errored"`
	Skipped     int           `json:"skipped"`
	Diagnostics int           `json:"diagnostics"`
	StartTime   time.Time     `json:"start_time"`
	Duration    time.Duration `json:"duration"`
}

// NewEventCollector creates a new event collector.
func NewEventCollector() *EventCollector {
	return &EventCollector{
		events: make([]SuiteEvent, 0, 64),
		stats:  CollectorStats{StartTime: time.Now()},
	}
}

// OnEvent registers a handler to be called for each event.
func (c *EventCollector) OnEvent(handler func(SuiteEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// Emit records an event and notifies all handlers outside the lock.
func (c *EventCollector) Emit(event SuiteEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	c.mu.Lock()
	c.events = append(c.events, event)
	c.stats.Total++
	switch event.Type {
	case EventPassed:
		c.stats.Passed++
	case EventFailed:
		c.stats.Failed++
	case EventError:
		c.stats.Errored++
	case EventSkipped:
		c.stats.Skipped++
	case EventDiagnostic:
		c.stats.Diagnostics++
	}
	c.stats.Duration = time.Since(c.stats.StartTime)
	handlers := make([]func(SuiteEvent), len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// EmitStarted emits a suite started event.
func (c *EventCollector) EmitStarted(s suite.Suite) {
	c.Emit(SuiteEvent{
		Type:     EventStarted,
		SuiteID:  s.ID(),
		Name:     s.Name(),
		Category: s.Category(),
		Status:   suite.StatusRunning,
	})
}

// EmitResult emits the terminal event for a finished suite.
func (c *EventCollector) EmitResult(r *suite.Result) {
	c.Emit(SuiteEvent{
		Type:     resultEventType(r.Status),
		SuiteID:  r.SuiteID,
		Name:     r.SuiteName,
		Category: r.Category,
		Status:   r.Status,
		Message:  r.Error,
		Duration: r.Duration,
		Checks:   r.Checks,
		Failures: r.Failures,
	})
}

// Events returns a copy of all collected events.
func (c *EventCollector) Events() []SuiteEvent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]SuiteEvent, len(c.events))
	copy(result, c.events)
	return result
}

// Stats returns the current aggregate statistics.
func (c *EventCollector) Stats() CollectorStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.Duration = time.Since(s.StartTime)
	return s
}

// Reset clears all collected events and statistics.
func (c *EventCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
	c.stats = CollectorStats{StartTime: time.Now()}
}
