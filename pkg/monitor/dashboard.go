package monitor

import (
	"sync"
	"time"

	"digital.vasic.checks/pkg/suite"
)

// Run statuses reported by the dashboard.
const (
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// DashboardData tracks the live state of a run. Read it through
// Snapshot.
type DashboardData struct {
	mu        sync.RWMutex
	runID     string
	startTime time.Time
	status    string
	suites    map[suite.ID]SuiteState
	summary   DashboardSummary
}

// DashboardSnapshot is a point-in-time copy of DashboardData.
type DashboardSnapshot struct {
	RunID     string                  `json:"run_id"`
	StartTime time.Time               `json:"start_time"`
	Status    string                  `json:"status"`
	Suites    map[suite.ID]SuiteState `json:"suites"`
	Summary   DashboardSummary        `json:"summary"`
}

// SuiteState represents the current state of a suite in the dashboard.
type SuiteState struct {
	ID          suite.ID      `json:"id"`
	Name        string        `json:"name"`
	Category    string        `json:"category,omitempty"`
	Status      string        `json:"status"`
	StartTime   *time.Time    `json:"start_time,omitempty"`
	EndTime     *time.Time    `json:"end_time,omitempty"`
	Duration    time.Duration `json:"duration,omitempty"`
	Checks      int           `json:"checks"`
	Failures    int           `json:"failures"`
	Diagnostics int           `json:"diagnostics"`
	Message     string        `json:"message,omitempty"`
}

// DashboardSummary holds aggregate stats for the dashboard.
type DashboardSummary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Errored  int     `json:"errored"`
	Skipped  int     `json:"skipped"`
	Running  int     `json:"running"`
	Pending  int     `json:"pending"`
	PassRate float64 `json:"pass_rate"`
	Elapsed  string  `json:"elapsed"`
}

// NewDashboardData creates a new dashboard data instance.
func NewDashboardData(runID string) *DashboardData {
	return &DashboardData{
		runID:     runID,
		startTime: time.Now(),
		status:    RunRunning,
		suites:    make(map[suite.ID]SuiteState),
	}
}

// UpdateFromEvent updates dashboard state from a suite event.
func (d *DashboardData) UpdateFromEvent(event SuiteEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := event.Timestamp
	if now.IsZero() {
		now = time.Now()
	}
	state, exists := d.suites[event.SuiteID]
	if !exists {
		state = SuiteState{
			ID:     event.SuiteID,
			Status: suite.StatusPending,
		}
	}
	if event.Name != "" {
		state.Name = event.Name
	}
	if event.Category != "" {
		state.Category = event.Category
	}

	switch event.Type {
	case EventStarted:
		state.Status = suite.StatusRunning
		state.StartTime = &now
	case EventPassed, EventFailed, EventError, EventSkipped:
		state.Status = event.Status
		if state.Status == "" {
			state.Status = string(event.Type)
		}
		state.EndTime = &now
		state.Duration = event.Duration
		state.Checks = event.Checks
		state.Failures = event.Failures
		state.Message = event.Message
	case EventDiagnostic:
		state.Diagnostics++
		state.Message = event.Message
	}

	d.suites[event.SuiteID] = state
	d.recalcSummary()
}

func (d *DashboardData) recalcSummary() {
	s := DashboardSummary{}
	for _, st := range d.suites {
		s.Total++
		switch st.Status {
		case suite.StatusPassed:
			s.Passed++
		case suite.StatusFailed:
			s.Failed++
		case suite.StatusError:
			s.Errored++
		case suite.StatusSkipped:
			s.Skipped++
		case suite.StatusRunning:
			s.Running++
		default:
			s.Pending++
		}
	}
	if completed := s.Passed + s.Failed + s.Errored; completed > 0 {
		s.PassRate = float64(s.Passed) / float64(completed) * 100
	}
	s.Elapsed = time.Since(d.startTime).Round(time.Millisecond).String()
	d.summary = s
}

// Snapshot returns a copy of the current dashboard state.
func (d *DashboardData) Snapshot() DashboardSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	snap := DashboardSnapshot{
		RunID:     d.runID,
		StartTime: d.startTime,
		Status:    d.status,
		Suites:    make(map[suite.ID]SuiteState, len(d.suites)),
		Summary:   d.summary,
	}
	for k, v := range d.suites {
		snap.Suites[k] = v
	}
	return snap
}

// RunID returns the run identifier.
func (d *DashboardData) RunID() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.runID
}

// SetStatus sets the overall run status.
func (d *DashboardData) SetStatus(status string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status = status
}

// BuildDashboardData creates a DashboardData from an
// EventCollector by replaying all collected events.
func BuildDashboardData(
	runID string,
	collector *EventCollector,
) *DashboardData {
	data := NewDashboardData(runID)
	for _, event := range collector.Events() {
		data.UpdateFromEvent(event)
	}
	return data
}
