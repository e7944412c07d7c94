package metrics

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// MemoryMetrics implements CheckMetrics with in-memory counters.
// It is safe for concurrent use and renders a plain-text
// exposition through WriteText.
type MemoryMetrics struct {
	mu        sync.Mutex
	checks    map[checkKey]int
	suites    map[suiteKey]int
	durations map[string][]time.Duration
	runTotal  int
	active    int
}

// NewMemoryMetrics creates a new MemoryMetrics instance.
func NewMemoryMetrics() *MemoryMetrics {
	return &MemoryMetrics{
		checks:    make(map[checkKey]int),
		suites:    make(map[suiteKey]int),
		durations: make(map[string][]time.Duration),
	}
}

func (m *MemoryMetrics) RecordCheck(suiteID, op string, passed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks[checkKey{suiteID, op, passed}]++
}

func (m *MemoryMetrics) RecordSuite(suiteID, status string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suites[suiteKey{suiteID, status}]++
	m.durations[suiteID] = append(m.durations[suiteID], duration)
}

func (m *MemoryMetrics) IncrementRunTotal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runTotal++
}

func (m *MemoryMetrics) SetActiveSuites(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = count
}

// CheckCount returns the count for a suite+op+outcome combination.
func (m *MemoryMetrics) CheckCount(suiteID, op string, passed bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checks[checkKey{suiteID, op, passed}]
}

// SuiteCount returns the count for a suite+status combination.
func (m *MemoryMetrics) SuiteCount(suiteID, status string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.suites[suiteKey{suiteID, status}]
}

// Durations returns a copy of the recorded durations for a suite.
func (m *MemoryMetrics) Durations(suiteID string) []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.durations[suiteID]...)
}

// RunTotal returns the total number of runs.
func (m *MemoryMetrics) RunTotal() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runTotal
}

// ActiveSuites returns the current active suites gauge.
func (m *MemoryMetrics) ActiveSuites() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// WriteText writes every counter as "name{labels} value" lines in
// a stable order.
func (m *MemoryMetrics) WriteText(w io.Writer) error {
	m.mu.Lock()
	lines := make([]string, 0, len(m.checks)+len(m.suites)+len(m.durations)+2)
	for key, n := range m.checks {
		outcome := "failed"
		if key.passed {
			outcome = "passed"
		}
		lines = append(lines, fmt.Sprintf(
			"checks_total{suite=%q,op=%q,outcome=%q} %d",
			key.suite, key.op, outcome, n,
		))
	}
	for key, n := range m.suites {
		lines = append(lines, fmt.Sprintf(
			"suites_total{suite=%q,status=%q} %d", key.suite, key.status, n,
		))
	}
	for suiteID, ds := range m.durations {
		var sum time.Duration
		for _, d := range ds {
			sum += d
		}
		lines = append(lines, fmt.Sprintf(
			"suite_duration_seconds_sum{suite=%q} %g",
			suiteID, sum.Seconds(),
		))
	}
	lines = append(lines,
		fmt.Sprintf("runs_total %d", m.runTotal),
		fmt.Sprintf("active_suites %d", m.active),
	)
	m.mu.Unlock()

	sort.Strings(lines)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

type checkKey struct {
	suite  string
	op     string
	passed bool
}

type suiteKey struct {
	suite  string
	status string
}
