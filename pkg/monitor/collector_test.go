package monitor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.checks/pkg/assertion"
	"digital.vasic.checks/pkg/suite"
)

func TestEventCollector_Emit(t *testing.T) {
	c := NewEventCollector()

	var received []SuiteEvent
	var mu sync.Mutex
	c.OnEvent(func(e SuiteEvent) {
		mu.Lock()
		received = append(received, e)
		mu.Unlock()
	})

	c.Emit(SuiteEvent{
		Type:    EventStarted,
		SuiteID: "s-1",
		Name:    "Test",
	})

	mu.Lock()
	assert.Len(t, received, 1)
	assert.Equal(t, EventStarted, received[0].Type)
	assert.False(t, received[0].Timestamp.IsZero())
	mu.Unlock()
}

func TestEventCollector_EmitStarted(t *testing.T) {
	c := NewEventCollector()
	c.EmitStarted(suite.New("s-1", "Test Suite", "self", "", nil))

	events := c.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventStarted, events[0].Type)
	assert.Equal(t, suite.ID("s-1"), events[0].SuiteID)
	assert.Equal(t, "self", events[0].Category)
}

func TestEventCollector_EmitResult(t *testing.T) {
	tests := []struct {
		status   string
		expected EventType
	}{
		{suite.StatusPassed, EventPassed},
		{suite.StatusFailed, EventFailed},
		{suite.StatusSkipped, EventSkipped},
		{suite.StatusError, EventError},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			c := NewEventCollector()
			c.EmitResult(&suite.Result{
				SuiteID:  "s-1",
				Status:   tt.status,
				Duration: time.Second,
				Checks:   3,
				Failures: 1,
				Error:    "boom",
			})

			events := c.Events()
			require.Len(t, events, 1)
			assert.Equal(t, tt.expected, events[0].Type)
			assert.Equal(t, 3, events[0].Checks)
			assert.Equal(t, "boom", events[0].Message)
		})
	}
}

func TestEventCollector_Stats(t *testing.T) {
	c := NewEventCollector()
	c.EmitResult(&suite.Result{SuiteID: "s-1", Status: suite.StatusPassed})
	c.EmitResult(&suite.Result{SuiteID: "s-2", Status: suite.StatusFailed})
	c.EmitResult(&suite.Result{SuiteID: "s-3", Status: suite.StatusError})
	c.Emit(SuiteEvent{Type: EventSkipped, SuiteID: "s-4"})
	c.Emit(SuiteEvent{Type: EventDiagnostic, SuiteID: "s-2"})

	stats := c.Stats()
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.Passed)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.Errored)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, stats.Diagnostics)
}

func TestEventCollector_Reset(t *testing.T) {
	c := NewEventCollector()
	c.EmitResult(&suite.Result{SuiteID: "s-1", Status: suite.StatusPassed})
	c.Reset()

	assert.Empty(t, c.Events())
	assert.Equal(t, 0, c.Stats().Total)
}

func TestEventCollector_ConcurrentAccess(t *testing.T) {
	c := NewEventCollector()
	s := suite.New("s", "Test", "self", "", nil)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.EmitStarted(s)
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, c.Stats().Total)
}

func TestSink_EmitsDiagnosticEvents(t *testing.T) {
	c := NewEventCollector()
	r := assertion.New(NewSink(c), assertion.WithSuite("reporter"))

	r.Check(true, "held")
	r.Check(false, "broke")

	events := c.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventDiagnostic, events[0].Type)
	assert.Equal(t, suite.ID("reporter"), events[0].SuiteID)
	assert.Equal(t, "broke", events[0].Message)
	require.NotNil(t, events[0].Diagnostic)
	assert.Equal(t, assertion.OpCheck, events[0].Diagnostic.Op)
}
