package metrics

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryMetrics_ImplementsInterface(t *testing.T) {
	var _ CheckMetrics = &MemoryMetrics{}
}

func TestNoopMetrics_ImplementsInterface(t *testing.T) {
	var _ CheckMetrics = &NoopMetrics{}
}

func TestNoopMetrics(t *testing.T) {
	m := &NoopMetrics{}
	// Should not panic
	m.RecordCheck("s", "check", true)
	m.RecordSuite("s", "passed", time.Second)
	m.IncrementRunTotal()
	m.SetActiveSuites(0)
}

func TestMemoryMetrics_RecordCheck(t *testing.T) {
	m := NewMemoryMetrics()
	m.RecordCheck("s-1", "check", true)
	m.RecordCheck("s-1", "check", true)
	m.RecordCheck("s-1", "check_fails", false)

	assert.Equal(t, 2, m.CheckCount("s-1", "check", true))
	assert.Equal(t, 0, m.CheckCount("s-1", "check", false))
	assert.Equal(t, 1, m.CheckCount("s-1", "check_fails", false))
}

func TestMemoryMetrics_RecordSuite(t *testing.T) {
	m := NewMemoryMetrics()
	m.RecordSuite("s-1", "passed", 2*time.Second)
	m.RecordSuite("s-1", "passed", 3*time.Second)
	m.RecordSuite("s-2", "failed", time.Second)

	assert.Equal(t, 2, m.SuiteCount("s-1", "passed"))
	assert.Equal(t, 1, m.SuiteCount("s-2", "failed"))
	assert.Equal(t, 0, m.SuiteCount("s-3", "passed"))
	assert.Equal(t,
		[]time.Duration{2 * time.Second, 3 * time.Second},
		m.Durations("s-1"),
	)
}

func TestMemoryMetrics_RunTotalAndActive(t *testing.T) {
	m := NewMemoryMetrics()
	m.IncrementRunTotal()
	m.IncrementRunTotal()
	m.SetActiveSuites(5)
	assert.Equal(t, 2, m.RunTotal())
	assert.Equal(t, 5, m.ActiveSuites())
}

func TestMemoryMetrics_WriteText(t *testing.T) {
	m := NewMemoryMetrics()
	m.RecordCheck("reporter", "check", false)
	m.RecordSuite("reporter", "failed", 1500*time.Millisecond)
	m.IncrementRunTotal()

	var buf strings.Builder
	require.NoError(t, m.WriteText(&buf))

	expected := strings.Join([]string{
		`active_suites 0`,
		`checks_total{suite="reporter",op="check",outcome="failed"} 1`,
		`runs_total 1`,
		`suite_duration_seconds_sum{suite="reporter"} 1.5`,
		`suites_total{suite="reporter",status="failed"} 1`,
	}, "\n") + "\n"
	assert.Equal(t, expected, buf.String())
}

func TestMemoryMetrics_Concurrent(t *testing.T) {
	m := NewMemoryMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordCheck("s", "check", true)
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, m.CheckCount("s", "check", true))
}
