package assertion

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSinkFunc(t *testing.T) {
	var got []string
	sink := SinkFunc(func(d Diagnostic) {
		got = append(got, d.Message)
	})

	New(sink).Check(false, "via func")
	assert.Equal(t, []string{"via func"}, got)
}

func TestNullSink_ImplementsInterface(t *testing.T) {
	var _ Sink = NullSink{}
	assert.NotPanics(t, func() { NullSink{}.Report(Diagnostic{}) })
}

func TestRecorder_CopyAndReset(t *testing.T) {
	rec := NewRecorder()
	rec.Report(Diagnostic{Message: "a"})

	snapshot := rec.Diagnostics()
	snapshot[0].Message = "mutated"
	assert.Equal(t, "a", rec.Diagnostics()[0].Message)

	rec.Reset()
	assert.Equal(t, 0, rec.Len())
	assert.Empty(t, rec.Diagnostics())
}

func TestRecorder_ConcurrentReports(t *testing.T) {
	rec := NewRecorder()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Reporters are independent; only the sink is shared.
			New(rec).Check(false)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, rec.Len())
}
