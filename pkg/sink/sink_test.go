package sink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"digital.vasic.checks/pkg/assertion"
	"digital.vasic.checks/pkg/errkind"
	"digital.vasic.checks/pkg/logging"
)

func TestSinks_ImplementInterface(t *testing.T) {
	var _ assertion.Sink = &WriterSink{}
	var _ assertion.Sink = &LoggerSink{}
	var _ assertion.Sink = &MultiSink{}
}

func TestWriterSink_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	r := assertion.New(NewWriterSink(&buf))

	r.Check(true, "hidden")
	r.Check(false)
	r.Check(false, "should be equal")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Assertion failed ("))
	assert.True(t, strings.HasPrefix(lines[1], "Assertion failed: should be equal ("))
}

func TestWriterSink_SuitePrefix(t *testing.T) {
	var buf bytes.Buffer
	NewWriterSink(&buf).Report(assertion.Diagnostic{
		Suite:   "objects",
		Message: "frozen",
	})
	assert.Equal(t, "[objects] Assertion failed: frozen\n", buf.String())
}

func TestNewWriterSink_DefaultsToStderr(t *testing.T) {
	s := NewWriterSink(nil)
	assert.NotNil(t, s.output)
}

func TestLoggerSink_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.NewZapLoggerFrom(zap.New(core))
	r := assertion.New(NewLoggerSink(logger), assertion.WithSuite("kinds"))

	r.CheckFails(errkind.Type, func() error {
		return errkind.New(errkind.Reference, "missing")
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t,
		"expected error was TypeError, but got ReferenceError",
		entries[0].Message,
	)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "check_fails", ctx["op"])
	assert.Equal(t, "kinds", ctx["suite"])
	assert.Equal(t, "TypeError", ctx["expected"])
	assert.Equal(t, "ReferenceError", ctx["observed"])
	assert.Contains(t, ctx["location"], "sink_test.go:")
}

func TestLoggerSink_PlainCheckOmitsKinds(t *testing.T) {
	var buf bytes.Buffer
	s := NewLoggerSink(logging.NewConsoleLoggerTo(&buf, false))
	s.Report(assertion.Diagnostic{Op: assertion.OpCheck, Message: "plain"})

	out := buf.String()
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "plain")
	assert.NotContains(t, out, "expected=")
}

func TestLoggerSink_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		NewLoggerSink(nil).Report(assertion.Diagnostic{Message: "x"})
	})
}

func TestMultiSink_FansOutInOrder(t *testing.T) {
	var order []string
	first := assertion.SinkFunc(func(d assertion.Diagnostic) {
		order = append(order, "first:"+d.Message)
	})
	rec := assertion.NewRecorder()
	multi := NewMultiSink(first, nil, rec)

	assert.Equal(t, 2, multi.Len())

	assertion.New(multi).Check(false, "once")

	assert.Equal(t, []string{"first:once"}, order)
	assert.Equal(t, 1, rec.Len())
}
