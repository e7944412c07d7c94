// Package sink provides assertion.Sink implementations that route
// diagnostics to writers, loggers, or several destinations at once.
package sink

import (
	"fmt"
	"io"
	"os"
	"sync"

	"digital.vasic.checks/pkg/assertion"
	"digital.vasic.checks/pkg/logging"
)

// WriterSink writes one console-style line per diagnostic.
type WriterSink struct {
	mu     sync.Mutex
	output io.Writer
}

// NewWriterSink creates a sink writing to w. A nil writer means
// stderr.
func NewWriterSink(w io.Writer) *WriterSink {
	if w == nil {
		w = os.Stderr
	}
	return &WriterSink{output: w}
}

// Report writes d followed by a newline. Write errors are dropped.
func (s *WriterSink) Report(d assertion.Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := d.String()
	if d.Suite != "" {
		line = fmt.Sprintf("[%s] %s", d.Suite, line)
	}
	_, _ = fmt.Fprintln(s.output, line)
}

// LoggerSink forwards diagnostics to a structured logger at WARN.
type LoggerSink struct {
	logger logging.Logger
}

// NewLoggerSink creates a sink logging through logger.
func NewLoggerSink(logger logging.Logger) *LoggerSink {
	if logger == nil {
		logger = logging.NullLogger{}
	}
	return &LoggerSink{logger: logger}
}

// Report logs d with its structured fields.
func (s *LoggerSink) Report(d assertion.Diagnostic) {
	fields := []logging.Field{
		logging.StringField("op", string(d.Op)),
	}
	if d.Suite != "" {
		fields = append(fields, logging.StringField("suite", d.Suite))
	}
	if d.Op == assertion.OpCheckFails {
		fields = append(fields,
			logging.StringField("expected", d.Expected.String()),
			logging.StringField("observed", d.Observed.String()),
		)
	}
	if d.Location != "" {
		fields = append(fields, logging.StringField("location", d.Location))
	}
	s.logger.Warn(d.Message, fields...)
}

// MultiSink fans out each diagnostic to several sinks in order.
type MultiSink struct {
	sinks []assertion.Sink
}

// NewMultiSink creates a fan-out sink. Nil sinks are skipped.
func NewMultiSink(sinks ...assertion.Sink) *MultiSink {
	kept := make([]assertion.Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &MultiSink{sinks: kept}
}

// Report passes d to every sink.
func (m *MultiSink) Report(d assertion.Diagnostic) {
	for _, s := range m.sinks {
		s.Report(d)
	}
}

// Len returns the number of wrapped sinks.
func (m *MultiSink) Len() int {
	return len(m.sinks)
}
