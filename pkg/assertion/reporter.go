package assertion

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"digital.vasic.checks/pkg/errkind"
)

// Reporter evaluates checks and reports failures to its Sink. It holds
// no state between calls: each Check or CheckFails is independent and
// completes before returning.
type Reporter struct {
	sink       Sink
	suite      string
	hooks      []func(Outcome)
	callerSkip int
	now        func() time.Time
}

// New creates a Reporter writing to sink. A nil sink discards all
// diagnostics.
func New(sink Sink, opts ...Option) *Reporter {
	if sink == nil {
		sink = NullSink{}
	}
	r := &Reporter{
		sink: sink,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Check reports a diagnostic when condition is false. The optional
// msgAndArgs is either a single value or a format string followed by
// its arguments. Check never panics and never halts the caller.
func (r *Reporter) Check(condition bool, msgAndArgs ...any) {
	r.observe(Outcome{Op: OpCheck, Passed: condition})
	if condition {
		return
	}

	msg := formatMessage(msgAndArgs...)
	if msg == "" {
		msg = DefaultMessage
	}
	r.report(Diagnostic{
		Op:      OpCheck,
		Message: msg,
	})
}

// CheckFails invokes op exactly once and reports a diagnostic unless
// op failed with the expected kind. A returned error is classified
// with errkind.KindOf, a panic with errkind.KindOfPanic, and a nil
// return counts as errkind.None. Whatever op raises is swallowed.
func (r *Reporter) CheckFails(
	expected errkind.Kind,
	op func() error,
	msgAndArgs ...any,
) {
	observed := invoke(op)
	passed := observed == expected

	r.observe(Outcome{
		Op:       OpCheckFails,
		Passed:   passed,
		Expected: expected,
		Observed: observed,
	})
	if passed {
		return
	}

	r.report(Diagnostic{
		Op:       OpCheckFails,
		Message:  mismatchMessage(expected, observed, formatMessage(msgAndArgs...)),
		Expected: expected,
		Observed: observed,
	})
}

// invoke runs op once and classifies how it ended.
func invoke(op func() error) (observed errkind.Kind) {
	if op == nil {
		return errkind.None
	}
	defer func() {
		if v := recover(); v != nil {
			observed = errkind.KindOfPanic(v)
		}
	}()
	return errkind.KindOf(op())
}

func mismatchMessage(expected, observed errkind.Kind, msg string) string {
	got := observed.String()
	if observed == errkind.None {
		got = "no error"
	}
	text := fmt.Sprintf(
		"expected error was %s, but got %s", expected, got,
	)
	if msg != "" {
		text = msg + " and " + text
	}
	return text
}

func (r *Reporter) observe(o Outcome) {
	for _, h := range r.hooks {
		h(o)
	}
}

// report fills in the common fields and hands d to the sink. The
// caller depth is fixed: report <- Check/CheckFails <- user code.
func (r *Reporter) report(d Diagnostic) {
	d.Suite = r.suite
	d.Time = r.now()
	d.Location = callerLocation(3 + r.callerSkip)
	r.sink.Report(d)
}

func callerLocation(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// formatMessage follows the testify msgAndArgs convention.
func formatMessage(msgAndArgs ...any) string {
	switch len(msgAndArgs) {
	case 0:
		return ""
	case 1:
		if msg, ok := msgAndArgs[0].(string); ok {
			return msg
		}
		return fmt.Sprintf("%+v", msgAndArgs[0])
	default:
		if format, ok := msgAndArgs[0].(string); ok {
			return fmt.Sprintf(format, msgAndArgs[1:]...)
		}
		// Without a format string only the leading value is shown.
		return fmt.Sprintf("%+v", msgAndArgs[0])
	}
}
