package builtin

import (
	"errors"

	"digital.vasic.checks/pkg/assertion"
	"digital.vasic.checks/pkg/errkind"
	"digital.vasic.checks/pkg/suite"
)

// ReporterSuite checks the reporter contract by driving a nested
// reporter into a Recorder and inspecting what it captured.
func ReporterSuite() suite.Suite {
	return suite.New(
		"reporter",
		"Reporter contract",
		CategorySelf,
		"Check and CheckFails emit exactly the diagnostics they promise",
		runReporter,
	)
}

func runReporter(r *assertion.Reporter) {
	rec := assertion.NewRecorder()
	inner := assertion.New(rec)

	inner.Check(1+1 == 2)
	r.Check(rec.Len() == 0, "a true check must stay silent")

	rec.Reset()
	inner.Check(1+1 == 3, "math is broken")
	r.Check(rec.Len() == 1, "a false check emits one diagnostic")
	if rec.Len() == 1 {
		d := rec.Diagnostics()[0]
		r.Check(d.Message == "math is broken", "message is carried: %q", d.Message)
		r.Check(d.Op == assertion.OpCheck, "op is check: %s", d.Op)
		r.Check(d.Location != "", "location is resolved")
	}

	rec.Reset()
	inner.CheckFails(errkind.Reference, func() error {
		var m map[string]int
		m["x"] = 1
		return nil
	})
	r.Check(rec.Len() == 0, "matching kind stays silent")

	rec.Reset()
	inner.CheckFails(errkind.Type, func() error {
		return errkind.New(errkind.Reference, "missing")
	}, "wrong kind")
	r.Check(rec.Len() == 1, "mismatched kind emits one diagnostic")
	if rec.Len() == 1 {
		d := rec.Diagnostics()[0]
		r.Check(
			d.Message == "wrong kind and expected error was TypeError, but got ReferenceError",
			"mismatch message: %q", d.Message,
		)
		r.Check(d.Expected == errkind.Type && d.Observed == errkind.Reference,
			"expected and observed kinds are recorded")
	}

	rec.Reset()
	calls := 0
	inner.CheckFails(errkind.Range, func() error {
		calls++
		return nil
	})
	r.Check(calls == 1, "operation runs exactly once, ran %d times", calls)
	r.Check(rec.Len() == 1, "no failure is a mismatch")

	rec.Reset()
	inner.CheckFails(errkind.Error, func() error {
		return errors.New("plain")
	})
	r.Check(rec.Len() == 0, "plain errors classify as Error")

	contained := func() (ok bool) {
		defer func() {
			if recover() != nil {
				ok = false
			}
		}()
		inner.CheckFails(errkind.Syntax, func() error { panic("escaped?") })
		return true
	}()
	r.Check(contained, "a panicking operation is contained by CheckFails")
}
