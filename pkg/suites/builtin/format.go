package builtin

import (
	"strings"

	"digital.vasic.checks/pkg/assertion"
	"digital.vasic.checks/pkg/errkind"
	"digital.vasic.checks/pkg/suite"
)

// FormatSuite checks how diagnostic messages are composed.
func FormatSuite() suite.Suite {
	return suite.New(
		"format",
		"Diagnostic formatting",
		CategorySelf,
		"Default, formatted and mismatch messages render as documented",
		runFormat,
	)
}

func runFormat(r *assertion.Reporter) {
	rec := assertion.NewRecorder()
	inner := assertion.New(rec)

	inner.Check(false)
	inner.Check(false, "%d of %d", 1, 2)
	inner.CheckFails(errkind.Type, func() error { return nil })
	inner.CheckFails(errkind.URI, func() error { return errkind.New(errkind.Eval, "e") }, "decode")

	got := rec.Diagnostics()
	r.Check(len(got) == 4, "four diagnostics recorded, got %d", len(got))
	if len(got) != 4 {
		return
	}

	r.Check(got[0].Message == assertion.DefaultMessage,
		"default message: %q", got[0].Message)
	r.Check(got[1].Message == "1 of 2", "formatted message: %q", got[1].Message)
	r.Check(got[2].Message == "expected error was TypeError, but got no error",
		"no-failure message: %q", got[2].Message)
	r.Check(got[3].Message == "decode and expected error was URIError, but got EvalError",
		"prefixed mismatch message: %q", got[3].Message)

	line := got[1].String()
	r.Check(strings.HasPrefix(line, "Assertion failed: 1 of 2 ("),
		"console line: %q", line)
	r.Check(got[0].String() == assertion.DefaultMessage+" ("+got[0].Location+")",
		"default line is not repeated: %q", got[0].String())
}
