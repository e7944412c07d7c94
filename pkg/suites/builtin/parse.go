package builtin

import (
	"digital.vasic.checks/pkg/assertion"
	"digital.vasic.checks/pkg/errkind"
	"digital.vasic.checks/pkg/suite"
)

// ParseSuite checks kind names round-trip through ParseKind.
func ParseSuite() suite.Suite {
	return suite.New(
		"parse",
		"Kind names",
		CategoryKinds,
		"Every kind has a stable name that parses back to itself",
		runParse,
	)
}

func runParse(r *assertion.Reporter) {
	for _, k := range errkind.All() {
		parsed, err := errkind.ParseKind(k.String())
		r.Check(err == nil && parsed == k, "%s round-trips, got %s (%v)", k, parsed, err)

		text, err := k.MarshalText()
		r.Check(err == nil && string(text) == k.String(), "%s marshals to its name", k)
	}

	r.CheckFails(errkind.Error, func() error {
		_, err := errkind.ParseKind("NotAKindError")
		return err
	}, "unknown names are rejected")

	r.CheckFails(errkind.Error, func() error {
		_, err := errkind.ParseKind("")
		return err
	}, "empty names are rejected")
}
