// Package assertion provides the non-fatal assertion reporter. Check
// and CheckFails validate expected behavior inline and hand every
// failure to an injected Sink instead of halting the caller.
package assertion

import (
	"encoding/json"
	"fmt"
	"time"

	"digital.vasic.checks/pkg/errkind"
)

// Op names the reporter operation that produced an outcome.
type Op string

const (
	// OpCheck is a plain boolean check.
	OpCheck Op = "check"
	// OpCheckFails is an expected-failure check.
	OpCheckFails Op = "check_fails"
)

// DefaultMessage is reported when a failing Check carries no
// message of its own.
const DefaultMessage = "Assertion failed"

// Diagnostic describes a single failed check. It is the only value a
// Sink ever receives.
type Diagnostic struct {
	// Suite identifies the suite the reporter was created for.
	// Empty when the reporter is used standalone.
	Suite string `json:"suite,omitempty"`

	// Op is the operation that failed.
	Op Op `json:"op"`

	// Message is the human-readable failure description.
	Message string `json:"message"`

	// Expected is the kind CheckFails expected. Zero for Check.
	Expected errkind.Kind `json:"expected,omitempty"`

	// Observed is the kind CheckFails observed. Zero for Check.
	Observed errkind.Kind `json:"observed,omitempty"`

	// Location is the file:line of the call site.
	Location string `json:"location,omitempty"`

	// Time is when the failure was reported.
	Time time.Time `json:"time"`
}

// MarshalJSON always includes expected and observed for check_fails
// diagnostics, even when one of them is errkind.None, and omits both
// for plain checks.
func (d Diagnostic) MarshalJSON() ([]byte, error) {
	type plain Diagnostic
	out := struct {
		plain
		Expected *errkind.Kind `json:"expected,omitempty"`
		Observed *errkind.Kind `json:"observed,omitempty"`
	}{plain: plain(d)}
	if d.Op == OpCheckFails {
		out.Expected = &d.Expected
		out.Observed = &d.Observed
	}
	return json.Marshal(out)
}

// String renders the diagnostic as a single console line.
func (d Diagnostic) String() string {
	line := DefaultMessage
	if d.Message != "" && d.Message != DefaultMessage {
		line += ": " + d.Message
	}
	if d.Location != "" {
		line = fmt.Sprintf("%s (%s)", line, d.Location)
	}
	return line
}

// Outcome is the transient result of one check, handed to an
// outcome hook whether the check passed or not.
type Outcome struct {
	Op       Op
	Passed   bool
	Expected errkind.Kind
	Observed errkind.Kind
}
