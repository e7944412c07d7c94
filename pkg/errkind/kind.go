// Package errkind defines the closed set of failure categories that
// expected-failure checks compare against, together with kinded
// error values and the classification of arbitrary errors and
// recovered panics into a Kind.
package errkind

import (
	"fmt"
	"strings"
)

// Kind is an opaque failure category. Kinds are compared by value
// only; there is no hierarchy between them.
type Kind int

const (
	// None means no failure was raised.
	None Kind = iota
	// Error is the generic, unclassified failure.
	Error
	// Eval marks failures of dynamic evaluation.
	Eval
	// Range marks values outside their allowed range, including
	// out-of-bounds indexing and integer division by zero.
	Range
	// Reference marks access through a missing binding or a nil
	// reference.
	Reference
	// Syntax marks malformed input.
	Syntax
	// Type marks an operation applied to a value of the wrong type.
	Type
	// URI marks malformed URI handling.
	URI
	// Aggregate wraps several failures at once.
	Aggregate
)

var kindNames = [...]string{
	None:      "none",
	Error:     "Error",
	Eval:      "EvalError",
	Range:     "RangeError",
	Reference: "ReferenceError",
	Syntax:    "SyntaxError",
	Type:      "TypeError",
	URI:       "URIError",
	Aggregate: "AggregateError",
}

// String returns the canonical name of the kind, e.g. "TypeError".
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// All returns every declared kind in declaration order.
func All() []Kind {
	out := make([]Kind, 0, len(kindNames))
	for k := range kindNames {
		out = append(out, Kind(k))
	}
	return out
}

// ParseKind returns the kind with the given canonical name. Matching
// is case-insensitive and the "Error" suffix may be omitted, so
// "type", "TypeError" and "typeerror" all resolve to Type.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return None, fmt.Errorf("empty error kind")
	}
	for k, canonical := range kindNames {
		c := strings.ToLower(canonical)
		if n == c || n+"error" == c {
			return Kind(k), nil
		}
	}
	return None, fmt.Errorf("unknown error kind: %s", name)
}

// MarshalText implements encoding.TextMarshaler so kinds serialize
// by name in JSON and YAML.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid error kind: %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
