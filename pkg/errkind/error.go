package errkind

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Kinder is implemented by errors that carry their own Kind.
type Kinder interface {
	Kind() Kind
}

// KindedError is an error tagged with a Kind.
type KindedError struct {
	kind    Kind
	Message string
	Err     error
}

// New creates a KindedError with a formatted message.
func New(kind Kind, format string, args ...any) *KindedError {
	return &KindedError{
		kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap tags err with kind. The returned error unwraps to err. Wrap
// returns nil when err is nil.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &KindedError{kind: kind, Message: msg, Err: err}
}

// Sentinel returns a message-less error of the given kind suitable
// as an errors.Is target.
func Sentinel(kind Kind) error {
	return &KindedError{kind: kind}
}

// Kind returns the failure category.
func (e *KindedError) Kind() Kind { return e.kind }

func (e *KindedError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.kind.String())
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap returns the wrapped cause, if any.
func (e *KindedError) Unwrap() error { return e.Err }

// Is matches any other *KindedError of the same kind.
func (e *KindedError) Is(target error) bool {
	var t *KindedError
	if !errors.As(target, &t) {
		return false
	}
	return t.kind == e.kind
}

// KindOf classifies err. A nil error is None. The first error in the
// chain implementing Kinder decides; Go runtime errors are mapped
// onto the closest kind; anything else is Error.
func KindOf(err error) Kind {
	if err == nil {
		return None
	}

	var k Kinder
	if errors.As(err, &k) {
		// A non-nil error always reports some failure.
		if kind := k.Kind(); kind != None && kind.Valid() {
			return kind
		}
		return Error
	}

	var tae *runtime.TypeAssertionError
	if errors.As(err, &tae) {
		return Type
	}

	var re runtime.Error
	if errors.As(err, &re) {
		return classifyRuntime(re.Error())
	}

	return Error
}

// KindOfPanic classifies a value recovered from a panic.
func KindOfPanic(v any) Kind {
	switch p := v.(type) {
	case nil:
		return None
	case Kind:
		if p.Valid() {
			return p
		}
		return Error
	case error:
		if k := KindOf(p); k != None {
			return k
		}
		return Error
	default:
		return Error
	}
}

func classifyRuntime(msg string) Kind {
	switch {
	case strings.Contains(msg, "nil pointer dereference"),
		strings.Contains(msg, "nil map"):
		return Reference
	case strings.Contains(msg, "index out of range"),
		strings.Contains(msg, "slice bounds out of range"),
		strings.Contains(msg, "integer divide by zero"),
		strings.Contains(msg, "makeslice"):
		return Range
	case strings.Contains(msg, "interface conversion"):
		return Type
	default:
		return Error
	}
}
