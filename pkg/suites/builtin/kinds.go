package builtin

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"digital.vasic.checks/pkg/assertion"
	"digital.vasic.checks/pkg/errkind"
	"digital.vasic.checks/pkg/suite"
)

// KindsSuite checks that Go failures land on the expected kind.
func KindsSuite() suite.Suite {
	return suite.New(
		"kinds",
		"Failure classification",
		CategoryKinds,
		"Runtime panics and returned errors map onto the closed kind set",
		runKinds,
	)
}

// discard keeps results of panicking expressions observable.
var discard any

type shape interface{ area() float64 }

type square struct{ side float64 }

func (s square) area() float64 { return s.side * s.side }

func runKinds(r *assertion.Reporter) {
	r.CheckFails(errkind.Reference, func() error {
		var m map[string]int
		m["missing"] = 1
		return nil
	}, "write to nil map")

	r.CheckFails(errkind.Reference, func() error {
		var s *square
		discard = s.side
		return nil
	}, "nil pointer dereference")

	r.CheckFails(errkind.Range, func() error {
		xs := []int{1, 2, 3}
		i := len(xs)
		discard = xs[i]
		return nil
	}, "index out of range")

	r.CheckFails(errkind.Range, func() error {
		xs := []int{1, 2, 3}
		hi := len(xs) + 1
		discard = xs[:hi]
		return nil
	}, "slice bounds out of range")

	r.CheckFails(errkind.Range, func() error {
		zero := 0
		discard = 10 / zero
		return nil
	}, "integer divide by zero")

	r.CheckFails(errkind.Type, func() error {
		var v any = "text"
		discard = v.(int)
		return nil
	}, "failed type assertion")

	r.CheckFails(errkind.Type, func() error {
		var v any = square{side: 2}
		discard = v.(fmt.Stringer)
		return nil
	}, "missing method in interface conversion")

	r.CheckFails(errkind.None, func() error {
		var v shape = square{side: 2}
		if v.area() != 4 {
			return errkind.New(errkind.Eval, "area %v", v.area())
		}
		return nil
	}, "a clean operation reports no error")

	r.CheckFails(errkind.Error, func() error {
		_, err := strconv.Atoi("twelve")
		return err
	}, "library errors are generic")

	r.CheckFails(errkind.Error, func() error {
		_, err := os.Stat("/definitely/not/here")
		if !errors.Is(err, fs.ErrNotExist) {
			return errkind.New(errkind.Eval, "unexpected stat result: %v", err)
		}
		return err
	}, "filesystem errors are generic")

	r.CheckFails(errkind.URI, func() error {
		return fmt.Errorf("loading: %w",
			errkind.Wrap(errkind.URI, errors.New("bad escape"), "decode"))
	}, "wrapped kinds are found through the chain")

	r.CheckFails(errkind.Aggregate, func() error {
		return errors.Join(
			errkind.New(errkind.Aggregate, "two failures"),
			errkind.New(errkind.Type, "first"),
		)
	}, "first kinded error in a joined chain decides")

	r.CheckFails(errkind.Syntax, func() error {
		panic(errkind.New(errkind.Syntax, "unexpected token"))
	}, "panicking with a kinded error")

	r.CheckFails(errkind.Eval, func() error {
		panic(errkind.Eval)
	}, "panicking with a bare kind")

	r.CheckFails(errkind.Error, func() error {
		panic("just a string")
	}, "panicking with an arbitrary value")

	r.Check(errors.Is(errkind.Sentinel(errkind.Range), errkind.New(errkind.Range, "any")),
		"kinded errors of the same kind match errors.Is")
	r.Check(!errors.Is(errkind.Sentinel(errkind.Range), errkind.Sentinel(errkind.Type)),
		"different kinds never match")
}
