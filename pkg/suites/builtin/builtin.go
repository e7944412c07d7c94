// Package builtin provides the self-check suites shipped with the
// checks binary. They exercise the reporter and the kind classifier
// against themselves.
package builtin

import (
	"errors"
	"fmt"

	"digital.vasic.checks/pkg/plugin"
	"digital.vasic.checks/pkg/suite"
)

// PackName and PackVersion identify the built-in suite pack.
const (
	PackName    = "builtin"
	PackVersion = "1.0.0"
)

// Categories used by the built-in suites.
const (
	CategorySelf  = "self"
	CategoryKinds = "kinds"
)

// Registrar accepts suites; registry.Registry satisfies it.
type Registrar interface {
	Register(s suite.Suite) error
}

// Suites returns fresh instances of every built-in suite.
func Suites() []suite.Suite {
	return []suite.Suite{
		ReporterSuite(),
		FormatSuite(),
		KindsSuite(),
		ParseSuite(),
	}
}

// Register adds every built-in suite to reg.
func Register(reg Registrar) error {
	for _, s := range Suites() {
		if err := reg.Register(s); err != nil {
			return fmt.Errorf("failed to register %s: %w", s.ID(), err)
		}
	}
	return nil
}

// Pack returns the built-in suites as a loadable plugin.
func Pack() plugin.Plugin {
	return plugin.New(PackName, PackVersion, func(ctx *plugin.Context) error {
		if ctx == nil || ctx.Suites == nil {
			return errors.New("no suite registry in plugin context")
		}
		return Register(ctx.Suites)
	})
}
