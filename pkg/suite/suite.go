// Package suite defines named groups of checks and the result of
// running one.
package suite

import "digital.vasic.checks/pkg/assertion"

// ID uniquely identifies a suite.
type ID string

// Suite is a named group of checks. Run receives a reporter bound
// to the suite and performs its checks synchronously.
type Suite interface {
	// ID returns the unique identifier for this suite.
	ID() ID

	// Name returns the human-readable name of this suite.
	Name() string

	// Description returns what this suite demonstrates.
	Description() string

	// Category returns the category grouping for this suite
	// (e.g., "self", "kinds").
	Category() string

	// Run performs the suite's checks against r.
	Run(r *assertion.Reporter)
}

// FuncSuite is a Suite whose body is a plain function.
type FuncSuite struct {
	id          ID
	name        string
	description string
	category    string
	fn          func(r *assertion.Reporter)
}

// New creates a FuncSuite.
func New(
	id ID,
	name, category, description string,
	fn func(r *assertion.Reporter),
) *FuncSuite {
	return &FuncSuite{
		id:          id,
		name:        name,
		description: description,
		category:    category,
		fn:          fn,
	}
}

// ID returns the suite identifier.
func (s *FuncSuite) ID() ID { return s.id }

// Name returns the suite name.
func (s *FuncSuite) Name() string { return s.name }

// Description returns the suite description.
func (s *FuncSuite) Description() string { return s.description }

// Category returns the suite category.
func (s *FuncSuite) Category() string { return s.category }

// Run calls the suite body. A nil body performs no checks.
func (s *FuncSuite) Run(r *assertion.Reporter) {
	if s.fn != nil {
		s.fn(r)
	}
}
