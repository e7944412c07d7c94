// Package registry provides suite registration, lookup and
// filtered, ID-ordered listing.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"digital.vasic.checks/pkg/suite"
)

// Registry defines the interface for managing suites.
type Registry interface {
	// Register adds a suite.
	Register(s suite.Suite) error

	// Get retrieves a suite by ID.
	Get(id suite.ID) (suite.Suite, error)

	// List returns all registered suites sorted by ID.
	List() []suite.Suite

	// ListByCategory returns suites in the given category
	// sorted by ID.
	ListByCategory(category string) []suite.Suite

	// Select resolves the given IDs in order, or every suite
	// when ids is empty, keeping only the given categories
	// when categories is non-empty.
	Select(ids []suite.ID, categories []string) ([]suite.Suite, error)

	// Clear removes all suites.
	Clear()

	// Count returns the number of registered suites.
	Count() int
}

// DefaultRegistry is the standard Registry implementation.
// It is safe for concurrent use.
type DefaultRegistry struct {
	mu     sync.RWMutex
	suites map[suite.ID]suite.Suite
}

// NewRegistry creates a new, empty DefaultRegistry.
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		suites: make(map[suite.ID]suite.Suite),
	}
}

// Default is the package-level default registry instance.
var Default = NewRegistry()

// Register adds a suite to the registry. Returns an error if a
// suite with the same ID is already registered.
func (r *DefaultRegistry) Register(s suite.Suite) error {
	if s == nil {
		return fmt.Errorf("cannot register nil suite")
	}
	id := s.ID()
	if id == "" {
		return fmt.Errorf("suite has empty ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.suites[id]; exists {
		return fmt.Errorf("suite already registered: %s", id)
	}

	r.suites[id] = s
	return nil
}

// MustRegister is like Register but panics on error. It is meant
// for package init functions.
func (r *DefaultRegistry) MustRegister(suites ...suite.Suite) {
	for _, s := range suites {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
}

// Get retrieves a suite by ID.
func (r *DefaultRegistry) Get(id suite.ID) (suite.Suite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.suites[id]
	if !exists {
		return nil, fmt.Errorf("suite not found: %s", id)
	}
	return s, nil
}

// List returns all registered suites sorted by ID.
func (r *DefaultRegistry) List() []suite.Suite {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]suite.Suite, 0, len(r.suites))
	for _, s := range r.suites {
		out = append(out, s)
	}
	sortByID(out)
	return out
}

// ListByCategory returns suites whose category matches.
func (r *DefaultRegistry) ListByCategory(category string) []suite.Suite {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []suite.Suite
	for _, s := range r.suites {
		if s.Category() == category {
			out = append(out, s)
		}
	}
	sortByID(out)
	return out
}

// Select resolves a run selection. Unknown IDs are an error;
// explicit IDs keep the caller's order.
func (r *DefaultRegistry) Select(
	ids []suite.ID,
	categories []string,
) ([]suite.Suite, error) {
	var candidates []suite.Suite
	if len(ids) == 0 {
		candidates = r.List()
	} else {
		candidates = make([]suite.Suite, 0, len(ids))
		for _, id := range ids {
			s, err := r.Get(id)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, s)
		}
	}

	if len(categories) == 0 {
		return candidates, nil
	}

	allowed := make(map[string]bool, len(categories))
	for _, c := range categories {
		allowed[c] = true
	}
	out := candidates[:0]
	for _, s := range candidates {
		if allowed[s.Category()] {
			out = append(out, s)
		}
	}
	return out, nil
}

// Clear removes all suites.
func (r *DefaultRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suites = make(map[suite.ID]suite.Suite)
}

// Count returns the number of registered suites.
func (r *DefaultRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.suites)
}

func sortByID(suites []suite.Suite) {
	sort.Slice(suites, func(i, j int) bool {
		return suites[i].ID() < suites[j].ID()
	})
}
