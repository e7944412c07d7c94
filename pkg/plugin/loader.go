package plugin

import (
	"fmt"
)

// Loader registers packs and initializes them in one step.
type Loader struct {
	registry *Registry
}

// NewLoader creates a loader backed by registry.
func NewLoader(registry *Registry) *Loader {
	return &Loader{registry: registry}
}

// LoadAndInit registers every pack, then initializes all of them.
func (l *Loader) LoadAndInit(plugins []Plugin, ctx *Context) error {
	for _, p := range plugins {
		if err := l.registry.Register(p); err != nil {
			return fmt.Errorf("load plugin: %w", err)
		}
	}
	return l.registry.InitAll(ctx)
}

// LoadOne registers and initializes a single pack.
func (l *Loader) LoadOne(p Plugin, ctx *Context) error {
	if err := l.registry.Register(p); err != nil {
		return fmt.Errorf("load plugin: %w", err)
	}
	return l.registry.Init(p.Name(), ctx)
}
