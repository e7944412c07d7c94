// Package plugin loads suite packs: named bundles that register
// suites into a suite registry when initialized.
package plugin

import (
	"fmt"
	"sort"
	"sync"

	"digital.vasic.checks/pkg/logging"
	"digital.vasic.checks/pkg/registry"
)

// Plugin is a suite pack.
type Plugin interface {
	// Name returns the unique pack name.
	Name() string

	// Version returns the pack version.
	Version() string

	// Init registers the pack's suites through ctx.
	Init(ctx *Context) error
}

// Context is handed to Plugin.Init.
type Context struct {
	// Suites receives the pack's suites.
	Suites registry.Registry

	// Logger may be nil.
	Logger logging.Logger
}

// New returns a Plugin backed by an init function.
func New(name, version string, init func(ctx *Context) error) Plugin {
	return &funcPlugin{name: name, version: version, init: init}
}

type funcPlugin struct {
	name    string
	version string
	init    func(ctx *Context) error
}

func (p *funcPlugin) Name() string    { return p.name }
func (p *funcPlugin) Version() string { return p.version }

func (p *funcPlugin) Init(ctx *Context) error {
	if p.init == nil {
		return nil
	}
	return p.init(ctx)
}

// Registry tracks packs and whether each has been initialized.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	loaded  map[string]bool
}

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
		loaded:  make(map[string]bool),
	}
}

// Register adds a plugin. Names must be unique.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return fmt.Errorf("cannot register nil plugin")
	}
	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin has empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("plugin already registered: %s", name)
	}
	r.plugins[name] = p
	return nil
}

// Get returns the plugin registered under name.
func (r *Registry) Get(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// Init initializes one registered plugin. Initializing a loaded
// plugin again is a no-op.
func (r *Registry) Init(name string, ctx *Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initLocked(name, ctx)
}

// InitAll initializes every registered plugin in name order and
// stops at the first failure.
func (r *Registry) InitAll(ctx *Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range r.namesLocked() {
		if err := r.initLocked(name, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) initLocked(name string, ctx *Context) error {
	p, ok := r.plugins[name]
	if !ok {
		return fmt.Errorf("plugin not found: %s", name)
	}
	if r.loaded[name] {
		return nil
	}
	if err := p.Init(ctx); err != nil {
		return fmt.Errorf("init plugin %s: %w", name, err)
	}
	r.loaded[name] = true
	if ctx != nil && ctx.Logger != nil {
		ctx.Logger.Debug("plugin loaded",
			logging.StringField("plugin", name),
			logging.StringField("version", p.Version()),
		)
	}
	return nil
}

// List returns the registered plugin names sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsLoaded reports whether the named plugin was initialized.
func (r *Registry) IsLoaded(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded[name]
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}
