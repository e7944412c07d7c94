package plugin

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.checks/pkg/assertion"
	"digital.vasic.checks/pkg/logging"
	"digital.vasic.checks/pkg/registry"
	"digital.vasic.checks/pkg/suite"
)

type mockPlugin struct {
	name    string
	version string
	initErr error
	inits   int
}

func (m *mockPlugin) Name() string    { return m.name }
func (m *mockPlugin) Version() string { return m.version }
func (m *mockPlugin) Init(_ *Context) error {
	if m.initErr != nil {
		return m.initErr
	}
	m.inits++
	return nil
}

// suitePack registers one empty suite per id.
func suitePack(name string, ids ...string) Plugin {
	return New(name, "1.0", func(ctx *Context) error {
		for _, id := range ids {
			s := suite.New(suite.ID(id), id, "test", "",
				func(r *assertion.Reporter) {})
			if err := ctx.Suites.Register(s); err != nil {
				return err
			}
		}
		return nil
	})
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	err := r.Register(&mockPlugin{name: "test", version: "1.0"})
	assert.NoError(t, err)
	assert.Equal(t, 1, r.Count())

	// Duplicate
	err = r.Register(&mockPlugin{name: "test", version: "1.0"})
	assert.Error(t, err)

	// Nil plugin
	err = r.Register(nil)
	assert.Error(t, err)

	// Empty name
	err = r.Register(&mockPlugin{name: "", version: "1.0"})
	assert.Error(t, err)
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockPlugin{name: "test", version: "1.0"}))

	p, ok := r.Get("test")
	assert.True(t, ok)
	assert.Equal(t, "test", p.Name())

	_, ok = r.Get("nonexistent")
	assert.False(t, ok)
}

func TestRegistry_InitAll(t *testing.T) {
	r := NewRegistry()
	a := &mockPlugin{name: "a", version: "1.0"}
	b := &mockPlugin{name: "b", version: "1.0"}
	require.NoError(t, r.Register(b))
	require.NoError(t, r.Register(a))

	require.NoError(t, r.InitAll(&Context{}))
	assert.True(t, r.IsLoaded("a"))
	assert.True(t, r.IsLoaded("b"))

	// Loaded plugins are not initialized twice.
	require.NoError(t, r.InitAll(&Context{}))
	assert.Equal(t, 1, a.inits)
	assert.Equal(t, 1, b.inits)
}

func TestRegistry_InitAll_Error(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockPlugin{name: "a", version: "1.0"}))
	require.NoError(t, r.Register(&mockPlugin{
		name: "b", version: "1.0", initErr: errors.New("boom"),
	}))
	require.NoError(t, r.Register(&mockPlugin{name: "c", version: "1.0"}))

	err := r.InitAll(&Context{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init plugin b")
	assert.True(t, r.IsLoaded("a"))
	assert.False(t, r.IsLoaded("b"))
	assert.False(t, r.IsLoaded("c"), "initialization stops at the first failure")
}

func TestRegistry_Init(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockPlugin{name: "test", version: "1.0"}))

	assert.NoError(t, r.Init("test", &Context{}))
	assert.True(t, r.IsLoaded("test"))

	err := r.Init("missing", &Context{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plugin not found")
}

func TestRegistry_List(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, r.Register(&mockPlugin{name: name, version: "1.0"}))
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.List())
}

func TestRegistry_InitLogsLoadedPlugin(t *testing.T) {
	var buf strings.Builder
	r := NewRegistry()
	require.NoError(t, r.Register(suitePack("pack", "x")))

	err := r.InitAll(&Context{
		Suites: registry.NewRegistry(),
		Logger: logging.NewConsoleLoggerTo(&buf, true),
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "plugin loaded")
	assert.Contains(t, buf.String(), "pack")
}

func TestNew_NilInit(t *testing.T) {
	p := New("empty", "0.1", nil)
	assert.Equal(t, "empty", p.Name())
	assert.Equal(t, "0.1", p.Version())
	assert.NoError(t, p.Init(&Context{}))
}
