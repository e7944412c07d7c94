package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.checks/pkg/registry"
)

func TestLoader_LoadAndInit(t *testing.T) {
	r := NewRegistry()
	l := NewLoader(r)
	suites := registry.NewRegistry()

	plugins := []Plugin{
		suitePack("p1", "a"),
		suitePack("p2", "b", "c"),
	}

	err := l.LoadAndInit(plugins, &Context{Suites: suites})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Count())
	assert.True(t, r.IsLoaded("p1"))
	assert.True(t, r.IsLoaded("p2"))
	assert.Equal(t, 3, suites.Count())
}

func TestLoader_LoadOne(t *testing.T) {
	r := NewRegistry()
	l := NewLoader(r)
	suites := registry.NewRegistry()

	err := l.LoadOne(suitePack("single", "only"), &Context{Suites: suites})
	require.NoError(t, err)
	assert.True(t, r.IsLoaded("single"))
	_, err = suites.Get("only")
	assert.NoError(t, err)
}

func TestLoader_LoadAndInit_DuplicateError(t *testing.T) {
	r := NewRegistry()
	l := NewLoader(r)

	plugins := []Plugin{
		&mockPlugin{name: "same", version: "1.0"},
		&mockPlugin{name: "same", version: "2.0"},
	}

	err := l.LoadAndInit(plugins, &Context{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load plugin")
}

func TestLoader_ConflictingSuites(t *testing.T) {
	r := NewRegistry()
	l := NewLoader(r)

	err := l.LoadAndInit([]Plugin{
		suitePack("first", "dup"),
		suitePack("second", "dup"),
	}, &Context{Suites: registry.NewRegistry()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init plugin second")
	assert.True(t, r.IsLoaded("first"))
	assert.False(t, r.IsLoaded("second"))
}
