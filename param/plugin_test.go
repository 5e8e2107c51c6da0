package param

import (
	"fmt"
	"testing"

	"github.com/dylan/dynparam/prefs"
	"github.com/dylan/dynparam/surface/surfacetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlugin struct {
	name  string
	param Parameter
}

func (s *stubPlugin) Name() string     { return s.name }
func (s *stubPlugin) Param() Parameter { return s.param }

func newStubs() (*stubPlugin, *stubPlugin) {
	return &stubPlugin{name: "Plugin 1", param: NewDouble(1, "radius")},
		&stubPlugin{name: "Plugin 2", param: NewInt(3, "iterations")}
}

func TestPluginSwitchTogglesSubParameters(t *testing.T) {
	one, two := newStubs()
	p := NewPlugin("filter", one, two)
	p.Init(Env{Owner: "test"})
	p.ApplyPendingVisibility()

	assert.True(t, one.param.Visible())
	assert.False(t, two.param.Visible())
	assert.Same(t, one, p.Value())

	s := surfacetest.New()
	p.AddToSurface(s)
	assert.Equal(t, []string{"filter", "radius"}, s.Labels())

	s.Choice(0).Set("Plugin 2")
	p.ReadFromSurface()
	assert.True(t, p.VisibilityChanged())
	assert.Same(t, two, p.Value())

	p.ApplyPendingVisibility()
	next := surfacetest.New()
	p.AddToSurface(next)
	assert.Equal(t, []string{"filter", "iterations"}, next.Labels())
	assert.False(t, p.VisibilityChanged())
}

func TestPluginSingleHasNoChoice(t *testing.T) {
	one, _ := newStubs()
	p := NewPlugin("filter", one)
	p.Init(Env{})
	p.ApplyPendingVisibility()

	s := surfacetest.New()
	p.AddToSurface(s)
	assert.Equal(t, []string{"radius"}, s.Labels())
	assert.Same(t, one, p.Value())
}

func TestPluginDisabledAreFiltered(t *testing.T) {
	st := prefs.New(prefs.NewMemory())
	require.NoError(t, SetPluginEnabled(st, "Plugin 1", false))

	one, two := newStubs()
	p := NewPlugin("filter", one, two)
	p.Init(Env{Store: st, Owner: "test"})
	require.Len(t, p.Plugins(), 1)
	assert.Same(t, two, p.Value())

	require.NoError(t, SetPluginEnabled(st, "Plugin 2", false))
	one, two = newStubs()
	none := NewPlugin("filter", one, two)
	none.Init(Env{Store: st})
	assert.True(t, none.Invalid())
	assert.Equal(t, "No plugin is enabled for filter.", none.CurrentError())
	assert.Nil(t, none.Value())
}

func TestPluginLoadRestoresChoice(t *testing.T) {
	st := prefs.New(prefs.NewMemory())

	one, two := newStubs()
	p := NewPlugin("filter", one, two)
	p.Init(Env{Store: st, Owner: "test"})
	s := surfacetest.New()
	p.AddToSurface(s)
	s.Choice(0).Set("Plugin 2")
	p.ReadFromSurface()
	require.NoError(t, p.Save(st, "test", "filter"))

	one, two = newStubs()
	q := NewPlugin("filter", one, two)
	q.Init(Env{Store: st, Owner: "test"})
	require.NoError(t, q.Load(st, "test", "filter"))
	q.ApplyPendingVisibility()
	assert.Same(t, two, q.Value())
	assert.True(t, two.param.Visible())
	assert.False(t, one.param.Visible())
}

func TestPluginHidingRepeatedDropsRebuild(t *testing.T) {
	steps := NewRepeated("steps", 1, 5, func(i int) Parameter {
		return NewInt(i, fmt.Sprintf("step_%d", i+1))
	})
	one := &stubPlugin{name: "Plugin 1", param: steps}
	two := &stubPlugin{name: "Plugin 2", param: NewInt(3, "iterations")}
	p := NewPlugin("filter", one, two)
	p.Init(Env{Owner: "test"})
	p.ApplyPendingVisibility()

	s := surfacetest.New()
	p.AddToSurface(s)
	require.Equal(t, []string{"filter", CountLabel, "step_1"}, s.Labels())

	s.Choice(0).Set("Plugin 2")
	s.Int(0).Set(3)
	p.ReadFromSurface()
	require.True(t, p.VisibilityChanged())
	p.ApplyPendingVisibility()
	assert.False(t, steps.Visible())
	assert.False(t, p.NeedsRebuild())

	next := surfacetest.New()
	p.AddToSurface(next)
	assert.Equal(t, []string{"filter", "iterations"}, next.Labels())
	p.ReadFromSurface()
	assert.False(t, p.NeedsRebuild(), "a hidden group does not ask for more rebuilds")
}
