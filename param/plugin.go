package param

import (
	"github.com/dylan/dynparam/prefs"
	"go.uber.org/zap"
)

// PluginOwner is the prefs owner under which plugin availability is stored.
const PluginOwner = "plugins"

// PluginItem is one alternative a Plugin parameter can choose. Param may return nil
// for a plugin without settings of its own.
type PluginItem interface {
	Name() string
	Param() Parameter
}

// SetPluginEnabled makes the named plugin available to, or hidden from, every Plugin
// parameter initialized afterwards with st.
func SetPluginEnabled(st prefs.Store, name string, enabled bool) error {
	return st.PutBool(PluginOwner, name, enabled)
}

// Plugin chooses one of several plugins and shows only the chosen plugin's own
// sub-parameter. With a single enabled plugin no choice field is shown.
type Plugin[T PluginItem] struct {
	Composite
	candidates []T
	plugins    []T
	choice     *Choice
	params     map[string]Parameter
}

// NewPlugin offers candidates in the given order. Disabled ones are filtered out in Init.
func NewPlugin[T PluginItem](label string, candidates ...T) *Plugin[T] {
	return &Plugin[T]{Composite: NewComposite(label), candidates: candidates}
}

func (p *Plugin[T]) Init(env Env) {
	p.Composite.Init(env)
	p.params = make(map[string]Parameter)

	for _, c := range p.candidates {
		if enabled(env, c.Name()) {
			p.plugins = append(p.plugins, c)
		}
	}
	if len(p.plugins) == 0 {
		p.MarkInvalid("No plugin is enabled for " + DisplayLabel(p.Label()) + ".")
		return
	}

	if len(p.plugins) > 1 {
		names := make([]string, len(p.plugins))
		for i, pl := range p.plugins {
			names[i] = pl.Name()
		}
		p.choice = AddChild(&p.Composite, func() *Choice {
			return NewChoice(p.Label(), names, names[0])
		})
	}
	for _, pl := range p.plugins {
		sub := pl.Param()
		if sub == nil {
			continue
		}
		AddChild(&p.Composite, func() Parameter { return sub })
		p.params[pl.Name()] = sub
	}
	p.setVisibilities()
}

func enabled(env Env, name string) bool {
	if env.Store == nil {
		return true
	}
	on, err := env.Store.Bool(PluginOwner, name, true)
	if err != nil {
		env.logger().Warn("reading plugin availability", zap.String("plugin", name), zap.Error(err))
		return true
	}
	return on
}

// Value returns the chosen plugin, or T's zero value if the choice names none.
func (p *Plugin[T]) Value() T {
	if p.choice == nil {
		if len(p.plugins) > 0 {
			return p.plugins[0]
		}
		var zero T
		return zero
	}
	for _, pl := range p.plugins {
		if pl.Name() == p.choice.Value() {
			return pl
		}
	}
	var zero T
	return zero
}

// Plugins returns the enabled plugins.
func (p *Plugin[T]) Plugins() []T {
	return append([]T(nil), p.plugins...)
}

func (p *Plugin[T]) ReadFromSurface() {
	p.Composite.ReadFromSurface()
	p.setVisibilities()
}

func (p *Plugin[T]) Load(st prefs.Store, owner, key string) error {
	err := p.Composite.Load(st, owner, key)
	p.setVisibilities()
	return err
}

func (p *Plugin[T]) setVisibilities() {
	if p.choice == nil {
		return
	}
	for _, sub := range p.params {
		sub.MarkPendingVisibility(false)
	}
	if cur := p.params[p.choice.Value()]; cur != nil {
		cur.MarkPendingVisibility(true)
	}
}
