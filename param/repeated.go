package param

import (
	"github.com/dylan/dynparam/prefs"
	"github.com/dylan/dynparam/surface"
)

// CountLabel is the label of a Repeated parameter's count field.
const CountLabel = "Count"

// Repeated holds a user-chosen number of items built by a factory. Changing the
// count changes the set of fields, so the dialog has to be rebuilt.
type Repeated struct {
	Composite
	initial, limit int
	newItem        func(i int) Parameter

	count   *Int
	items   []Parameter
	rebuild bool
}

// NewRepeated starts with initial items and allows between 0 and limit.
// newItem receives the zero-based index of the item to build.
func NewRepeated(label string, initial, limit int, newItem func(i int) Parameter) *Repeated {
	return &Repeated{Composite: NewComposite(label), initial: initial, limit: limit, newItem: newItem}
}

func (r *Repeated) Init(env Env) {
	r.Composite.Init(env)
	r.count = AddChild(&r.Composite, func() *Int { return NewInt(r.initial, CountLabel) })
	r.count.SetBounds(0, r.limit)
	r.resize(r.initial)
}

// Value returns the current items.
func (r *Repeated) Value() []Parameter {
	return append([]Parameter(nil), r.items...)
}

func (r *Repeated) Count() *Int { return r.count }

func (r *Repeated) resize(n int) {
	n = min(max(n, 0), r.limit)
	for len(r.items) < n {
		i := len(r.items)
		r.items = append(r.items, AddChild(&r.Composite, func() Parameter { return r.newItem(i) }))
	}
	for len(r.items) > n {
		last := r.items[len(r.items)-1]
		r.RemoveChild(last)
		r.items = r.items[:len(r.items)-1]
	}
}

func (r *Repeated) syncCount() {
	if r.count.CurrentError() != "" || r.count.Value() == len(r.items) {
		return
	}
	r.resize(r.count.Value())
	r.rebuild = true
}

func (r *Repeated) AddToSurface(s surface.Surface) {
	r.rebuild = false
	r.Composite.AddToSurface(s)
}

func (r *Repeated) ReadFromSurface() {
	r.Composite.ReadFromSurface()
	r.syncCount()
}

// ApplyPendingVisibility drops a pending rebuild once r is hidden, since a
// hidden group puts no fields on the next surface.
func (r *Repeated) ApplyPendingVisibility() {
	r.Composite.ApplyPendingVisibility()
	if !r.Visible() {
		r.rebuild = false
	}
}

func (r *Repeated) NeedsRebuild() bool {
	return r.rebuild || r.Composite.NeedsRebuild()
}

// Load restores the count first so the stored items have somewhere to load into.
func (r *Repeated) Load(st prefs.Store, owner, key string) error {
	if err := r.count.Load(st, owner, key+"."+r.count.Label()); err != nil {
		return err
	}
	if r.count.CurrentError() == "" {
		r.resize(r.count.Value())
	}
	return r.Composite.Load(st, owner, key)
}
