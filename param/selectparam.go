package param

import (
	"github.com/dylan/dynparam/prefs"
	"github.com/dylan/dynparam/surface"
)

// Option is one selectable item of a Select.
type Option[T any] struct {
	Name  string
	Value T
}

// Select picks one of a fixed set of live items, such as open documents or
// connected devices. With no items it is invalid and harvesting aborts. The item
// name, not the item, is what gets persisted.
type Select[T any] struct {
	Base
	options []Option[T]
	index   int
	get     func() int
}

func NewSelect[T any](label string, options []Option[T]) *Select[T] {
	p := &Select[T]{Base: NewBase(label), options: options}
	if len(options) == 0 {
		p.MarkInvalid("At least one item must be passed to the parameter " + DisplayLabel(label) + ".")
	}
	return p
}

// Value returns the selected item, or T's zero value when there are no items.
func (p *Select[T]) Value() T {
	if p.index < 0 || p.index >= len(p.options) {
		var zero T
		return zero
	}
	return p.options[p.index].Value
}

func (p *Select[T]) SelectedName() string {
	if p.index < 0 || p.index >= len(p.options) {
		return ""
	}
	return p.options[p.index].Name
}

func (p *Select[T]) names() []string {
	names := make([]string, len(p.options))
	for i, o := range p.options {
		names[i] = o.Name
	}
	return names
}

func (p *Select[T]) AddToSurface(s surface.Surface) {
	if len(p.options) == 0 {
		return
	}
	names := p.names()
	p.get = s.AddChoiceIndex(p.Label(), names[p.index], names)
}

func (p *Select[T]) ReadFromSurface() {
	if p.get == nil {
		return
	}
	if i := p.get(); i >= 0 && i < len(p.options) {
		p.index = i
	}
}

func (p *Select[T]) Save(st prefs.Store, owner, key string) error {
	if len(p.options) == 0 {
		return nil
	}
	return st.PutString(owner, key, p.options[p.index].Name)
}

// Load selects the stored name if it is still one of the items.
func (p *Select[T]) Load(st prefs.Store, owner, key string) error {
	if len(p.options) == 0 {
		return nil
	}
	name, err := st.String(owner, key, "")
	for i, o := range p.options {
		if o.Name == name {
			p.index = i
			break
		}
	}
	return err
}
