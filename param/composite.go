package param

import (
	"errors"
	"slices"

	"github.com/dylan/dynparam/prefs"
	"github.com/dylan/dynparam/surface"
)

// Composite is a parameter that owns an ordered list of children and aggregates
// their dialog traffic, persistence, visibility and error state. Embed it and add
// children from Init with AddChild.
type Composite struct {
	Base
	children []Parameter
}

func NewComposite(label string) Composite {
	return Composite{Base: NewBase(label)}
}

// AddChild builds a child with newChild, initializes it with c's environment and
// appends it. c must already be initialized.
func AddChild[P Parameter](c *Composite, newChild func() P) P {
	child := newChild()
	child.Init(c.env)
	c.children = append(c.children, child)
	return child
}

// RemoveChild drops the first occurrence of p.
func (c *Composite) RemoveChild(p Parameter) bool {
	i := slices.Index(c.children, p)
	if i < 0 {
		return false
	}
	c.children = slices.Delete(c.children, i, i+1)
	return true
}

func (c *Composite) ClearChildren() {
	c.children = nil
}

func (c *Composite) Children() []Parameter {
	return slices.Clone(c.children)
}

func (c *Composite) AddToSurface(s surface.Surface) {
	for _, p := range c.children {
		if p.Visible() {
			p.AddToSurface(s)
		}
	}
}

func (c *Composite) ReadFromSurface() {
	for _, p := range c.children {
		if p.Visible() {
			p.ReadFromSurface()
		}
	}
}

// Save writes every child, hidden ones included, under key + "." + child label.
func (c *Composite) Save(st prefs.Store, owner, key string) error {
	var errs []error
	for _, p := range c.children {
		if err := p.Save(st, owner, key+"."+p.Label()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Composite) Load(st prefs.Store, owner, key string) error {
	var errs []error
	for _, p := range c.children {
		if err := p.Load(st, owner, key+"."+p.Label()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Composite) VisibilityChanged() bool {
	for _, p := range c.children {
		if p.VisibilityChanged() {
			return true
		}
	}
	return c.Base.VisibilityChanged()
}

// ApplyPendingVisibility applies c's own pending state before its children's.
func (c *Composite) ApplyPendingVisibility() {
	c.Base.ApplyPendingVisibility()
	for _, p := range c.children {
		p.ApplyPendingVisibility()
	}
}

// NeedsRebuild reports whether a visible child changed its set of fields.
func (c *Composite) NeedsRebuild() bool {
	for _, p := range c.children {
		if p.Visible() && p.NeedsRebuild() {
			return true
		}
	}
	return false
}

func (c *Composite) Width() int {
	w := 0
	for _, p := range c.children {
		w = max(w, p.Width())
	}
	return w
}

// CurrentError is c's own error if set, else the first visible child's.
func (c *Composite) CurrentError() string {
	if e := c.Base.CurrentError(); e != "" {
		return e
	}
	for _, p := range c.children {
		if !p.Visible() {
			continue
		}
		if e := p.CurrentError(); e != "" {
			return e
		}
	}
	return ""
}

func (c *Composite) CurrentWarning() string {
	if w := c.Base.CurrentWarning(); w != "" {
		return w
	}
	for _, p := range c.children {
		if !p.Visible() {
			continue
		}
		if w := p.CurrentWarning(); w != "" {
			return w
		}
	}
	return ""
}

func (c *Composite) Invalid() bool {
	if c.Base.Invalid() {
		return true
	}
	for _, p := range c.children {
		if p.Invalid() {
			return true
		}
	}
	return false
}
