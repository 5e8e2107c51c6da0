package param

import (
	"slices"

	"github.com/dylan/dynparam/prefs"
	"github.com/dylan/dynparam/surface"
)

type Bool struct {
	Base
	value bool
	get   func() bool
}

func NewBool(label string, def bool) *Bool {
	return &Bool{Base: NewBase(label), value: def}
}

func (p *Bool) Value() bool { return p.value }

func (p *Bool) AddToSurface(s surface.Surface) {
	p.get = s.AddBool(p.Label(), p.value)
}

func (p *Bool) ReadFromSurface() {
	if p.get != nil {
		p.value = p.get()
	}
}

func (p *Bool) Save(st prefs.Store, owner, key string) error {
	return st.PutBool(owner, key, p.value)
}

func (p *Bool) Load(st prefs.Store, owner, key string) error {
	v, err := st.Bool(owner, key, p.value)
	p.value = v
	return err
}

// choice is the item-set logic shared by Choice and Radio.
type choice struct {
	Base
	items []string
	def   string
	value string
	get   func() string
}

func newChoice(label string, items []string, def string) choice {
	c := choice{Base: NewBase(label), items: slices.Clone(items)}
	switch {
	case len(items) == 0:
		c.MarkInvalid(DisplayLabel(label) + " has nothing to choose from.")
	case def == "":
		def = items[0]
	}
	c.def, c.value = def, def
	return c
}

func (c *choice) Value() string { return c.value }

func (c *choice) Items() []string { return slices.Clone(c.items) }

func (c *choice) ReadFromSurface() {
	if c.get != nil {
		c.value = c.get()
	}
}

func (c *choice) Save(st prefs.Store, owner, key string) error {
	return st.PutString(owner, key, c.value)
}

// Load falls back to the configured default when the stored value is no longer
// one of the items.
func (c *choice) Load(st prefs.Store, owner, key string) error {
	v, err := st.String(owner, key, c.value)
	if slices.Contains(c.items, v) {
		c.value = v
	} else {
		c.value = c.def
	}
	return err
}

// Choice picks one string from a drop-down list.
type Choice struct {
	choice
}

// NewChoice creates a choice over items. An empty def selects the first item.
func NewChoice(label string, items []string, def string) *Choice {
	return &Choice{newChoice(label, items, def)}
}

func (p *Choice) AddToSurface(s surface.Surface) {
	p.get = s.AddChoice(p.Label(), p.value, p.items)
}

// Radio picks one string from a grid of radio buttons.
type Radio struct {
	choice
	rows, cols int
}

func NewRadio(label string, items []string, def string, rows, cols int) *Radio {
	return &Radio{choice: newChoice(label, items, def), rows: rows, cols: cols}
}

func (p *Radio) AddToSurface(s surface.Surface) {
	p.get = s.AddRadio(p.Label(), p.value, p.items, p.rows, p.cols)
}

// Text is a free-text parameter. Validate, when set, runs after every read and load.
type Text struct {
	Base
	Validate func(v string) (errMsg, warnMsg string)

	value string
	get   func() string
}

func NewText(label, def string) *Text {
	return &Text{Base: NewBase(label), value: def}
}

func (p *Text) Value() string { return p.value }

func (p *Text) AddToSurface(s surface.Surface) {
	p.get = s.AddText(p.Label(), p.value)
	p.check()
}

func (p *Text) ReadFromSurface() {
	if p.get != nil {
		p.value = p.get()
	}
	p.check()
}

func (p *Text) Save(st prefs.Store, owner, key string) error {
	return st.PutString(owner, key, p.value)
}

func (p *Text) Load(st prefs.Store, owner, key string) error {
	v, err := st.String(owner, key, p.value)
	p.value = v
	p.check()
	return err
}

func (p *Text) check() {
	if p.Validate == nil {
		return
	}
	e, w := p.Validate(p.value)
	p.SetError(e)
	p.SetWarning(w)
}
