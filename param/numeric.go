package param

import (
	"fmt"
	"math"

	"github.com/dylan/dynparam/prefs"
	"github.com/dylan/dynparam/surface"
)

// Bound sentinels. Passing them to SetBounds selects the matching message wording.
const (
	DoubleMin     = -math.MaxFloat64
	DoubleMax     = math.MaxFloat64
	JustOverZero  = math.SmallestNonzeroFloat64
	JustUnderZero = -math.SmallestNonzeroFloat64

	IntMin = math.MinInt
	IntMax = math.MaxInt

	// IntJustOverZero and IntJustUnderZero are the integers nearest zero, so
	// SetBounds(1, 10) on an Int is reported as the range (0 .. 10].
	IntJustOverZero  = 1
	IntJustUnderZero = -1
)

type numberOptions struct {
	units    string
	decimals int
}

type NumberOption func(*numberOptions)

// WithUnits sets the unit caption shown after the field.
func WithUnits(units string) NumberOption {
	return func(o *numberOptions) { o.units = units }
}

// WithDecimals sets the precision hint for Double fields.
func WithDecimals(decimals int) NumberOption {
	return func(o *numberOptions) { o.decimals = decimals }
}

// numeric is the bounds policy shared by Int and Double.
type numeric[T surface.Number] struct {
	Base
	value    T
	min, max T
	units    string
	field    surface.NumberField[T]

	lowest, highest     T
	overZero, underZero T
	notNumber           string
}

func (n *numeric[T]) Value() T { return n.value }

// SetValue replaces the value as if it had been typed.
func (n *numeric[T]) SetValue(v T) {
	n.value = v
	n.checkForErrors()
}

// SetBounds installs the inclusive range [min, max] and revalidates.
func (n *numeric[T]) SetBounds(min, max T) {
	n.min, n.max = min, max
	if n.field != nil {
		n.field.SetBounds(min, max)
		if v, ok := n.fieldValue(); ok {
			n.value = v
		}
	}
	n.checkForErrors()
}

func (n *numeric[T]) Bounds() (T, T) { return n.min, n.max }

func (n *numeric[T]) Units() string { return n.units }

func (n *numeric[T]) attach(field surface.NumberField[T]) {
	n.field = field
	n.field.SetBounds(n.min, n.max)
	if v, ok := n.fieldValue(); ok {
		n.value = v
	}
	n.checkForErrors()
}

func (n *numeric[T]) ReadFromSurface() {
	if n.field == nil {
		return
	}
	if v, ok := n.fieldValue(); ok {
		n.value = v
	}
	n.checkForErrors()
}

// fieldValue reads the live field. NaN and the infinities count as unparsable.
func (n *numeric[T]) fieldValue() (T, bool) {
	v, ok := n.field.Get()
	return v, ok && finite(v)
}

func finite[T surface.Number](v T) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (n *numeric[T]) checkForErrors() {
	if n.field != nil {
		if _, ok := n.fieldValue(); !ok {
			n.SetError(DisplayLabel(n.Label()) + n.notNumber)
			return
		}
	}
	if !finite(n.value) {
		n.SetError(DisplayLabel(n.Label()) + n.notNumber)
		return
	}
	if !(n.value >= n.min && n.value <= n.max) {
		n.SetError(n.boundsMessage())
		return
	}
	n.SetError("")
}

func (n *numeric[T]) boundsMessage() string {
	label := DisplayLabel(n.Label())
	switch {
	case n.min == n.lowest:
		if n.max == n.underZero {
			return label + " must be less than zero."
		}
		return fmt.Sprintf("%s must be less than or equal to %v.", label, n.max)
	case n.max == n.highest:
		if n.min == n.overZero {
			return label + " must be greater than zero."
		}
		return fmt.Sprintf("%s must be greater than or equal to %v.", label, n.min)
	case n.min == n.overZero:
		return fmt.Sprintf("%s must be in the range (0 .. %v].", label, n.max)
	case n.max == n.underZero:
		return fmt.Sprintf("%s must be in the range [%v .. 0).", label, n.min)
	default:
		return fmt.Sprintf("%s must be in the range [%v .. %v].", label, n.min, n.max)
	}
}

// Int is an integer parameter with optional inclusive bounds.
type Int struct {
	numeric[int]
}

func NewInt(start int, label string, opts ...NumberOption) *Int {
	var o numberOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Int{numeric[int]{
		Base:      NewBase(label),
		value:     start,
		min:       IntMin,
		max:       IntMax,
		units:     o.units,
		lowest:    IntMin,
		highest:   IntMax,
		overZero:  IntJustOverZero,
		underZero: IntJustUnderZero,
		notNumber: " is not an integer.",
	}}
}

func (p *Int) AddToSurface(s surface.Surface) {
	p.attach(s.AddInt(p.Label(), p.value, p.units))
}

func (p *Int) Save(st prefs.Store, owner, key string) error {
	return st.PutInt(owner, key, p.value)
}

func (p *Int) Load(st prefs.Store, owner, key string) error {
	v, err := st.Int(owner, key, p.value)
	p.value = v
	p.checkForErrors()
	return err
}

// Double is a floating point parameter with optional inclusive bounds.
type Double struct {
	numeric[float64]
	decimals int
}

func NewDouble(start float64, label string, opts ...NumberOption) *Double {
	o := numberOptions{decimals: 3}
	for _, opt := range opts {
		opt(&o)
	}
	return &Double{
		numeric: numeric[float64]{
			Base:      NewBase(label),
			value:     start,
			min:       DoubleMin,
			max:       DoubleMax,
			units:     o.units,
			lowest:    DoubleMin,
			highest:   DoubleMax,
			overZero:  JustOverZero,
			underZero: JustUnderZero,
			notNumber: " is not a number.",
		},
		decimals: o.decimals,
	}
}

func (p *Double) Decimals() int { return p.decimals }

func (p *Double) AddToSurface(s surface.Surface) {
	p.attach(s.AddDouble(p.Label(), p.value, p.units, p.decimals))
}

func (p *Double) Save(st prefs.Store, owner, key string) error {
	return st.PutFloat(owner, key, p.value)
}

func (p *Double) Load(st prefs.Store, owner, key string) error {
	v, err := st.Float(owner, key, p.value)
	p.value = v
	p.checkForErrors()
	return err
}
