// Package surface defines what a parameter can ask of the dialog that renders it.
// The widget toolkit lives behind these interfaces.
package surface

// Color names a status-text color. Implementations map it to whatever their toolkit uses.
type Color string

const (
	ColorNone  Color = ""
	ColorRed   Color = "red"
	ColorAmber Color = "amber"
)

// Number is the set of numeric types a NumberField can hold.
type Number interface {
	~int | ~float64
}

// NumberField is a live, bound-aware numeric widget.
type NumberField[T Number] interface {
	// Get returns the parsed field text. ok is false when the text is not a T.
	Get() (value T, ok bool)
	InBounds(v T) bool
	SetBounds(min, max T)
}

// Label is a text field the caller can rewrite after creation.
type Label interface {
	SetText(text string)
	SetColor(c Color)
}

// Surface is one rendering of a parameter tree. Every Add method returns an accessor
// for the live value of the field it created.
type Surface interface {
	AddBool(label string, def bool) func() bool
	AddChoice(label, def string, choices []string) func() string
	AddChoiceIndex(label, def string, choices []string) func() int
	AddDouble(label string, def float64, units string, decimals int) NumberField[float64]
	AddInt(label string, def int, units string) NumberField[int]
	AddRadio(label, def string, choices []string, rows, cols int) func() string
	AddText(label, def string) func() string
	AddMessage(text string, color Color) Label

	StringWidth(s string) int
	Width() int
	SetWidth(w int)
}
