// Package surfacetest provides an in-memory surface.Surface that records every field
// added to it. Tests change field values through the recorded handles.
package surfacetest

import (
	"math"
	"sync"
	"unicode/utf8"

	"github.com/dylan/dynparam/surface"
)

// Value is a recorded non-numeric field.
type Value[T any] struct {
	Label string

	mu sync.Mutex
	v  T
}

func (f *Value[T]) Get() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.v
}

func (f *Value[T]) Set(v T) {
	f.mu.Lock()
	f.v = v
	f.mu.Unlock()
}

// Number is a recorded numeric field. Its text is either a valid T or garbage.
type Number[T surface.Number] struct {
	Label    string
	Units    string
	Decimals int

	mu       sync.Mutex
	value    T
	garbage  bool
	min, max T
}

func (n *Number[T]) Get() (T, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.garbage {
		var zero T
		return zero, false
	}
	return n.value, true
}

func (n *Number[T]) InBounds(v T) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return v >= n.min && v <= n.max
}

func (n *Number[T]) SetBounds(min, max T) {
	n.mu.Lock()
	n.min, n.max = min, max
	n.mu.Unlock()
}

// Bounds returns the bounds last pushed to the field.
func (n *Number[T]) Bounds() (T, T) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.min, n.max
}

// Set types v into the field.
func (n *Number[T]) Set(v T) {
	n.mu.Lock()
	n.value = v
	n.garbage = false
	n.mu.Unlock()
}

// SetGarbage types text that does not parse as a number.
func (n *Number[T]) SetGarbage() {
	n.mu.Lock()
	n.garbage = true
	n.mu.Unlock()
}

// Message is a recorded status or message field.
type Message struct {
	mu    sync.Mutex
	text  string
	color surface.Color
}

func (m *Message) SetText(text string) {
	m.mu.Lock()
	m.text = text
	m.mu.Unlock()
}

func (m *Message) SetColor(c surface.Color) {
	m.mu.Lock()
	m.color = c
	m.mu.Unlock()
}

func (m *Message) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

func (m *Message) Color() surface.Color {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.color
}

// Surface records fields by kind in the order they were added. Choice, radio and
// text fields share the string list.
type Surface struct {
	mu       sync.Mutex
	labels   []string
	bools    []*Value[bool]
	strings  []*Value[string]
	indices  []*Value[int]
	doubles  []*Number[float64]
	ints     []*Number[int]
	messages []*Message
	width    int
}

var _ surface.Surface = (*Surface)(nil)

func New() *Surface {
	return &Surface{}
}

func (s *Surface) AddBool(label string, def bool) func() bool {
	f := &Value[bool]{Label: label, v: def}
	s.mu.Lock()
	s.labels = append(s.labels, label)
	s.bools = append(s.bools, f)
	s.mu.Unlock()
	return f.Get
}

func (s *Surface) AddChoice(label, def string, choices []string) func() string {
	return s.addString(label, def)
}

func (s *Surface) AddChoiceIndex(label, def string, choices []string) func() int {
	index := -1
	for i, c := range choices {
		if c == def {
			index = i
			break
		}
	}
	f := &Value[int]{Label: label, v: index}
	s.mu.Lock()
	s.labels = append(s.labels, label)
	s.indices = append(s.indices, f)
	s.mu.Unlock()
	return f.Get
}

func (s *Surface) AddDouble(label string, def float64, units string, decimals int) surface.NumberField[float64] {
	n := &Number[float64]{Label: label, Units: units, Decimals: decimals, value: def, min: -math.MaxFloat64, max: math.MaxFloat64}
	s.mu.Lock()
	s.labels = append(s.labels, label)
	s.doubles = append(s.doubles, n)
	s.mu.Unlock()
	return n
}

func (s *Surface) AddInt(label string, def int, units string) surface.NumberField[int] {
	n := &Number[int]{Label: label, Units: units, value: def, min: math.MinInt, max: math.MaxInt}
	s.mu.Lock()
	s.labels = append(s.labels, label)
	s.ints = append(s.ints, n)
	s.mu.Unlock()
	return n
}

func (s *Surface) AddRadio(label, def string, choices []string, rows, cols int) func() string {
	return s.addString(label, def)
}

func (s *Surface) AddText(label, def string) func() string {
	return s.addString(label, def)
}

func (s *Surface) AddMessage(text string, color surface.Color) surface.Label {
	m := &Message{text: text, color: color}
	s.mu.Lock()
	s.messages = append(s.messages, m)
	s.mu.Unlock()
	return m
}

func (s *Surface) addString(label, def string) func() string {
	f := &Value[string]{Label: label, v: def}
	s.mu.Lock()
	s.labels = append(s.labels, label)
	s.strings = append(s.strings, f)
	s.mu.Unlock()
	return f.Get
}

// StringWidth counts runes.
func (s *Surface) StringWidth(str string) int {
	return utf8.RuneCountInString(str)
}

func (s *Surface) Width() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width
}

func (s *Surface) SetWidth(w int) {
	s.mu.Lock()
	s.width = w
	s.mu.Unlock()
}

// Labels returns the labels of every input field in the order they were added.
func (s *Surface) Labels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.labels...)
}

// Bool returns the i-th bool field, or nil.
func (s *Surface) Bool(i int) *Value[bool] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return at(s.bools, i)
}

// Choice returns the i-th choice, radio or text field, or nil.
func (s *Surface) Choice(i int) *Value[string] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return at(s.strings, i)
}

// Index returns the i-th index-valued choice field, or nil.
func (s *Surface) Index(i int) *Value[int] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return at(s.indices, i)
}

// Double returns the i-th floating point field, or nil.
func (s *Surface) Double(i int) *Number[float64] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return at(s.doubles, i)
}

// Int returns the i-th integer field, or nil.
func (s *Surface) Int(i int) *Number[int] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return at(s.ints, i)
}

// Message returns the i-th message field, or nil.
func (s *Surface) Message(i int) *Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return at(s.messages, i)
}

func at[T any](list []*T, i int) *T {
	if i < 0 || i >= len(list) {
		return nil
	}
	return list[i]
}
