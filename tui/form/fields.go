package form

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dylan/dynparam/surface"
	"github.com/dylan/dynparam/tui/shared"
)

// field is one focusable row. All methods run with the form's mutex held.
type field interface {
	label() string
	update(msg tea.KeyMsg) (changed bool, cmd tea.Cmd)
	focus() tea.Cmd
	blur()
	view(focused bool) string
}

func renderLabel(label string, focused bool) string {
	if focused {
		return shared.FocusedLabelStyle.Render(label)
	}
	return shared.LabelStyle.Render(label)
}

type boolField struct {
	name  string
	value bool
}

func (f *boolField) label() string { return f.name }

func (f *boolField) update(msg tea.KeyMsg) (bool, tea.Cmd) {
	if key.Matches(msg, shared.Keys.Toggle) {
		f.value = !f.value
		return true, nil
	}
	return false, nil
}

func (f *boolField) focus() tea.Cmd { return nil }
func (f *boolField) blur()          {}

func (f *boolField) view(focused bool) string {
	box := "[ ]"
	if f.value {
		box = "[x]"
	}
	return shared.ValueStyle.Render(box) + " " + renderLabel(f.name, focused)
}

// choiceField backs choice, index-choice and radio fields.
type choiceField struct {
	name       string
	choices    []string
	index      int
	rows, cols int
	radio      bool
}

func newChoiceField(label, def string, choices []string) *choiceField {
	f := &choiceField{name: label, choices: append([]string(nil), choices...), index: -1}
	for i, c := range choices {
		if c == def {
			f.index = i
			break
		}
	}
	if f.index < 0 && len(choices) > 0 {
		f.index = 0
	}
	return f
}

func (f *choiceField) label() string { return f.name }

func (f *choiceField) value() string {
	if f.index < 0 || f.index >= len(f.choices) {
		return ""
	}
	return f.choices[f.index]
}

func (f *choiceField) update(msg tea.KeyMsg) (bool, tea.Cmd) {
	n := len(f.choices)
	if n < 2 {
		return false, nil
	}
	switch {
	case key.Matches(msg, shared.Keys.Right):
		f.index = (f.index + 1) % n
		return true, nil
	case key.Matches(msg, shared.Keys.Left):
		f.index = (f.index - 1 + n) % n
		return true, nil
	}
	return false, nil
}

func (f *choiceField) focus() tea.Cmd { return nil }
func (f *choiceField) blur()          {}

func (f *choiceField) view(focused bool) string {
	if !f.radio {
		return renderLabel(f.name, focused) + "  " + shared.ValueStyle.Render("‹ "+f.value()+" ›")
	}

	cols := max(f.cols, 1)
	var rows []string
	var row []string
	for i, c := range f.choices {
		item := shared.ItemStyle.Render("( ) " + c)
		if i == f.index {
			item = shared.SelectedItemStyle.Render("(•) " + c)
		}
		row = append(row, item)
		if len(row) == cols {
			rows = append(rows, strings.Join(row, "  "))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, "  "))
	}
	return renderLabel(f.name, focused) + "\n    " + strings.Join(rows, "\n    ")
}

type inputField struct {
	name  string
	units string
	input textinput.Model
}

func newInputField(label, def, units string) *inputField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = 24
	ti.SetValue(def)
	return &inputField{name: label, units: units, input: ti}
}

func (f *inputField) label() string { return f.name }

func (f *inputField) text() string { return f.input.Value() }

func (f *inputField) update(msg tea.KeyMsg) (bool, tea.Cmd) {
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f.input.Value() != before, cmd
}

func (f *inputField) focus() tea.Cmd { return f.input.Focus() }
func (f *inputField) blur()          { f.input.Blur() }

func (f *inputField) view(focused bool) string {
	s := renderLabel(f.name, focused) + "  " + f.input.View()
	if f.units != "" {
		s += " " + shared.UnitsStyle.Render(f.units)
	}
	return s
}

// numberField is a text input whose content is parsed as T. Its exported methods
// implement surface.NumberField and are called from outside the event loop.
type numberField[T surface.Number] struct {
	*inputField
	mu       *sync.Mutex
	parse    func(string) (T, error)
	min, max T
	lowest   T
	highest  T
	decimals int
}

var (
	_ surface.NumberField[int]     = (*numberField[int])(nil)
	_ surface.NumberField[float64] = (*numberField[float64])(nil)
)

func (f *numberField[T]) get() (T, bool) {
	v, err := f.parse(strings.TrimSpace(f.text()))
	if err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

func (f *numberField[T]) Get() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.get()
}

func (f *numberField[T]) InBounds(v T) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return v >= f.min && v <= f.max
}

func (f *numberField[T]) SetBounds(min, max T) {
	f.mu.Lock()
	f.min, f.max = min, max
	f.mu.Unlock()
}

func (f *numberField[T]) bounds() string {
	if f.min == f.lowest && f.max == f.highest {
		return ""
	}
	format := func(v T) string {
		if f.decimals > 0 {
			return fmt.Sprintf("%.*f", f.decimals, float64(v))
		}
		return fmt.Sprint(v)
	}
	switch {
	case f.min == f.lowest:
		return "≤ " + format(f.max)
	case f.max == f.highest:
		return "≥ " + format(f.min)
	}
	return "[" + format(f.min) + " .. " + format(f.max) + "]"
}

func (f *numberField[T]) view(focused bool) string {
	s := f.inputField.view(focused)
	v, ok := f.get()
	if !ok || v < f.min || v > f.max {
		s += " " + shared.InvalidValueStyle.Render("!")
	}
	if b := f.bounds(); b != "" {
		s += " " + shared.UnitsStyle.Render(b)
	}
	return s
}

// message is a status line. Its methods are called from outside the event loop.
type message struct {
	mu    *sync.Mutex
	text  string
	color surface.Color
}

var _ surface.Label = (*message)(nil)

func (m *message) SetText(text string) {
	m.mu.Lock()
	m.text = text
	m.mu.Unlock()
}

func (m *message) SetColor(c surface.Color) {
	m.mu.Lock()
	m.color = c
	m.mu.Unlock()
}

func (m *message) view() string {
	return shared.LevelFor(m.color).Style().Render(m.text)
}
