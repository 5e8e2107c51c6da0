// Package form renders one dialog generation as a bubbletea form. A Form is both the
// surface parameters register their fields on and the harvest.Dialog the harvester
// shows; the host program displays whichever Form was shown last.
package form

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dylan/dynparam/harvest"
	"github.com/dylan/dynparam/surface"
	"github.com/dylan/dynparam/tui/shared"
)

// ShowMsg tells the host program to display Form.
type ShowMsg struct {
	Form *Form
}

type Options struct {
	// Send delivers messages to the host program. It may block until the program
	// reads them and must return once the program has exited.
	Send func(tea.Msg)

	// Closed is closed when the host program exits. Show then reports Canceled.
	Closed <-chan struct{}

	Width int
}

// Form is one generation. Field values are guarded by a mutex because the harvester
// reads them from outside the event loop.
type Form struct {
	title    string
	listener harvest.Listener
	send     func(tea.Msg)
	closed   <-chan struct{}
	done     chan struct{}

	mu            sync.Mutex
	fields        []field
	messages      []*message
	cursor        int
	width         int
	acceptEnabled bool
	ended         bool
	disposition   harvest.Disposition
}

var (
	_ harvest.Dialog  = (*Form)(nil)
	_ surface.Surface = (*Form)(nil)
)

func New(title string, l harvest.Listener, opts Options) *Form {
	return &Form{
		title:         title,
		listener:      l,
		send:          opts.Send,
		closed:        opts.Closed,
		done:          make(chan struct{}),
		width:         opts.Width,
		acceptEnabled: true,
	}
}

func (f *Form) Title() string { return f.title }

// Show hands the form to the host program and blocks until it ends.
func (f *Form) Show() harvest.Disposition {
	f.listener.DialogOpened(f)
	if f.send != nil {
		f.send(ShowMsg{Form: f})
	}
	select {
	case <-f.done:
	case <-f.closed:
		f.end(harvest.Canceled)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disposition
}

func (f *Form) Dispose() { f.end(harvest.Superseded) }

// Ended reports whether the form was accepted, canceled or disposed.
func (f *Form) Ended() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ended
}

func (f *Form) end(d harvest.Disposition) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.endLocked(d)
}

func (f *Form) endLocked(d harvest.Disposition) {
	if f.ended {
		return
	}
	f.ended = true
	f.disposition = d
	close(f.done)
}

func (f *Form) SetAcceptEnabled(enabled bool) {
	f.mu.Lock()
	f.acceptEnabled = enabled
	f.mu.Unlock()
}

func (f *Form) AcceptEnabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.acceptEnabled
}

// Init focuses the first field.
func (f *Form) Init() tea.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.fields) == 0 {
		return nil
	}
	return f.fields[f.cursor].focus()
}

// Update handles a key and, when a field value changed, returns a command that
// reports the change to the listener. The listener may rebuild the dialog and
// block while the next generation is shown, so it never runs on the event loop.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	changed, cmd := f.handleKey(km)
	if !changed {
		return cmd
	}
	return tea.Batch(cmd, f.notify())
}

func (f *Form) notify() tea.Cmd {
	return func() tea.Msg {
		f.listener.DialogChanged(f)
		return shared.RefreshMsg{}
	}
}

func (f *Form) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ended {
		return false, nil
	}

	switch {
	case key.Matches(msg, shared.Keys.Cancel):
		f.endLocked(harvest.Canceled)
		return false, nil
	case key.Matches(msg, shared.Keys.Accept):
		if f.acceptEnabled {
			f.endLocked(harvest.Accepted)
		}
		return false, nil
	case key.Matches(msg, shared.Keys.Next):
		return false, f.moveLocked(1)
	case key.Matches(msg, shared.Keys.Prev):
		return false, f.moveLocked(-1)
	}

	if len(f.fields) == 0 {
		return false, nil
	}
	return f.fields[f.cursor].update(msg)
}

func (f *Form) moveLocked(delta int) tea.Cmd {
	n := len(f.fields)
	if n == 0 {
		return nil
	}
	f.fields[f.cursor].blur()
	f.cursor = (f.cursor + delta + n) % n
	return f.fields[f.cursor].focus()
}

func (f *Form) View() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var b strings.Builder
	b.WriteString(shared.TitleStyle.Render(f.title))
	b.WriteString("\n\n")

	for i, fld := range f.fields {
		prefix := "  "
		if i == f.cursor {
			prefix = shared.CursorStyle.Render("> ")
		}
		b.WriteString(prefix + fld.view(i == f.cursor) + "\n")
	}

	for _, m := range f.messages {
		if m.text != "" {
			b.WriteString("\n" + m.view() + "\n")
		}
	}

	accept := shared.ButtonDisabledStyle.Render("OK")
	if f.acceptEnabled {
		accept = shared.ButtonStyle.Render("OK")
	}
	b.WriteString("\n" + accept + "  " + shared.ButtonStyle.Render("Cancel"))

	style := shared.DialogStyle
	if f.width > 0 {
		style = style.Width(f.width)
	}
	return style.Render(b.String())
}

func (f *Form) add(fld field) {
	f.mu.Lock()
	f.fields = append(f.fields, fld)
	f.mu.Unlock()
}

func (f *Form) AddBool(label string, def bool) func() bool {
	fld := &boolField{name: label, value: def}
	f.add(fld)
	return func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return fld.value
	}
}

func (f *Form) AddChoice(label, def string, choices []string) func() string {
	fld := newChoiceField(label, def, choices)
	f.add(fld)
	return f.choiceValue(fld)
}

func (f *Form) AddChoiceIndex(label, def string, choices []string) func() int {
	fld := newChoiceField(label, def, choices)
	f.add(fld)
	return func() int {
		f.mu.Lock()
		defer f.mu.Unlock()
		return fld.index
	}
}

func (f *Form) AddRadio(label, def string, choices []string, rows, cols int) func() string {
	fld := newChoiceField(label, def, choices)
	fld.radio, fld.rows, fld.cols = true, rows, cols
	f.add(fld)
	return f.choiceValue(fld)
}

func (f *Form) choiceValue(fld *choiceField) func() string {
	return func() string {
		f.mu.Lock()
		defer f.mu.Unlock()
		return fld.value()
	}
}

func (f *Form) AddText(label, def string) func() string {
	fld := newInputField(label, def, "")
	f.add(fld)
	return func() string {
		f.mu.Lock()
		defer f.mu.Unlock()
		return fld.text()
	}
}

func (f *Form) AddDouble(label string, def float64, units string, decimals int) surface.NumberField[float64] {
	fld := &numberField[float64]{
		inputField: newInputField(label, strconv.FormatFloat(def, 'f', -1, 64), units),
		mu:         &f.mu,
		parse: func(s string) (float64, error) {
			v, err := strconv.ParseFloat(s, 64)
			if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
				return 0, strconv.ErrSyntax
			}
			return v, err
		},
		min:      -math.MaxFloat64,
		max:      math.MaxFloat64,
		lowest:   -math.MaxFloat64,
		highest:  math.MaxFloat64,
		decimals: decimals,
	}
	f.add(fld)
	return fld
}

func (f *Form) AddInt(label string, def int, units string) surface.NumberField[int] {
	fld := &numberField[int]{
		inputField: newInputField(label, strconv.Itoa(def), units),
		mu:         &f.mu,
		parse:      strconv.Atoi,
		min:        math.MinInt,
		max:        math.MaxInt,
		lowest:     math.MinInt,
		highest:    math.MaxInt,
	}
	f.add(fld)
	return fld
}

func (f *Form) AddMessage(text string, color surface.Color) surface.Label {
	m := &message{mu: &f.mu, text: text, color: color}
	f.mu.Lock()
	f.messages = append(f.messages, m)
	f.mu.Unlock()
	return m
}

func (f *Form) StringWidth(s string) int {
	return lipgloss.Width(s)
}

func (f *Form) Width() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width
}

func (f *Form) SetWidth(w int) {
	f.mu.Lock()
	f.width = w
	f.mu.Unlock()
}
