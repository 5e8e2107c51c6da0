package form

import (
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dylan/dynparam/harvest"
	"github.com/dylan/dynparam/surface"
	"github.com/dylan/dynparam/tui/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type listener struct {
	mu      sync.Mutex
	opened  int
	changed int
}

func (l *listener) DialogOpened(harvest.Dialog) {
	l.mu.Lock()
	l.opened++
	l.mu.Unlock()
}

func (l *listener) DialogChanged(harvest.Dialog) bool {
	l.mu.Lock()
	l.changed++
	l.mu.Unlock()
	return true
}

func (l *listener) counts() (int, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.opened, l.changed
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoolToggleNotifiesListener(t *testing.T) {
	l := &listener{}
	f := New("Options", l, Options{})
	get := f.AddBool("enabled", false)

	cmd := f.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, get())
	require.NotNil(t, cmd)

	assert.Equal(t, shared.RefreshMsg{}, cmd())
	_, changed := l.counts()
	assert.Equal(t, 1, changed)
}

func TestChoiceCycles(t *testing.T) {
	f := New("Options", &listener{}, Options{})
	get := f.AddChoice("mode", "slow", []string{"fast", "slow", "exact"})
	assert.Equal(t, "slow", get())

	changed, _ := f.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	assert.True(t, changed)
	assert.Equal(t, "exact", get())

	f.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "fast", get())

	f.handleKey(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "exact", get())
}

func TestChoiceIndexDefaultsToFirst(t *testing.T) {
	f := New("Options", &listener{}, Options{})
	get := f.AddChoiceIndex("image", "missing", []string{"a", "b"})
	assert.Equal(t, 0, get())

	f.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, get())
}

func TestRadioRendersEveryChoice(t *testing.T) {
	f := New("Options", &listener{}, Options{})
	get := f.AddRadio("shape", "square", []string{"circle", "square", "star"}, 1, 3)
	assert.Equal(t, "square", get())

	view := f.View()
	assert.Contains(t, view, "circle")
	assert.Contains(t, view, "(•) square")
	assert.Contains(t, view, "star")
}

func TestIntField(t *testing.T) {
	f := New("Options", &listener{}, Options{})
	n := f.AddInt("n", 3, "px")
	f.Init()

	v, ok := n.Get()
	require.True(t, ok)
	assert.Equal(t, 3, v)

	changed, _ := f.handleKey(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.True(t, changed)
	_, ok = n.Get()
	assert.False(t, ok, "an empty field is not a number")

	f.handleKey(runes("1"))
	f.handleKey(runes("2"))
	v, ok = n.Get()
	require.True(t, ok)
	assert.Equal(t, 12, v)

	n.SetBounds(0, 10)
	assert.False(t, n.InBounds(12))
	assert.True(t, n.InBounds(10))
	assert.Contains(t, f.View(), "[0 .. 10]")
	assert.Contains(t, f.View(), "px")
}

func TestDoubleField(t *testing.T) {
	f := New("Options", &listener{}, Options{})
	d := f.AddDouble("radius", 1.5, "", 2)
	f.Init()

	v, ok := d.Get()
	require.True(t, ok)
	assert.Equal(t, 1.5, v)

	f.handleKey(runes("x"))
	_, ok = d.Get()
	assert.False(t, ok)

	d.SetBounds(0, 2)
	assert.Contains(t, f.View(), "[0.00 .. 2.00]")
}

func TestDoubleFieldRejectsNonFinite(t *testing.T) {
	for _, text := range []string{"NaN", "Inf", "-inf"} {
		f := New("Options", &listener{}, Options{})
		d := f.AddDouble("ratio", 0, "", 2)
		f.Init()
		f.handleKey(tea.KeyMsg{Type: tea.KeyBackspace})
		f.handleKey(runes(text))

		_, ok := d.Get()
		assert.False(t, ok, text)
	}
}

func TestTextField(t *testing.T) {
	f := New("Options", &listener{}, Options{})
	get := f.AddText("name", "ab")
	f.Init()

	f.handleKey(runes("c"))
	assert.Equal(t, "abc", get())
}

func TestNavigationWraps(t *testing.T) {
	f := New("Options", &listener{}, Options{})
	f.AddBool("a", false)
	f.AddBool("b", false)

	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, f.cursor)
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, f.cursor)
	f.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, f.cursor)
	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 0, f.cursor)
}

func TestAcceptRespectsEnabledState(t *testing.T) {
	l := &listener{}
	f := New("Options", l, Options{})
	f.SetAcceptEnabled(false)

	f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, f.Ended())

	f.SetAcceptEnabled(true)
	f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, f.Ended())
	assert.Equal(t, harvest.Accepted, f.Show())

	opened, _ := l.counts()
	assert.Equal(t, 1, opened)
}

func TestCancelAndDispose(t *testing.T) {
	f := New("Options", &listener{}, Options{})
	f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	f.Dispose()
	assert.Equal(t, harvest.Canceled, f.Show(), "the first ending wins")

	g := New("Options", &listener{}, Options{})
	g.Dispose()
	g.Dispose()
	assert.Equal(t, harvest.Superseded, g.Show())

	get := g.AddBool("late", false)
	assert.Nil(t, g.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}))
	assert.False(t, get(), "ended forms ignore keys")
}

func TestShowSendsFormToHost(t *testing.T) {
	var got tea.Msg
	f := New("Options", &listener{}, Options{Send: func(m tea.Msg) { got = m }})
	f.Dispose()
	f.Show()
	assert.Equal(t, ShowMsg{Form: f}, got)
}

func TestClosedProgramCancels(t *testing.T) {
	closed := make(chan struct{})
	close(closed)
	f := New("Options", &listener{}, Options{Closed: closed})
	assert.Equal(t, harvest.Canceled, f.Show())
}

func TestStatusMessageAndWidth(t *testing.T) {
	f := New("Options", &listener{}, Options{Width: 40})
	assert.Equal(t, 40, f.Width())

	status := f.AddMessage("", surface.ColorRed)
	assert.NotContains(t, f.View(), "must be")

	status.SetText("n must be in the range [0 .. 3].")
	assert.Contains(t, f.View(), "n must be in the range [0 .. 3].")

	f.SetWidth(50)
	assert.Equal(t, 50, f.Width())
	assert.Equal(t, 3, f.StringWidth("abc"))
}
