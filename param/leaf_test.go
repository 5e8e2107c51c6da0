package param

import (
	"testing"

	"github.com/dylan/dynparam/prefs"
	"github.com/dylan/dynparam/surface/surfacetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBool(t *testing.T) {
	p := NewBool("enabled", true)
	s := surfacetest.New()
	p.AddToSurface(s)
	assert.True(t, s.Bool(0).Get())

	s.Bool(0).Set(false)
	p.ReadFromSurface()
	assert.False(t, p.Value())

	st := prefs.New(prefs.NewMemory())
	require.NoError(t, p.Save(st, "owner", "enabled"))
	q := NewBool("enabled", true)
	require.NoError(t, q.Load(st, "owner", "enabled"))
	assert.False(t, q.Value())
}

func TestChoiceDefaults(t *testing.T) {
	p := NewChoice("mode", []string{"fast", "slow"}, "")
	assert.Equal(t, "fast", p.Value())

	q := NewChoice("mode", []string{"fast", "slow"}, "slow")
	assert.Equal(t, "slow", q.Value())

	empty := NewChoice("mode", nil, "")
	assert.True(t, empty.Invalid())
	assert.Equal(t, "mode has nothing to choose from.", empty.CurrentError())
}

func TestChoiceReadFromSurface(t *testing.T) {
	p := NewChoice("mode", []string{"fast", "slow"}, "fast")
	s := surfacetest.New()
	p.AddToSurface(s)
	assert.Equal(t, "fast", s.Choice(0).Get())

	s.Choice(0).Set("slow")
	p.ReadFromSurface()
	assert.Equal(t, "slow", p.Value())
}

func TestChoiceLoadFallsBackToDefault(t *testing.T) {
	st := prefs.New(prefs.NewMemory())
	require.NoError(t, st.PutString("owner", "mode", "removed"))

	p := NewChoice("mode", []string{"fast", "slow"}, "slow")
	require.NoError(t, p.Load(st, "owner", "mode"))
	assert.Equal(t, "slow", p.Value())
	assert.Empty(t, p.CurrentError())

	r := NewRadio("shape", []string{"circle", "square"}, "square", 1, 2)
	require.NoError(t, st.PutString("owner", "shape", "triangle"))
	require.NoError(t, r.Load(st, "owner", "shape"))
	assert.Equal(t, "square", r.Value())
}

func TestChoiceRoundTrip(t *testing.T) {
	st := prefs.New(prefs.NewMemory())

	p := NewRadio("shape", []string{"circle", "square"}, "", 2, 1)
	s := surfacetest.New()
	p.AddToSurface(s)
	s.Choice(0).Set("square")
	p.ReadFromSurface()
	require.NoError(t, p.Save(st, "owner", "shape"))

	q := NewRadio("shape", []string{"circle", "square"}, "", 2, 1)
	require.NoError(t, q.Load(st, "owner", "shape"))
	assert.Equal(t, "square", q.Value())
}

func TestTextValidation(t *testing.T) {
	p := NewText("name", "")
	p.Validate = func(v string) (string, string) {
		switch {
		case v == "":
			return "name must not be empty.", ""
		case len(v) > 8:
			return "", "name is long."
		}
		return "", ""
	}

	s := surfacetest.New()
	p.AddToSurface(s)
	assert.Equal(t, "name must not be empty.", p.CurrentError())

	s.Choice(0).Set("a rather long name")
	p.ReadFromSurface()
	assert.Empty(t, p.CurrentError())
	assert.Equal(t, "name is long.", p.CurrentWarning())

	s.Choice(0).Set("ok")
	p.ReadFromSurface()
	assert.Empty(t, p.CurrentWarning())
	assert.Equal(t, "ok", p.Value())
}

func TestSelect(t *testing.T) {
	opts := []Option[int]{{Name: "1: first", Value: 10}, {Name: "2: second", Value: 20}}
	p := NewSelect("image", opts)
	assert.False(t, p.Invalid())
	assert.Equal(t, 10, p.Value())

	s := surfacetest.New()
	p.AddToSurface(s)
	assert.Equal(t, 0, s.Index(0).Get())

	s.Index(0).Set(1)
	p.ReadFromSurface()
	assert.Equal(t, 20, p.Value())
	assert.Equal(t, "2: second", p.SelectedName())

	s.Index(0).Set(7)
	p.ReadFromSurface()
	assert.Equal(t, 20, p.Value(), "out of range indices are ignored")

	st := prefs.New(prefs.NewMemory())
	require.NoError(t, p.Save(st, "owner", "image"))
	q := NewSelect("image", opts)
	require.NoError(t, q.Load(st, "owner", "image"))
	assert.Equal(t, 20, q.Value())
}

func TestSelectWithoutItemsIsInvalid(t *testing.T) {
	p := NewSelect[string]("input_image", nil)
	assert.True(t, p.Invalid())
	assert.Equal(t, "At least one item must be passed to the parameter input image.", p.CurrentError())
	assert.Equal(t, "", p.Value())

	s := surfacetest.New()
	p.AddToSurface(s)
	assert.Empty(t, s.Labels())
	assert.NoError(t, p.Save(nil, "owner", "k"))
	assert.NoError(t, p.Load(nil, "owner", "k"))
}
