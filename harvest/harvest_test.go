package harvest_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dylan/dynparam/harvest"
	"github.com/dylan/dynparam/harvest/harvesttest"
	"github.com/dylan/dynparam/param"
	"github.com/dylan/dynparam/prefs"
	"github.com/dylan/dynparam/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const timeout = 5 * time.Second

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recorder remembers the keys written through it, in order.
type recorder struct {
	prefs.Backend
	mu   sync.Mutex
	puts []string
}

func newRecorder() *recorder {
	return &recorder{Backend: prefs.NewMemory()}
}

func (r *recorder) Put(owner, key, value string) error {
	r.mu.Lock()
	r.puts = append(r.puts, key)
	r.mu.Unlock()
	return r.Backend.Put(owner, key, value)
}

func (r *recorder) keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.puts...)
}

type filter struct {
	name  string
	param param.Parameter
}

func (f *filter) Name() string           { return f.name }
func (f *filter) Param() param.Parameter { return f.param }

func newFilters() (*filter, *filter) {
	return &filter{name: "Blur", param: param.NewDouble(1, "radius")},
		&filter{name: "Threshold", param: param.NewInt(128, "level")}
}

func run(ctx context.Context, h *harvest.Harvester) <-chan error {
	errc := make(chan error, 1)
	go func() { errc <- h.Harvest(ctx) }()
	return errc
}

func wait(t *testing.T, errc <-chan error) error {
	t.Helper()
	select {
	case err := <-errc:
		return err
	case <-time.After(timeout):
		t.Fatal("Harvest did not return")
		return nil
	}
}

func TestAcceptSavesInOrder(t *testing.T) {
	rec := newRecorder()
	b := harvesttest.NewBuilder()
	count := param.NewInt(2, "count")
	ratio := param.NewDouble(0.5, "ratio")
	h := harvest.New("Options", []param.Parameter{count, ratio},
		harvest.WithBuilder(b), harvest.WithStore(prefs.New(rec), "test"))

	errc := run(context.Background(), h)
	d := b.Next(timeout)
	require.NotNil(t, d)
	assert.Equal(t, "Options", d.Title)
	assert.Equal(t, []string{"count", "ratio"}, d.Labels())

	d.Int(0).Set(5)
	assert.True(t, d.Change())
	assert.True(t, d.Accept())

	require.NoError(t, wait(t, errc))
	assert.False(t, h.Canceled())
	assert.Equal(t, 5, count.Value())
	assert.Equal(t, []string{"count", "ratio"}, rec.keys())
}

func TestCancelDoesNotSave(t *testing.T) {
	rec := newRecorder()
	b := harvesttest.NewBuilder()
	h := harvest.New("Options", []param.Parameter{param.NewInt(2, "count")},
		harvest.WithBuilder(b), harvest.WithStore(prefs.New(rec), "test"))

	errc := run(context.Background(), h)
	d := b.Next(timeout)
	require.NotNil(t, d)
	d.Cancel()

	assert.ErrorIs(t, wait(t, errc), harvest.ErrCanceled)
	assert.True(t, h.Canceled())
	assert.Empty(t, rec.keys())
}

func TestLoadsStoredValues(t *testing.T) {
	st := prefs.New(prefs.NewMemory())
	require.NoError(t, st.PutInt("test", "count", 7))

	b := harvesttest.NewBuilder()
	h := harvest.New("Options", []param.Parameter{param.NewInt(2, "count")},
		harvest.WithBuilder(b), harvest.WithStore(st, "test"))

	errc := run(context.Background(), h)
	d := b.Next(timeout)
	require.NotNil(t, d)
	v, ok := d.Int(0).Get()
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	d.Cancel()
	assert.ErrorIs(t, wait(t, errc), harvest.ErrCanceled)
}

func TestInvalidParameterAborts(t *testing.T) {
	b := harvesttest.NewBuilder()
	h := harvest.New("Pick", []param.Parameter{
		param.NewInt(1, "n"),
		param.NewSelect[string]("input_image", nil),
	}, harvest.WithBuilder(b))

	err := h.Harvest(context.Background())
	var invalid *harvest.InvalidError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "input_image", invalid.Label)
	assert.Equal(t, "At least one item must be passed to the parameter input image.", invalid.Reason)
	assert.ErrorIs(t, err, harvest.ErrCanceled)
	assert.True(t, h.Canceled())
	assert.Empty(t, b.Built())
}

func TestValidityReflectedOnDialog(t *testing.T) {
	b := harvesttest.NewBuilder()
	n := param.NewInt(1, "n")
	n.SetBounds(0, 3)
	name := param.NewText("name", "ok")
	name.Validate = func(v string) (string, string) {
		if len(v) > 4 {
			return "", "name is long."
		}
		return "", ""
	}
	h := harvest.New("Options", []param.Parameter{n, name}, harvest.WithBuilder(b))

	errc := run(context.Background(), h)
	d := b.Next(timeout)
	require.NotNil(t, d)
	status := d.Message(0)
	require.NotNil(t, status)
	assert.True(t, d.AcceptEnabled())

	d.Int(0).Set(9)
	assert.False(t, d.Change())
	assert.False(t, d.AcceptEnabled())
	assert.Equal(t, "n must be in the range [0 .. 3].", status.Text())
	assert.Equal(t, surface.ColorRed, status.Color())
	assert.False(t, d.Accept(), "accept is disabled while a field has an error")

	d.Int(0).Set(2)
	d.Choice(0).Set("rather long")
	assert.True(t, d.Change(), "warnings do not block acceptance")
	assert.True(t, d.AcceptEnabled())
	assert.Equal(t, "name is long.", status.Text())
	assert.Equal(t, surface.ColorAmber, status.Color())
	assert.Equal(t, d.StringWidth("name is long.")+harvest.DefaultStatusPadding, d.Width())

	d.Choice(0).Set("ok")
	assert.True(t, d.Change())
	assert.Empty(t, status.Text())

	require.True(t, d.Accept())
	require.NoError(t, wait(t, errc))
	assert.Equal(t, 2, n.Value())
}

func TestPluginSwitchRebuilds(t *testing.T) {
	b := harvesttest.NewBuilder()
	blur, threshold := newFilters()
	pl := param.NewPlugin("filter", blur, threshold)
	h := harvest.New("Filter", []param.Parameter{pl}, harvest.WithBuilder(b))

	errc := run(context.Background(), h)
	first := b.Next(timeout)
	require.NotNil(t, first)
	assert.Equal(t, []string{"filter", "radius"}, first.Labels())

	first.Choice(0).Set("Threshold")
	go first.Change()

	second := b.Next(timeout)
	require.NotNil(t, second)
	assert.NotSame(t, first, second)
	assert.Equal(t, []string{"filter", "level"}, second.Labels())

	first.Double(0).SetGarbage()
	assert.True(t, first.Change(), "stale generations always report valid")

	require.True(t, second.Accept())
	require.NoError(t, wait(t, errc))
	assert.Same(t, threshold, pl.Value())
	assert.Len(t, b.Built(), 2)
}

func TestRepeatedCountRebuilds(t *testing.T) {
	b := harvesttest.NewBuilder()
	st := prefs.New(prefs.NewMemory())
	r := param.NewRepeated("steps", 1, 5, func(i int) param.Parameter {
		return param.NewBool(fmt.Sprintf("enabled_%d", i+1), i%2 == 0)
	})
	h := harvest.New("Steps", []param.Parameter{r}, harvest.WithBuilder(b), harvest.WithStore(st, "test"))

	errc := run(context.Background(), h)
	first := b.Next(timeout)
	require.NotNil(t, first)
	assert.Equal(t, []string{param.CountLabel, "enabled_1"}, first.Labels())

	first.Int(0).Set(3)
	go first.Change()

	second := b.Next(timeout)
	require.NotNil(t, second)
	assert.Equal(t, []string{param.CountLabel, "enabled_1", "enabled_2", "enabled_3"}, second.Labels())

	require.True(t, second.Accept())
	require.NoError(t, wait(t, errc))

	for i, want := range []bool{true, false, true} {
		got, err := st.Bool("test", fmt.Sprintf("steps.enabled_%d", i+1), !want)
		require.NoError(t, err)
		assert.Equal(t, want, got, "each item persists under its own key")
	}
}

func TestForcedReconstructionStress(t *testing.T) {
	const n = 200

	b := harvesttest.NewBuilder()
	blur, threshold := newFilters()
	pl := param.NewPlugin("filter", blur, threshold)
	rec := newRecorder()
	h := harvest.New("Filter", []param.Parameter{pl},
		harvest.WithBuilder(b), harvest.WithStore(prefs.New(rec), "test"))

	errc := run(context.Background(), h)
	d := b.Next(timeout)
	require.NotNil(t, d)
	for i := range n {
		choice := "Threshold"
		if i%2 == 1 {
			choice = "Blur"
		}
		d.Choice(0).Set(choice)
		go d.Change()

		d = b.Next(timeout)
		require.NotNil(t, d, "generation %d was never shown", i+2)
	}

	// Neither the caller nor the goroutine showing the last generation accepts it.
	go d.Accept()

	require.NoError(t, wait(t, errc))
	assert.Len(t, b.Built(), n+1)
	assert.Same(t, blur, pl.Value())
	assert.NotEmpty(t, rec.keys())
}

func TestContextCancelReleasesCaller(t *testing.T) {
	rec := newRecorder()
	b := harvesttest.NewBuilder()
	blur, threshold := newFilters()
	h := harvest.New("Filter", []param.Parameter{param.NewPlugin("filter", blur, threshold)},
		harvest.WithBuilder(b), harvest.WithStore(prefs.New(rec), "test"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := run(ctx, h)

	first := b.Next(timeout)
	require.NotNil(t, first)
	first.Choice(0).Set("Threshold")
	go first.Change()
	require.NotNil(t, b.Next(timeout))

	cancel()
	err := wait(t, errc)
	assert.ErrorIs(t, err, harvest.ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, h.Canceled())
	assert.Empty(t, rec.keys())
}

func TestCanceledContextBuildsNothing(t *testing.T) {
	b := harvesttest.NewBuilder()
	h := harvest.New("Options", []param.Parameter{param.NewBool("on", true)}, harvest.WithBuilder(b))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, h.Harvest(ctx), harvest.ErrCanceled)
	assert.Empty(t, b.Built())
}

func TestHarvesterIsSingleUse(t *testing.T) {
	b := harvesttest.NewBuilder()
	h := harvest.New("Options", []param.Parameter{param.NewBool("on", true)}, harvest.WithBuilder(b))

	errc := run(context.Background(), h)
	d := b.Next(timeout)
	require.NotNil(t, d)
	require.True(t, d.Accept())
	require.NoError(t, wait(t, errc))

	assert.ErrorIs(t, h.Harvest(context.Background()), harvest.ErrReused)
}

func TestMissingBuilder(t *testing.T) {
	h := harvest.New("Options", nil)
	assert.ErrorIs(t, h.Harvest(context.Background()), harvest.ErrNoBuilder)
}

func TestDispositionString(t *testing.T) {
	assert.Equal(t, "accepted", harvest.Accepted.String())
	assert.Equal(t, "superseded", harvest.Superseded.String())
	assert.Equal(t, "Disposition(9)", harvest.Disposition(9).String())
}
