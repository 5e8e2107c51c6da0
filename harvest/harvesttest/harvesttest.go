// Package harvesttest provides a scripted harvest.Builder. Every generation it builds
// records its fields like surfacetest.Surface and is driven by the test through
// Change, Accept and Cancel.
package harvesttest

import (
	"sync"
	"time"

	"github.com/dylan/dynparam/harvest"
	"github.com/dylan/dynparam/surface/surfacetest"
)

// Builder records every generation it builds.
type Builder struct {
	mu     sync.Mutex
	built  []*Dialog
	opened chan *Dialog
}

var _ harvest.Builder = (*Builder)(nil)

func NewBuilder() *Builder {
	return &Builder{opened: make(chan *Dialog, 1024)}
}

func (b *Builder) NewDialog(title string, l harvest.Listener) harvest.Dialog {
	d := &Dialog{
		Surface:  surfacetest.New(),
		Title:    title,
		builder:  b,
		listener: l,
		result:   make(chan harvest.Disposition, 1),
	}
	b.mu.Lock()
	b.built = append(b.built, d)
	b.mu.Unlock()
	return d
}

// Built returns every generation built so far, oldest first.
func (b *Builder) Built() []*Dialog {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Dialog(nil), b.built...)
}

// Next waits for the next generation to be shown. It returns nil after timeout.
func (b *Builder) Next(timeout time.Duration) *Dialog {
	select {
	case d := <-b.opened:
		return d
	case <-time.After(timeout):
		return nil
	}
}

// Dialog is one scripted generation.
type Dialog struct {
	*surfacetest.Surface
	Title string

	builder  *Builder
	listener harvest.Listener
	result   chan harvest.Disposition
	once     sync.Once

	mu            sync.Mutex
	acceptEnabled bool
}

var _ harvest.Dialog = (*Dialog)(nil)

func (d *Dialog) Show() harvest.Disposition {
	d.listener.DialogOpened(d)
	d.builder.opened <- d
	return <-d.result
}

func (d *Dialog) Dispose() { d.end(harvest.Superseded) }

func (d *Dialog) SetAcceptEnabled(enabled bool) {
	d.mu.Lock()
	d.acceptEnabled = enabled
	d.mu.Unlock()
}

func (d *Dialog) AcceptEnabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.acceptEnabled
}

// Change delivers one user edit. It blocks while a generation built in response
// is being shown, as an event-dispatch thread would.
func (d *Dialog) Change() bool {
	return d.listener.DialogChanged(d)
}

// Accept presses the accept control. It reports false, and does nothing, while
// the control is disabled.
func (d *Dialog) Accept() bool {
	if !d.AcceptEnabled() {
		return false
	}
	d.end(harvest.Accepted)
	return true
}

func (d *Dialog) Cancel() { d.end(harvest.Canceled) }

func (d *Dialog) end(disp harvest.Disposition) {
	d.once.Do(func() { d.result <- disp })
}
