// Package harvest runs one interactive collection of parameter values. The dialog is
// rebuilt as a new generation whenever the set of visible fields changes, possibly on
// a different goroutine than the caller's, and Harvest returns once a generation that
// is still current is accepted or canceled.
package harvest

import (
	"context"
	"fmt"
	"sync"

	"github.com/dylan/dynparam/param"
	"github.com/dylan/dynparam/prefs"
	"github.com/dylan/dynparam/surface"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Disposition is how a generation ended.
type Disposition int

const (
	Accepted Disposition = iota
	Canceled
	Superseded
)

func (d Disposition) String() string {
	switch d {
	case Accepted:
		return "accepted"
	case Canceled:
		return "canceled"
	case Superseded:
		return "superseded"
	}
	return fmt.Sprintf("Disposition(%d)", int(d))
}

// Dialog is one generation of the dialog.
type Dialog interface {
	surface.Surface

	// Show presents the generation and blocks until it is accepted, canceled or
	// disposed. It calls Listener.DialogOpened before waiting.
	Show() Disposition

	// Dispose makes Show return Superseded. Calling it more than once, or after
	// the generation ended, has no effect. It must not block.
	Dispose()

	SetAcceptEnabled(enabled bool)
}

// Builder creates dialog generations that report to l.
type Builder interface {
	NewDialog(title string, l Listener) Dialog
}

// Listener receives the events of every generation.
type Listener interface {
	DialogOpened(d Dialog)

	// DialogChanged handles one user edit and returns whether the dialog may be accepted.
	DialogChanged(d Dialog) bool
}

// Harvester drives a single collection session. It is not reusable.
type Harvester struct {
	title   string
	params  []param.Parameter
	builder Builder
	store   prefs.Store
	owner   string
	logger  *zap.Logger
	padding int

	mu         sync.Mutex
	started    bool
	current    Dialog
	status     surface.Label
	baseWidth  int
	generation int
	finished   bool
	canceled   bool
	cause      error
	done       chan struct{}
}

// New initializes every parameter with the configured store, owner and logger.
func New(title string, params []param.Parameter, opts ...Option) *Harvester {
	h := &Harvester{
		title:   title,
		params:  append([]param.Parameter(nil), params...),
		logger:  zap.NewNop(),
		padding: DefaultStatusPadding,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With(zap.String("session", uuid.NewString()), zap.String("dialog", title))

	env := param.Env{Store: h.store, Owner: h.owner, Logger: h.logger}
	for _, p := range h.params {
		p.Init(env)
	}
	return h
}

// Harvest shows the dialog and blocks until the session ends. It returns nil when
// the user accepted, ErrCanceled (possibly wrapping the context's cause) when the
// session was canceled, and an *InvalidError when a parameter could not be set up.
// Accepted values are saved to the store before Harvest returns.
func (h *Harvester) Harvest(ctx context.Context) error {
	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		return ErrReused
	}
	h.started = true
	h.mu.Unlock()

	if h.builder == nil {
		return ErrNoBuilder
	}
	for _, p := range h.params {
		if p.Invalid() {
			h.logger.Warn("aborting harvest, invalid parameter",
				zap.String("param", p.Label()), zap.String("reason", p.CurrentError()))
			h.markCanceled(nil)
			return &InvalidError{Label: p.Label(), Reason: p.CurrentError()}
		}
	}
	if err := ctx.Err(); err != nil {
		h.markCanceled(context.Cause(ctx))
		return fmt.Errorf("%w: %w", ErrCanceled, context.Cause(ctx))
	}

	h.load()

	stop := context.AfterFunc(ctx, func() { h.abort(context.Cause(ctx)) })
	defer stop()

	h.mu.Lock()
	first := h.buildLocked()
	h.mu.Unlock()
	h.present(first)

	<-h.done

	h.mu.Lock()
	canceled, cause := h.canceled, h.cause
	h.mu.Unlock()

	if canceled {
		h.logger.Info("harvest canceled")
		if cause != nil {
			return fmt.Errorf("%w: %w", ErrCanceled, cause)
		}
		return ErrCanceled
	}
	h.save()
	h.logger.Info("harvest accepted")
	return nil
}

// Canceled reports whether the session ended without acceptance.
func (h *Harvester) Canceled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.canceled
}

func (h *Harvester) load() {
	for _, p := range h.params {
		if h.store != nil {
			if err := p.Load(h.store, h.owner, p.Label()); err != nil {
				h.logger.Warn("loading parameter", zap.String("param", p.Label()), zap.Error(err))
			}
		}
		p.ApplyPendingVisibility()
	}
}

func (h *Harvester) save() {
	if h.store == nil {
		return
	}
	for _, p := range h.params {
		if err := p.Save(h.store, h.owner, p.Label()); err != nil {
			h.logger.Warn("saving parameter", zap.String("param", p.Label()), zap.Error(err))
		}
	}
}

// buildLocked creates and fills the next generation. It returns nil once the
// session is finished.
func (h *Harvester) buildLocked() Dialog {
	if h.finished {
		return nil
	}
	h.generation++
	d := h.builder.NewDialog(h.title, h)
	for _, p := range h.params {
		if p.Visible() {
			p.AddToSurface(d)
		}
	}
	h.status = d.AddMessage("", surface.ColorRed)
	h.current = d

	msg, _ := h.firstError()
	d.SetAcceptEnabled(msg == "")
	h.logger.Debug("built dialog generation", zap.Int("generation", h.generation))
	return d
}

// present shows d on the calling goroutine and records a terminal outcome.
func (h *Harvester) present(d Dialog) {
	if d == nil {
		return
	}
	disp := d.Show()

	h.mu.Lock()
	defer h.mu.Unlock()
	if disp == Superseded || d != h.current || h.finished {
		return
	}
	h.finished = true
	h.canceled = disp == Canceled
	close(h.done)
	h.logger.Debug("generation ended session",
		zap.Int("generation", h.generation), zap.Stringer("disposition", disp))
}

func (h *Harvester) abort(cause error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.finished {
		return
	}
	h.finished = true
	h.canceled = true
	h.cause = cause
	close(h.done)
	if h.current != nil {
		h.current.Dispose()
	}
	h.logger.Debug("harvest aborted", zap.Error(cause))
}

func (h *Harvester) markCanceled(cause error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.finished = true
	h.canceled = true
	h.cause = cause
	close(h.done)
}

func (h *Harvester) DialogOpened(d Dialog) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if d != h.current || h.finished {
		return
	}
	h.baseWidth = d.Width()
	h.checkLocked(d)
}

func (h *Harvester) DialogChanged(d Dialog) bool {
	h.mu.Lock()
	if d != h.current || h.finished {
		h.mu.Unlock()
		h.logger.Debug("ignoring event from stale generation")
		return true
	}

	for _, p := range h.params {
		if p.Visible() {
			p.ReadFromSurface()
		}
	}
	rebuild := false
	for _, p := range h.params {
		if p.VisibilityChanged() {
			p.ApplyPendingVisibility()
			rebuild = true
		}
		if p.NeedsRebuild() {
			rebuild = true
		}
	}
	if !rebuild {
		ok := h.checkLocked(d)
		h.mu.Unlock()
		return ok
	}

	d.Dispose()
	h.logger.Debug("rebuilding dialog", zap.Int("superseded", h.generation))
	next := h.buildLocked()
	h.mu.Unlock()

	h.present(next)
	return true
}

func (h *Harvester) firstError() (string, string) {
	var warn string
	for _, p := range h.params {
		if !p.Visible() {
			continue
		}
		if e := p.CurrentError(); e != "" {
			return e, ""
		}
		if w := p.CurrentWarning(); w != "" && warn == "" {
			warn = w
		}
	}
	return "", warn
}

// checkLocked reflects the tree's validity on d and returns whether d may be accepted.
func (h *Harvester) checkLocked(d Dialog) bool {
	errMsg, warn := h.firstError()
	msg, color := errMsg, surface.ColorRed
	if msg == "" {
		msg, color = warn, surface.ColorAmber
	}
	if h.status != nil {
		h.status.SetText(msg)
		if msg != "" {
			h.status.SetColor(color)
		}
	}
	ok := errMsg == ""
	d.SetAcceptEnabled(ok)

	width := h.baseWidth
	if msg != "" {
		width = max(width, d.StringWidth(msg)+h.padding)
	}
	for _, p := range h.params {
		if p.Visible() {
			width = max(width, p.Width())
		}
	}
	if width != d.Width() {
		d.SetWidth(width)
	}
	return ok
}
