// Package param implements validated, persistable, dialog-bindable input parameters.
//
// A Parameter goes through three kinds of traffic: dialog traffic (AddToSurface,
// ReadFromSurface), persistence traffic (Save, Load) and the two-phase visibility
// protocol (MarkPendingVisibility, ApplyPendingVisibility). Errors and warnings are
// state, never panics: a non-empty CurrentError blocks acceptance of the dialog,
// a warning does not.
package param

import (
	"strings"

	"github.com/dylan/dynparam/prefs"
	"github.com/dylan/dynparam/surface"
	"go.uber.org/zap"
)

// Env is the ambient context handed to a parameter's Init hook.
type Env struct {
	Store  prefs.Store
	Owner  string
	Logger *zap.Logger
}

func (e Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

type Parameter interface {
	Label() string

	// Init runs once, after construction and before any other call. Composites
	// add their children here, never in their constructor.
	Init(env Env)

	AddToSurface(s surface.Surface)
	ReadFromSurface()

	Save(st prefs.Store, owner, key string) error
	Load(st prefs.Store, owner, key string) error

	Visible() bool
	VisibilityChanged() bool
	MarkPendingVisibility(visible bool)
	ApplyPendingVisibility()

	// NeedsRebuild reports a change the current surface cannot show by updating
	// widget contents, such as a different set of fields.
	NeedsRebuild() bool
	Width() int

	CurrentError() string
	CurrentWarning() string
	// Invalid reports that construction failed and the parameter cannot be shown.
	Invalid() bool
}

// Valued is a Parameter with a typed value.
type Valued[T any] interface {
	Parameter
	Value() T
}

// DisplayLabel is the form of a label used in captions and messages.
func DisplayLabel(label string) string {
	return strings.ReplaceAll(label, "_", " ")
}
