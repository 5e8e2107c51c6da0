package param

// Base holds the state every parameter shares. Embed it and implement the dialog and
// persistence methods. The zero value is visible, valid and unlabeled.
type Base struct {
	label string
	env   Env

	err     string
	warn    string
	invalid bool

	// Stored inverted so the zero value is visible.
	hidden        bool
	pendingHidden bool
}

func NewBase(label string) Base {
	return Base{label: label}
}

func (b *Base) Label() string { return b.label }

func (b *Base) Init(env Env) { b.env = env }

// Env returns the context given to Init.
func (b *Base) Env() Env { return b.env }

func (b *Base) Visible() bool { return !b.hidden }

func (b *Base) VisibilityChanged() bool { return b.hidden != b.pendingHidden }

func (b *Base) MarkPendingVisibility(visible bool) { b.pendingHidden = !visible }

func (b *Base) ApplyPendingVisibility() { b.hidden = b.pendingHidden }

func (b *Base) NeedsRebuild() bool { return false }

func (b *Base) Width() int { return 0 }

func (b *Base) CurrentError() string { return b.err }

func (b *Base) CurrentWarning() string { return b.warn }

func (b *Base) Invalid() bool { return b.invalid }

// SetError sets or, with "", clears the error.
func (b *Base) SetError(msg string) { b.err = msg }

// SetWarning sets or, with "", clears the warning.
func (b *Base) SetWarning(msg string) { b.warn = msg }

// MarkInvalid flags a construction failure; reason becomes the error.
func (b *Base) MarkInvalid(reason string) {
	b.invalid = true
	b.err = reason
}
