package harvest

import (
	"github.com/dylan/dynparam/prefs"
	"go.uber.org/zap"
)

// DefaultStatusPadding is the room left around the status message when resizing.
const DefaultStatusPadding = 64

// Option configures a Harvester.
type Option func(*Harvester)

// WithBuilder sets the factory for dialog generations. Required.
func WithBuilder(b Builder) Option {
	return func(h *Harvester) { h.builder = b }
}

// WithStore loads parameters from st before the first generation and saves them
// after acceptance, under owner.
func WithStore(st prefs.Store, owner string) Option {
	return func(h *Harvester) {
		h.store = st
		h.owner = owner
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(h *Harvester) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithStatusPadding overrides DefaultStatusPadding.
func WithStatusPadding(n int) Option {
	return func(h *Harvester) { h.padding = n }
}
