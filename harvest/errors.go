package harvest

import (
	"errors"
	"fmt"
)

var (
	// ErrCanceled is returned when the user cancels the dialog or the context ends first.
	ErrCanceled = errors.New("harvest: canceled")

	// ErrReused is returned by a second Harvest call on the same Harvester.
	ErrReused = errors.New("harvest: harvester already used")

	// ErrNoBuilder is returned when the Harvester was created without WithBuilder.
	ErrNoBuilder = errors.New("harvest: no dialog builder")
)

// InvalidError reports a parameter that could not be given a usable initial value.
// The session is aborted before any dialog is built. It matches ErrCanceled.
type InvalidError struct {
	Label  string
	Reason string
}

func (e *InvalidError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("harvest: parameter %q is invalid", e.Label)
	}
	return "harvest: " + e.Reason
}

func (e *InvalidError) Is(target error) bool {
	return target == ErrCanceled
}
