package shared

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dylan/dynparam/surface"
)

// FeedbackLevel controls how a status message is styled.
type FeedbackLevel int

const (
	FeedbackInfo    FeedbackLevel = iota
	FeedbackWarning               // amber, acceptance still allowed
	FeedbackError                 // red, acceptance blocked
)

// LevelFor maps a surface message color to a feedback level.
func LevelFor(c surface.Color) FeedbackLevel {
	switch c {
	case surface.ColorRed:
		return FeedbackError
	case surface.ColorAmber:
		return FeedbackWarning
	default:
		return FeedbackInfo
	}
}

// Style returns the style messages of this level are rendered with.
func (l FeedbackLevel) Style() lipgloss.Style {
	switch l {
	case FeedbackError:
		return FeedbackErrorStyle
	case FeedbackWarning:
		return FeedbackWarningStyle
	default:
		return FeedbackInfoStyle
	}
}
