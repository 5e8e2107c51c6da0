package shared

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dylan/dynparam/config"
)

var (
	// Dialog frame
	DialogStyle lipgloss.Style
	TitleStyle  lipgloss.Style

	// Fields
	LabelStyle        lipgloss.Style
	FocusedLabelStyle lipgloss.Style
	ValueStyle        lipgloss.Style
	UnitsStyle        lipgloss.Style
	InvalidValueStyle lipgloss.Style
	CursorStyle       lipgloss.Style

	// Choice and radio items
	SelectedItemStyle lipgloss.Style
	ItemStyle         lipgloss.Style

	// Buttons
	ButtonStyle         lipgloss.Style
	ButtonDisabledStyle lipgloss.Style

	// Help styles
	HelpKeyStyle     lipgloss.Style
	HelpDescStyle    lipgloss.Style
	HelpOverlayStyle lipgloss.Style

	// Feedback
	FeedbackInfoStyle    lipgloss.Style
	FeedbackWarningStyle lipgloss.Style
	FeedbackErrorStyle   lipgloss.Style

	DimStyle lipgloss.Style
)

// InitStyles configures all styles from a resolved theme.
func InitStyles(theme config.ThemeConfig) {
	DialogStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Muted)).
		Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent))

	LabelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Dim))

	FocusedLabelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.FG)).
		Bold(true)

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.FG))

	UnitsStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Muted))

	InvalidValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Error))

	CursorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Accent))

	SelectedItemStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Accent)).
		Bold(true)

	ItemStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Dim))

	ButtonStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.FG)).
		Background(lipgloss.Color(theme.CursorBG)).
		Padding(0, 1)

	ButtonDisabledStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.DisabledFG)).
		Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Accent))

	HelpDescStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Dim))

	HelpOverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Muted)).
		Padding(1, 2)

	FeedbackInfoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Success))

	FeedbackWarningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Warning))

	FeedbackErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Error))

	DimStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Muted))
}

func init() {
	// Initialize with defaults so styles work even without explicit InitStyles call
	InitStyles(config.DefaultTheme())
}
