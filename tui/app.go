package tui

import (
	keyhelp "github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dylan/dynparam/config"
	"github.com/dylan/dynparam/tui/form"
	"github.com/dylan/dynparam/tui/help"
	"github.com/dylan/dynparam/tui/shared"
)

// App hosts the dialog generations of a harvest. It always shows the form that was
// shown last.
type App struct {
	form     *form.Form
	showHelp bool
	helpView help.Model
	keys     keyhelp.Model

	width  int
	height int
}

func NewApp(cfg config.Config) App {
	shared.InitStyles(cfg.ResolvedTheme())
	keys := keyhelp.New()
	keys.Styles.ShortKey = shared.HelpKeyStyle
	keys.Styles.ShortDesc = shared.HelpDescStyle
	keys.Styles.ShortSeparator = shared.DimStyle
	return App{helpView: help.New(), keys: keys}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.helpView.SetSize(msg.Width, msg.Height)
		a.keys.Width = msg.Width
		return a, nil

	case form.ShowMsg:
		a.form = msg.Form
		return a, a.form.Init()

	case shared.CloseHelpMsg:
		a.showHelp = false
		return a, nil

	case shared.RefreshMsg:
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help toggle is global
	if key.Matches(msg, shared.Keys.Help) {
		a.showHelp = !a.showHelp
		return a, nil
	}

	// If help is shown, any key closes it
	if a.showHelp {
		return a, func() tea.Msg { return shared.CloseHelpMsg{} }
	}

	if a.form == nil || a.form.Ended() {
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		return a, nil
	}
	return a, a.form.Update(msg)
}

func (a App) View() string {
	if a.showHelp {
		return a.helpView.View()
	}

	var view string
	if a.form == nil || a.form.Ended() {
		view = shared.DimStyle.Render("Working...")
	} else {
		view = a.form.View() + "\n" + a.keys.View(shared.Keys)
	}

	if a.width == 0 || a.height == 0 {
		return view
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, view)
}
