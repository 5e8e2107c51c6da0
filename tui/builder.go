package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dylan/dynparam/config"
	"github.com/dylan/dynparam/harvest"
	"github.com/dylan/dynparam/tui/form"
)

// Builder runs one bubbletea program for a whole harvest session and shows each
// dialog generation in it.
type Builder struct {
	program *tea.Program
	width   int
	closed  chan struct{}
	err     error
}

var _ harvest.Builder = (*Builder)(nil)

// Start runs the program in the background. Call Stop once Harvest returned.
func Start(cfg config.Config, opts ...tea.ProgramOption) *Builder {
	b := &Builder{
		program: tea.NewProgram(NewApp(cfg), opts...),
		width:   cfg.ResolvedDialog().BaseWidth,
		closed:  make(chan struct{}),
	}
	go func() {
		_, err := b.program.Run()
		b.err = err
		close(b.closed)
	}()
	return b
}

func (b *Builder) NewDialog(title string, l harvest.Listener) harvest.Dialog {
	return form.New(title, l, form.Options{
		Send:   b.program.Send,
		Closed: b.closed,
		Width:  b.width,
	})
}

// Send delivers msg to the program.
func (b *Builder) Send(msg tea.Msg) {
	b.program.Send(msg)
}

// Stop quits the program and waits until the terminal is restored.
func (b *Builder) Stop() error {
	b.program.Quit()
	<-b.closed
	return b.err
}
