package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dylan/dynparam/harvest"
	"github.com/dylan/dynparam/param"
	"github.com/dylan/dynparam/prefs"
	"github.com/dylan/dynparam/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const demoOwner = "demo"

var demoCmd = &cobra.Command{
	Use:   "demo [image...]",
	Short: "Run a sample harvest and print the accepted values",
	Long: `Shows a dialog with a filter choice, a variable number of weights and a few
plain fields. Switching the filter or changing the weight count rebuilds the
dialog. Accepted values are remembered in the configured store.

Example:
  dynparam demo lena.png mandrill.png`,
	RunE: runDemo,
}

type filter struct {
	name     string
	settings param.Parameter
}

func (f filter) Name() string           { return f.name }
func (f filter) Param() param.Parameter { return f.settings }

type demoParams struct {
	image   *param.Select[string]
	filter  *param.Plugin[filter]
	shape   *param.Radio
	smooth  *param.Bool
	weights *param.Repeated
	output  *param.Text
}

func newDemoParams(images []string) demoParams {
	options := make([]param.Option[string], len(images))
	for i, name := range images {
		options[i] = param.Option[string]{Name: name, Value: name}
	}

	radius := param.NewDouble(1.5, "radius", param.WithUnits("px"), param.WithDecimals(2))
	radius.SetBounds(0, 50)
	level := param.NewInt(128, "level")
	level.SetBounds(0, 255)

	return demoParams{
		image: param.NewSelect("input image", options),
		filter: param.NewPlugin("filter",
			filter{name: "Gaussian Blur", settings: radius},
			filter{name: "Threshold", settings: level},
			filter{name: "Invert"},
		),
		shape:  param.NewRadio("kernel shape", []string{"circle", "square", "diamond"}, "circle", 1, 3),
		smooth: param.NewBool("smooth edges", true),
		weights: param.NewRepeated("weights", 2, 6, func(i int) param.Parameter {
			w := param.NewDouble(1, fmt.Sprintf("weight_%d", i+1), param.WithDecimals(2))
			w.SetBounds(0, 1)
			return w
		}),
		output: param.NewText("output name", "result"),
	}
}

func (d demoParams) list() []param.Parameter {
	return []param.Parameter{d.image, d.filter, d.shape, d.smooth, d.weights, d.output}
}

func runDemo(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"sample-1.png", "sample-2.png"}
	}

	backend, closer, err := openBackend(cfg.ResolvedStore())
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := newDemoParams(args)
	dialog := cfg.ResolvedDialog()
	b := tui.Start(cfg, tea.WithAltScreen(), tea.WithContext(ctx))
	h := harvest.New(dialog.Title, d.list(),
		harvest.WithBuilder(b),
		harvest.WithStore(prefs.New(backend), demoOwner),
		harvest.WithLogger(logger),
		harvest.WithStatusPadding(dialog.StatusPadding),
	)

	herr := h.Harvest(ctx)
	if err := b.Stop(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Warn("program exited", zap.Error(err))
	}

	var invalid *harvest.InvalidError
	switch {
	case errors.As(herr, &invalid):
		return herr
	case errors.Is(herr, harvest.ErrCanceled):
		fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
		return nil
	case herr != nil:
		return herr
	}

	d.print(cmd.OutOrStdout())
	return nil
}

func (d demoParams) print(w io.Writer) {
	var weights []string
	for _, p := range d.weights.Value() {
		weights = append(weights, fmt.Sprintf("%.2f", p.(*param.Double).Value()))
	}

	chosen := d.filter.Value()
	settings := ""
	switch p := chosen.Param().(type) {
	case *param.Double:
		settings = fmt.Sprintf(" (%s=%.2f)", p.Label(), p.Value())
	case *param.Int:
		settings = fmt.Sprintf(" (%s=%d)", p.Label(), p.Value())
	}

	fmt.Fprintf(w, "input image:  %s\n", d.image.Value())
	fmt.Fprintf(w, "filter:       %s%s\n", chosen.Name(), settings)
	fmt.Fprintf(w, "kernel shape: %s\n", d.shape.Value())
	fmt.Fprintf(w, "smooth edges: %t\n", d.smooth.Value())
	fmt.Fprintf(w, "weights:      [%s]\n", strings.Join(weights, ", "))
	fmt.Fprintf(w, "output name:  %s\n", d.output.Value())
}
