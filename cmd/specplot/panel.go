package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-spectro/spectro/render"
)

var errNoOutput = errors.New("no output file: pass -o or set output in --config")

func newPanelCmd(a *app) *cobra.Command {
	var (
		lf         loaderFlags
		ff         figureFlags
		rows, cols int
		start      int
	)

	cmd := &cobra.Command{
		Use:   "panel [flags] file[@z]...",
		Short: "Draw spectra in a grid of panels sharing both axes",
		Long: `Draws up to rows×cols spectra, starting at --start, one per panel in
row-major order. Each panel is titled with its file name and annotated with
its redshift. Spectra whose continuum normalization failed are logged and
left out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := lf.batch(cmd, args)
			if err != nil {
				return err
			}

			fs := cmd.Flags()
			p := &b.Panel
			if fs.Changed("rows") {
				p.Rows = rows
			}
			if fs.Changed("cols") {
				p.Cols = cols
			}
			if fs.Changed("start") {
				p.Start = start
			}
			applyFigureFlags(cmd, &ff, &b.Output, &p.XLim, &p.YLim, &p.Step, &p.SmoothSigma)
			if b.Output == "" {
				return errNoOutput
			}

			specs, err := a.load(b)
			if err != nil {
				return err
			}
			pc, err := b.PanelConfig()
			if err != nil {
				return err
			}
			pc.Logger = a.logger

			fig, err := render.Panel(specs, pc)
			if err != nil {
				return err
			}
			if err := fig.Save(b.Output); err != nil {
				return err
			}
			a.logger.Info("wrote panel figure",
				zap.String("output", b.Output),
				zap.Int("rows", fig.Rows()),
				zap.Int("cols", fig.Cols()),
			)
			return nil
		},
	}

	fs := cmd.Flags()
	lf.register(fs)
	ff.register(fs)
	fs.IntVar(&rows, "rows", render.DefaultRows, "panel rows")
	fs.IntVar(&cols, "cols", render.DefaultCols, "panel columns")
	fs.IntVar(&start, "start", 0, "index of the first spectrum drawn")
	return cmd
}

// applyFigureFlags copies the changed drawing flags into a batch's figure
// table.
func applyFigureFlags(cmd *cobra.Command, ff *figureFlags, output *string, xlim, ylim *[]float64, step *bool, sigma *float64) {
	fs := cmd.Flags()
	if fs.Changed("output") {
		*output = ff.output
	}
	if fs.Changed("xlim") {
		*xlim = ff.xlim
	}
	if fs.Changed("ylim") {
		*ylim = ff.ylim
	}
	if fs.Changed("step") {
		*step = ff.step
	}
	if fs.Changed("smooth") {
		*sigma = ff.smooth
	}
}
