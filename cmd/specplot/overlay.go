package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-spectro/spectro/render"
)

func newOverlayCmd(a *app) *cobra.Command {
	var (
		lf     loaderFlags
		ff     figureFlags
		offset float64
	)

	cmd := &cobra.Command{
		Use:   "overlay [flags] file[@z]...",
		Short: "Draw spectra on one axis, each shifted up by --offset",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := lf.batch(cmd, args)
			if err != nil {
				return err
			}

			o := &b.Overlay
			if cmd.Flags().Changed("offset") {
				o.Offset = offset
			}
			applyFigureFlags(cmd, &ff, &b.Output, &o.XLim, &o.YLim, &o.Step, &o.SmoothSigma)
			if b.Output == "" {
				return errNoOutput
			}

			specs, err := a.load(b)
			if err != nil {
				return err
			}
			oc, err := b.OverlayConfig()
			if err != nil {
				return err
			}
			oc.Logger = a.logger

			fig, err := render.Overlay(specs, oc)
			if err != nil {
				return err
			}
			if err := fig.Save(b.Output); err != nil {
				return err
			}
			a.logger.Info("wrote overlay figure",
				zap.String("output", b.Output),
				zap.Int("spectra", len(specs)),
			)
			return nil
		},
	}

	fs := cmd.Flags()
	lf.register(fs)
	ff.register(fs)
	fs.Float64Var(&offset, "offset", 0, "vertical shift between consecutive traces")
	return cmd
}
