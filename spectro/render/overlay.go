package render

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-spectro/spectro/spectrum"
)

// OverlayConfig configures an overlay figure.
type OverlayConfig struct {
	// Offset is added to the i-th trace's flux i times.
	Offset float64

	XLim, YLim *Range

	Step        bool
	SmoothSigma float64

	// Zero sizes default to 10in × 6in.
	Width, Height vg.Length

	Logger *zap.Logger
}

// Overlay draws all usable spectra on one axis, each shifted up by
// i×Offset, with a legend of file names.
func Overlay(specs []spectrum.Spectrum, cfg OverlayConfig) (*Figure, error) {
	if !isFinite(cfg.Offset) {
		return nil, fmt.Errorf("%w: offset %g", ErrInvalidRange, cfg.Offset)
	}
	if err := checkLimits(cfg.XLim, cfg.YLim); err != nil {
		return nil, err
	}

	specs = Usable(specs, cfg.Logger)
	if len(specs) == 0 {
		return nil, ErrNoSpectra
	}
	if err := CheckBatch(specs); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	for i, s := range specs {
		lines, err := traces(s.Wave, s.Flux, traceStyle{
			Color:       plotutil.Color(i),
			Step:        cfg.Step,
			SmoothSigma: cfg.SmoothSigma,
			Offset:      float64(i) * cfg.Offset,
		})
		if err != nil {
			return nil, fmt.Errorf("render: %s: %w", s.File, err)
		}
		for _, l := range lines {
			p.Add(l)
		}
		if len(lines) > 0 {
			p.Legend.Add(legendName(s), lines[0])
		}
	}

	plots := [][]*plot.Plot{{p}}
	shareAxes(plots, cfg.XLim, cfg.YLim)

	xl, yl := axisLabels(specs)
	fig := &Figure{
		Width:  cfg.Width,
		Height: cfg.Height,
		XLabel: xl,
		YLabel: yl,
		Plots:  plots,
	}
	if fig.Width == 0 {
		fig.Width = 10 * vg.Inch
	}
	if fig.Height == 0 {
		fig.Height = 6 * vg.Inch
	}
	return fig, nil
}

func legendName(s spectrum.Spectrum) string {
	name := filepath.Base(s.File)
	if s.Z != nil {
		return fmt.Sprintf("%s (z = %.3f)", name, *s.Z)
	}
	return name
}
