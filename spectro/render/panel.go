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

// Default panel grid.
const (
	DefaultRows = 4
	DefaultCols = 2
)

// PanelConfig configures a panel grid.
type PanelConfig struct {
	Rows, Cols int
	// Start is the index of the first spectrum drawn.
	Start int

	XLim, YLim *Range

	// Step draws mid-step lines instead of straight segments.
	Step bool
	// SmoothSigma is the Gaussian smoothing width in samples. Zero disables
	// smoothing.
	SmoothSigma float64

	// Zero sizes default to 14in wide and 4in per row.
	Width, Height vg.Length

	Logger *zap.Logger
}

// DefaultPanelConfig returns a 4×2 grid starting at the first spectrum.
func DefaultPanelConfig() PanelConfig {
	return PanelConfig{Rows: DefaultRows, Cols: DefaultCols}
}

// Panel draws up to Rows×Cols spectra, starting at cfg.Start, one per cell
// in row-major order. All cells share both axes. Spectra whose
// normalization failed are left out; the remaining ones must agree on
// normalization and output scale.
func Panel(specs []spectrum.Spectrum, cfg PanelConfig) (*Figure, error) {
	if cfg.Rows < 1 || cfg.Cols < 1 || cfg.Start < 0 {
		return nil, fmt.Errorf("%w: %d×%d from %d", ErrInvalidGrid, cfg.Rows, cfg.Cols, cfg.Start)
	}
	if err := checkLimits(cfg.XLim, cfg.YLim); err != nil {
		return nil, err
	}

	var subset []spectrum.Spectrum
	if cfg.Start < len(specs) {
		end := min(cfg.Start+cfg.Rows*cfg.Cols, len(specs))
		subset = specs[cfg.Start:end]
	}
	subset = Usable(subset, cfg.Logger)
	if len(subset) == 0 {
		return nil, ErrNoSpectra
	}
	if err := CheckBatch(subset); err != nil {
		return nil, err
	}

	plots := make([][]*plot.Plot, cfg.Rows)
	for j := range plots {
		plots[j] = make([]*plot.Plot, cfg.Cols)
	}
	for k, s := range subset {
		p, err := panelPlot(s, cfg)
		if err != nil {
			return nil, fmt.Errorf("render: %s: %w", s.File, err)
		}
		plots[k/cfg.Cols][k%cfg.Cols] = p
	}
	shareAxes(plots, cfg.XLim, cfg.YLim)

	xl, yl := axisLabels(subset)
	fig := &Figure{
		Width:  cfg.Width,
		Height: cfg.Height,
		XLabel: xl,
		YLabel: yl,
		Plots:  plots,
	}
	if fig.Width == 0 {
		fig.Width = 14 * vg.Inch
	}
	if fig.Height == 0 {
		fig.Height = vg.Length(4*cfg.Rows) * vg.Inch
	}
	return fig, nil
}

func panelPlot(s spectrum.Spectrum, cfg PanelConfig) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = filepath.Base(s.File)
	p.Title.TextStyle.Font.Size = vg.Points(10)
	p.Add(plotter.NewGrid())

	lines, err := traces(s.Wave, s.Flux, traceStyle{
		Color:       plotutil.Color(0),
		Step:        cfg.Step,
		SmoothSigma: cfg.SmoothSigma,
	})
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		p.Add(l)
	}

	if s.Z != nil {
		p.Add(cornerLabel{text: fmt.Sprintf("z = %.3f", *s.Z)})
	}
	return p, nil
}
