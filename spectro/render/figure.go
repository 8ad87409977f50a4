package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	// Image backends register their formats with draw.NewFormattedCanvas.
	_ "gonum.org/v1/plot/vg/vgeps"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"

	"github.com/cwbudde/algo-spectro/dsp/smooth"
	"github.com/cwbudde/algo-spectro/spectro/spectrum"
)

// Range is a closed axis interval.
type Range struct {
	Min, Max float64
}

// Validate reports ErrInvalidRange unless both ends are finite and
// Min < Max.
func (r Range) Validate() error {
	if math.IsNaN(r.Min) || math.IsInf(r.Min, 0) || math.IsNaN(r.Max) || math.IsInf(r.Max, 0) || !(r.Min < r.Max) {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

const (
	outerPad = 0.2 * vg.Centimeter
	labelPad = 1.0 * vg.Centimeter
	tilePad  = 0.3 * vg.Centimeter
)

// Figure is a grid of plots with shared axis labels drawn once along the
// left and bottom edges.
type Figure struct {
	Width, Height vg.Length
	XLabel        string
	YLabel        string

	// Plots is row-major. Nil cells are left blank.
	Plots [][]*plot.Plot
}

// Rows returns the number of grid rows.
func (f *Figure) Rows() int {
	return len(f.Plots)
}

// Cols returns the number of grid columns.
func (f *Figure) Cols() int {
	if len(f.Plots) == 0 {
		return 0
	}
	return len(f.Plots[0])
}

// Draw draws the figure onto c.
func (f *Figure) Draw(c draw.Canvas) {
	c.SetColor(color.White)
	c.Fill(c.Rectangle.Path())

	tiles := draw.Tiles{
		Rows:      f.Rows(),
		Cols:      f.Cols(),
		PadTop:    outerPad,
		PadRight:  outerPad,
		PadBottom: labelPad,
		PadLeft:   labelPad,
		PadX:      tilePad,
		PadY:      tilePad,
	}
	canvases := plot.Align(f.Plots, tiles, c)
	for j, row := range f.Plots {
		for i, p := range row {
			if p != nil {
				p.Draw(canvases[j][i])
			}
		}
	}

	sty := draw.TextStyle{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, 12),
		XAlign:  draw.XCenter,
		YAlign:  draw.YBottom,
		Handler: plot.DefaultTextHandler,
	}
	if f.XLabel != "" {
		c.FillText(sty, vg.Point{X: c.Center().X, Y: c.Min.Y + outerPad}, f.XLabel)
	}
	if f.YLabel != "" {
		rot := sty
		rot.Rotation = math.Pi / 2
		x := c.Min.X + outerPad + sty.Height(f.YLabel) - sty.FontExtents().Descent
		c.FillText(rot, vg.Point{X: x, Y: c.Center().Y}, f.YLabel)
	}
}

// Encode renders the figure in format (png, jpg, tif, svg, pdf or eps) and
// writes it to w.
func (f *Figure) Encode(w io.Writer, format string) error {
	cw, err := draw.NewFormattedCanvas(f.Width, f.Height, strings.ToLower(format))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	f.Draw(draw.New(cw))
	_, err = cw.WriteTo(w)
	return err
}

// Save writes the figure to path, choosing the format from its extension.
func (f *Figure) Save(path string) (err error) {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		return fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	return f.Encode(file, format)
}

// traceStyle configures how one spectrum is drawn.
type traceStyle struct {
	Color       color.Color
	Step        bool
	SmoothSigma float64
	Offset      float64
}

// traces builds the lines for one spectrum. Non-finite samples break the
// trace into separate segments.
func traces(wave, flux []float64, st traceStyle) ([]*plotter.Line, error) {
	if st.SmoothSigma != 0 {
		var err error
		flux, err = smooth.Gaussian(flux, st.SmoothSigma)
		if err != nil {
			return nil, err
		}
	}

	var lines []*plotter.Line
	for _, seg := range segments(wave, flux, st.Offset) {
		l, err := plotter.NewLine(seg)
		if err != nil {
			return nil, err
		}
		l.Color = st.Color
		l.Width = vg.Points(0.8)
		if st.Step {
			l.StepStyle = plotter.MidStep
		}
		lines = append(lines, l)
	}
	return lines, nil
}

func segments(wave, flux []float64, offset float64) []plotter.XYs {
	n := min(len(wave), len(flux))
	var (
		out []plotter.XYs
		cur plotter.XYs
	)
	for i := range n {
		x, y := wave[i], flux[i]+offset
		if isFinite(x) && isFinite(y) {
			cur = append(cur, plotter.XY{X: x, Y: y})
			continue
		}
		if len(cur) > 0 {
			out = append(out, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// cornerLabel draws text in the top right corner of the data area.
type cornerLabel struct {
	text string
}

func (l cornerLabel) Plot(c draw.Canvas, _ *plot.Plot) {
	sty := draw.TextStyle{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, 9),
		XAlign:  draw.XRight,
		YAlign:  draw.YTop,
		Handler: plot.DefaultTextHandler,
	}
	pt := vg.Point{
		X: c.Min.X + 0.97*(c.Max.X-c.Min.X),
		Y: c.Min.Y + 0.95*(c.Max.Y-c.Min.Y),
	}
	c.FillText(sty, pt, l.text)
}

// shareAxes gives every non-nil plot the union of their data ranges, then
// applies the optional fixed limits.
func shareAxes(plots [][]*plot.Plot, xlim, ylim *Range) {
	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, row := range plots {
		for _, p := range row {
			if p == nil {
				continue
			}
			xmin, xmax = math.Min(xmin, p.X.Min), math.Max(xmax, p.X.Max)
			ymin, ymax = math.Min(ymin, p.Y.Min), math.Max(ymax, p.Y.Max)
		}
	}
	if xlim != nil {
		xmin, xmax = xlim.Min, xlim.Max
	}
	if ylim != nil {
		ymin, ymax = ylim.Min, ylim.Max
	}
	for _, row := range plots {
		for _, p := range row {
			if p == nil {
				continue
			}
			p.X.Min, p.X.Max = xmin, xmax
			p.Y.Min, p.Y.Max = ymin, ymax
		}
	}
}

// axisLabels derives the shared axis labels of a consistent batch.
func axisLabels(specs []spectrum.Spectrum) (x, y string) {
	rest := true
	sym := ""
	for _, s := range specs {
		rest = rest && s.RestFrame
		if sym == "" {
			sym = s.WaveUnit.Symbol()
		}
	}
	if sym == "" {
		sym = "μm"
	}
	first := specs[0]
	return WaveLabel(rest, sym), FluxLabel(first.Normalized, first.OutputFluxScale)
}

func checkLimits(xlim, ylim *Range) error {
	for _, r := range []*Range{xlim, ylim} {
		if r == nil {
			continue
		}
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}
