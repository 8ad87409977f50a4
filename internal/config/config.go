// Package config reads specplot batch descriptions from TOML.
//
// A batch names the spectrum files to draw, their redshifts, how each file
// is loaded, and how the panel and overlay figures look:
//
//	base_path = "spectra"
//	output    = "panel.png"
//
//	[loader]
//	normalize   = true
//	norm_window = [0.3546, 0.3746]
//
//	[panel]
//	nrows = 4
//	ncols = 2
//
//	[[spectra]]
//	file = "a.fits"
//	z    = 2.31
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-spectro/spectro/continuum"
	"github.com/cwbudde/algo-spectro/spectro/render"
	"github.com/cwbudde/algo-spectro/spectro/spectrum"
	"github.com/cwbudde/algo-spectro/spectro/units"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid batch")

// Batch is a complete batch description.
type Batch struct {
	BasePath string  `toml:"base_path"`
	Output   string  `toml:"output"`
	Loader   Loader  `toml:"loader"`
	Panel    Panel   `toml:"panel"`
	Overlay  Overlay `toml:"overlay"`
	Spectra  []Entry `toml:"spectra"`
}

// Loader holds the per-file processing settings shared by the batch.
type Loader struct {
	InputFluxUnit   string    `toml:"input_flux_unit"`
	WaveUnit        string    `toml:"wave_unit"`
	RestFrame       bool      `toml:"restframe"`
	Normalize       bool      `toml:"normalize"`
	NormWindow      []float64 `toml:"norm_window"`
	NormStatistic   string    `toml:"norm_statistic"`
	MinPoints       int       `toml:"min_points"`
	OutputFluxScale *float64  `toml:"output_flux_scale,omitempty"`
	WaveColumn      string    `toml:"wave_col"`
	FluxColumn      string    `toml:"flux_col"`
}

// Panel holds the panel grid settings. Sizes are in inches; zero picks the
// renderer default.
type Panel struct {
	Rows        int       `toml:"nrows"`
	Cols        int       `toml:"ncols"`
	Start       int       `toml:"start"`
	XLim        []float64 `toml:"xlim,omitempty"`
	YLim        []float64 `toml:"ylim,omitempty"`
	Step        bool      `toml:"step"`
	SmoothSigma float64   `toml:"smooth_sigma"`
	Width       float64   `toml:"width"`
	Height      float64   `toml:"height"`
}

// Overlay holds the overlay figure settings.
type Overlay struct {
	Offset      float64   `toml:"offset"`
	XLim        []float64 `toml:"xlim,omitempty"`
	YLim        []float64 `toml:"ylim,omitempty"`
	Step        bool      `toml:"step"`
	SmoothSigma float64   `toml:"smooth_sigma"`
	Width       float64   `toml:"width"`
	Height      float64   `toml:"height"`
}

// Entry is one spectrum file with its optional redshift.
type Entry struct {
	File string   `toml:"file"`
	Z    *float64 `toml:"z,omitempty"`
}

// Default returns a batch with the loader and renderer defaults filled in
// and no spectra.
func Default() Batch {
	lc := spectrum.DefaultConfig()
	return Batch{
		Loader: Loader{
			InputFluxUnit: string(lc.InputFluxUnit),
			WaveUnit:      string(lc.WaveUnit),
			RestFrame:     lc.RestFrame,
			Normalize:     lc.Normalize,
			NormWindow:    []float64{lc.NormWindow.Min, lc.NormWindow.Max},
			NormStatistic: string(lc.NormStatistic),
			MinPoints:     lc.NormMinPoints,
			WaveColumn:    lc.WaveColumn,
			FluxColumn:    lc.FluxColumn,
		},
		Panel: Panel{
			Rows: render.DefaultRows,
			Cols: render.DefaultCols,
		},
	}
}

// Parse decodes a TOML batch on top of Default. Unknown keys are rejected.
func Parse(data []byte) (Batch, error) {
	b := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&b); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Batch{}, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return Batch{}, fmt.Errorf("config: decode: %w", err)
	}
	return b, nil
}

// Load reads and parses the batch file at path.
func Load(path string) (Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Batch{}, err
	}
	return Parse(data)
}

// Encode writes b as TOML.
func Encode(w io.Writer, b Batch) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(b)
}

// Validate checks every setting that the loader or renderer would reject
// later, so a batch fails before any file is read.
func (b Batch) Validate() error {
	if _, err := b.LoaderOptions(); err != nil {
		return err
	}
	if _, err := b.PanelConfig(); err != nil {
		return err
	}
	if _, err := b.OverlayConfig(); err != nil {
		return err
	}
	for i, e := range b.Spectra {
		if e.File == "" {
			return fmt.Errorf("%w: spectra[%d] has no file", ErrInvalid, i)
		}
	}
	return nil
}

// LoaderOptions converts the loader table to spectrum options.
func (b Batch) LoaderOptions() ([]spectrum.Option, error) {
	l := b.Loader

	waveUnit, err := units.ParseWaveUnit(l.WaveUnit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if l.InputFluxUnit != string(units.MicroJansky) {
		return nil, fmt.Errorf("%w: %w: %q", ErrInvalid, units.ErrUnsupportedFluxUnit, l.InputFluxUnit)
	}
	if len(l.NormWindow) != 2 {
		return nil, fmt.Errorf("%w: norm_window needs 2 values, got %d", ErrInvalid, len(l.NormWindow))
	}
	window := continuum.Window{Min: l.NormWindow[0], Max: l.NormWindow[1]}
	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	stat := continuum.Statistic(l.NormStatistic)
	if err := stat.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if l.MinPoints < 1 {
		return nil, fmt.Errorf("%w: min_points must be at least 1, got %d", ErrInvalid, l.MinPoints)
	}

	opts := []spectrum.Option{
		spectrum.WithInputFluxUnit(units.FluxUnit(l.InputFluxUnit)),
		spectrum.WithWaveUnit(waveUnit),
		spectrum.WithRestFrame(l.RestFrame),
		spectrum.WithNormalize(l.Normalize),
		spectrum.WithNormWindow(window),
		spectrum.WithNormStatistic(stat),
		spectrum.WithNormMinPoints(l.MinPoints),
		spectrum.WithColumns(l.WaveColumn, l.FluxColumn),
	}
	if l.OutputFluxScale != nil {
		opts = append(opts, spectrum.WithOutputFluxScale(*l.OutputFluxScale))
	}
	return opts, nil
}

// Entries returns the spectra list as render entries.
func (b Batch) Entries() []render.Entry {
	out := make([]render.Entry, len(b.Spectra))
	for i, e := range b.Spectra {
		out[i] = render.Entry{File: e.File, Z: e.Z}
	}
	return out
}

// PanelConfig converts the panel table to a render config.
func (b Batch) PanelConfig() (render.PanelConfig, error) {
	p := b.Panel
	if p.Rows < 1 || p.Cols < 1 || p.Start < 0 {
		return render.PanelConfig{}, fmt.Errorf("%w: panel grid %d×%d from %d", ErrInvalid, p.Rows, p.Cols, p.Start)
	}
	xlim, err := limits("panel.xlim", p.XLim)
	if err != nil {
		return render.PanelConfig{}, err
	}
	ylim, err := limits("panel.ylim", p.YLim)
	if err != nil {
		return render.PanelConfig{}, err
	}
	if p.SmoothSigma < 0 {
		return render.PanelConfig{}, fmt.Errorf("%w: panel.smooth_sigma %g", ErrInvalid, p.SmoothSigma)
	}
	return render.PanelConfig{
		Rows:        p.Rows,
		Cols:        p.Cols,
		Start:       p.Start,
		XLim:        xlim,
		YLim:        ylim,
		Step:        p.Step,
		SmoothSigma: p.SmoothSigma,
		Width:       vg.Length(p.Width) * vg.Inch,
		Height:      vg.Length(p.Height) * vg.Inch,
	}, nil
}

// OverlayConfig converts the overlay table to a render config.
func (b Batch) OverlayConfig() (render.OverlayConfig, error) {
	o := b.Overlay
	xlim, err := limits("overlay.xlim", o.XLim)
	if err != nil {
		return render.OverlayConfig{}, err
	}
	ylim, err := limits("overlay.ylim", o.YLim)
	if err != nil {
		return render.OverlayConfig{}, err
	}
	if o.SmoothSigma < 0 {
		return render.OverlayConfig{}, fmt.Errorf("%w: overlay.smooth_sigma %g", ErrInvalid, o.SmoothSigma)
	}
	return render.OverlayConfig{
		Offset:      o.Offset,
		XLim:        xlim,
		YLim:        ylim,
		Step:        o.Step,
		SmoothSigma: o.SmoothSigma,
		Width:       vg.Length(o.Width) * vg.Inch,
		Height:      vg.Length(o.Height) * vg.Inch,
	}, nil
}

func limits(key string, v []float64) (*render.Range, error) {
	switch len(v) {
	case 0:
		return nil, nil
	case 2:
		r := render.Range{Min: v[0], Max: v[1]}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, key, err)
		}
		return &r, nil
	default:
		return nil, fmt.Errorf("%w: %s needs 2 values, got %d", ErrInvalid, key, len(v))
	}
}
