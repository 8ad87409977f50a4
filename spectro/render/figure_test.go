package render

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-spectro/dsp/smooth"
	"github.com/cwbudde/algo-spectro/spectro/spectrum"
)

func smallPanel() PanelConfig {
	cfg := DefaultPanelConfig()
	cfg.Width = 6 * vg.Inch
	cfg.Height = 4 * vg.Inch
	return cfg
}

func TestPanelGrid(t *testing.T) {
	specs := make([]spectrum.Spectrum, 3)
	for i, name := range []string{"a.fits", "b.fits", "c.fits"} {
		specs[i] = blueSpectrum(t, name)
	}

	cfg := smallPanel()
	cfg.Rows, cfg.Cols = 1, 2
	fig, err := Panel(specs, cfg)
	require.NoError(t, err)

	require.Equal(t, 1, fig.Rows())
	require.Equal(t, 2, fig.Cols())
	assert.Equal(t, "a.fits", fig.Plots[0][0].Title.Text)
	assert.Equal(t, "b.fits", fig.Plots[0][1].Title.Text)
	assert.Equal(t, "Rest-frame wavelength [μm]", fig.XLabel)
	assert.Equal(t, PhysicalLabel, fig.YLabel)

	cfg.Start = 2
	fig, err = Panel(specs, cfg)
	require.NoError(t, err)
	assert.Equal(t, "c.fits", fig.Plots[0][0].Title.Text)
	assert.Nil(t, fig.Plots[0][1], "empty cell should stay blank")
}

func TestPanelDefaults(t *testing.T) {
	fig, err := Panel([]spectrum.Spectrum{blueSpectrum(t, "a.fits")}, DefaultPanelConfig())
	require.NoError(t, err)
	assert.Equal(t, DefaultRows, fig.Rows())
	assert.Equal(t, DefaultCols, fig.Cols())
	assert.Equal(t, 14*vg.Inch, fig.Width)
	assert.Equal(t, 16*vg.Inch, fig.Height)
}

func TestPanelSharedAxes(t *testing.T) {
	a := blueSpectrum(t, "a.fits")
	b := blueSpectrum(t, "b.fits", spectrum.WithRedshift(0))

	cfg := smallPanel()
	cfg.Rows, cfg.Cols = 2, 1
	fig, err := Panel([]spectrum.Spectrum{a, b}, cfg)
	require.NoError(t, err)

	p0, p1 := fig.Plots[0][0], fig.Plots[1][0]
	assert.Equal(t, p0.X.Min, p1.X.Min)
	assert.Equal(t, p0.X.Max, p1.X.Max)
	assert.InDelta(t, 0.70, p0.X.Max, 1e-12)
	assert.InDelta(t, 0.20, p0.X.Min, 1e-12)

	cfg.XLim = &Range{Min: 0.3, Max: 0.4}
	cfg.YLim = &Range{Min: 0, Max: 2}
	fig, err = Panel([]spectrum.Spectrum{a, b}, cfg)
	require.NoError(t, err)
	for _, row := range fig.Plots {
		assert.Equal(t, 0.3, row[0].X.Min)
		assert.Equal(t, 0.4, row[0].X.Max)
		assert.Equal(t, 2.0, row[0].Y.Max)
	}
}

func TestPanelObservedFrameLabel(t *testing.T) {
	a := blueSpectrum(t, "a.fits")
	b := blueSpectrum(t, "b.fits", spectrum.WithOptionalRedshift(nil))

	fig, err := Panel([]spectrum.Spectrum{a, b}, smallPanel())
	require.NoError(t, err)
	assert.Equal(t, "Observed wavelength [μm]", fig.XLabel)
}

func TestPanelSkipsFailedNormalization(t *testing.T) {
	ok := blueSpectrum(t, "ok.fits", spectrum.WithNormalize(true))
	bad := redSpectrum(t, "bad.fits")

	fig, err := Panel([]spectrum.Spectrum{bad, ok}, smallPanel())
	require.NoError(t, err)
	assert.Equal(t, "ok.fits", fig.Plots[0][0].Title.Text)
	assert.Nil(t, fig.Plots[0][1])
	assert.Equal(t, NormalizedLabel, fig.YLabel)

	_, err = Panel([]spectrum.Spectrum{bad}, smallPanel())
	assert.ErrorIs(t, err, ErrNoSpectra)
}

func TestPanelErrors(t *testing.T) {
	plain := blueSpectrum(t, "a.fits")
	norm := blueSpectrum(t, "b.fits", spectrum.WithNormalize(true))

	_, err := Panel([]spectrum.Spectrum{plain, norm}, smallPanel())
	assert.ErrorIs(t, err, ErrMixedNormalization)

	cfg := smallPanel()
	cfg.Rows = 0
	_, err = Panel([]spectrum.Spectrum{plain}, cfg)
	assert.ErrorIs(t, err, ErrInvalidGrid)

	cfg = smallPanel()
	cfg.Start = 5
	_, err = Panel([]spectrum.Spectrum{plain}, cfg)
	assert.ErrorIs(t, err, ErrNoSpectra)

	cfg = smallPanel()
	cfg.XLim = &Range{Min: 1, Max: 1}
	_, err = Panel([]spectrum.Spectrum{plain}, cfg)
	assert.ErrorIs(t, err, ErrInvalidRange)

	cfg = smallPanel()
	cfg.SmoothSigma = -1
	_, err = Panel([]spectrum.Spectrum{plain}, cfg)
	assert.ErrorIs(t, err, smooth.ErrInvalidSigma)
}

func TestOverlay(t *testing.T) {
	a := blueSpectrum(t, "a.fits", spectrum.WithNormalize(true))
	b := blueSpectrum(t, "b.fits", spectrum.WithNormalize(true))

	fig, err := Overlay([]spectrum.Spectrum{a, b}, OverlayConfig{Offset: 2})
	require.NoError(t, err)
	require.Equal(t, 1, fig.Rows())
	require.Equal(t, 1, fig.Cols())

	p := fig.Plots[0][0]
	assert.InDelta(t, floats.Min(a.Flux), p.Y.Min, 1e-12)
	assert.InDelta(t, floats.Max(b.Flux)+2, p.Y.Max, 1e-12)
	assert.Equal(t, NormalizedLabel, fig.YLabel)

	_, err = Overlay([]spectrum.Spectrum{a}, OverlayConfig{Offset: math.NaN()})
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = Overlay(nil, OverlayConfig{})
	assert.ErrorIs(t, err, ErrNoSpectra)
}

func TestEncodeFormats(t *testing.T) {
	cfg := smallPanel()
	cfg.Rows, cfg.Cols = 1, 2
	cfg.Step = true
	cfg.SmoothSigma = 1.5
	fig, err := Panel([]spectrum.Spectrum{blueSpectrum(t, "a.fits")}, cfg)
	require.NoError(t, err)

	var png bytes.Buffer
	require.NoError(t, fig.Encode(&png, "png"))
	assert.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))

	var svg bytes.Buffer
	require.NoError(t, fig.Encode(&svg, "SVG"))
	assert.Contains(t, svg.String(), "<svg")

	assert.ErrorIs(t, fig.Encode(&bytes.Buffer{}, "bmp"), ErrUnsupportedFormat)
}

func TestSave(t *testing.T) {
	fig, err := Overlay([]spectrum.Spectrum{blueSpectrum(t, "a.fits")}, OverlayConfig{})
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.pdf")
	require.NoError(t, fig.Save(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	assert.ErrorIs(t, fig.Save(filepath.Join(dir, "noext")), ErrUnsupportedFormat)
}

func TestSegmentsSplitOnNonFinite(t *testing.T) {
	wave := []float64{1, 2, 3, 4, 5, 6}
	flux := []float64{1, math.NaN(), 3, 4, math.Inf(1), 6}

	segs := segments(wave, flux, 10)
	require.Len(t, segs, 3)
	assert.Len(t, segs[0], 1)
	assert.Len(t, segs[1], 2)
	assert.Equal(t, 13.0, segs[1][0].Y)
	assert.Equal(t, 6.0, segs[2][0].X)

	assert.Empty(t, segments([]float64{math.NaN()}, []float64{1}, 0))
}
