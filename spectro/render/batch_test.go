package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cwbudde/algo-spectro/internal/testutil"
	"github.com/cwbudde/algo-spectro/spectro/spectrum"
	"github.com/cwbudde/algo-spectro/spectro/table"
)

// blueSpectrum covers the default continuum window in the rest frame.
func blueSpectrum(t *testing.T, name string, opts ...spectrum.Option) spectrum.Spectrum {
	t.Helper()
	wave := testutil.Linspace(0.30, 0.70, 100)
	flux := testutil.Constant(10, 100)
	s, err := spectrum.Process(name, wave, flux, append([]spectrum.Option{spectrum.WithRedshift(0.5)}, opts...)...)
	require.NoError(t, err)
	return s
}

// redSpectrum never reaches the default continuum window.
func redSpectrum(t *testing.T, name string) spectrum.Spectrum {
	t.Helper()
	wave := testutil.Linspace(1, 2, 50)
	s, err := spectrum.Process(name, wave, testutil.Constant(3, 50),
		spectrum.WithRedshift(0.1), spectrum.WithNormalize(true))
	require.NoError(t, err)
	require.True(t, s.NormalizationFailed())
	return s
}

func TestCheckBatch(t *testing.T) {
	plain := blueSpectrum(t, "a.fits")
	norm := blueSpectrum(t, "b.fits", spectrum.WithNormalize(true))
	scaled := blueSpectrum(t, "c.fits", spectrum.WithOutputFluxScale(1e17))
	scaled2 := blueSpectrum(t, "d.fits", spectrum.WithOutputFluxScale(1e18))

	assert.NoError(t, CheckBatch(nil))
	assert.NoError(t, CheckBatch([]spectrum.Spectrum{plain, plain}))
	assert.NoError(t, CheckBatch([]spectrum.Spectrum{scaled, scaled}))
	assert.ErrorIs(t, CheckBatch([]spectrum.Spectrum{plain, norm}), ErrMixedNormalization)
	assert.ErrorIs(t, CheckBatch([]spectrum.Spectrum{plain, scaled}), ErrMixedFluxScale)
	assert.ErrorIs(t, CheckBatch([]spectrum.Spectrum{scaled, scaled2}), ErrMixedFluxScale)
}

func TestUsableDropsFailedNormalization(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	ok := blueSpectrum(t, "ok.fits", spectrum.WithNormalize(true))
	bad := redSpectrum(t, "bad.fits")

	got := Usable([]spectrum.Spectrum{ok, bad, ok}, logger)
	require.Len(t, got, 2)
	assert.Equal(t, "ok.fits", got[0].File)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "bad.fits", fields["file"])
	assert.Equal(t, 0.1, fields["z"])
	assert.Equal(t, bad.NormError, fields["error"])
}

func TestUsableNilLogger(t *testing.T) {
	got := Usable([]spectrum.Spectrum{redSpectrum(t, "bad.fits")}, nil)
	assert.Empty(t, got)
}

func TestLoadBatch(t *testing.T) {
	dir := t.TempDir()
	wave := testutil.Linspace(0.30, 0.70, 100)
	flux := testutil.Constant(10, 100)
	require.NoError(t, table.WriteFile(filepath.Join(dir, "a.fits"), table.DefaultWaveColumn, table.DefaultFluxColumn, wave, flux))
	require.NoError(t, table.WriteFile(filepath.Join(dir, "b.fits"), table.DefaultWaveColumn, table.DefaultFluxColumn, wave, flux))

	core, logs := observer.New(zap.ErrorLevel)
	entries := []Entry{
		{File: "a.fits", Z: ptr(0.5)},
		{File: "missing.fits", Z: ptr(1)},
		{File: "b.fits"},
	}
	specs, skips := LoadBatch(entries, dir, zap.New(core), spectrum.WithRedshift(9), spectrum.WithNormalize(true))

	require.Len(t, specs, 2)
	require.NotNil(t, specs[0].Z)
	assert.Equal(t, 0.5, *specs[0].Z)
	assert.True(t, specs[0].Normalized)
	assert.Equal(t, filepath.Join(dir, "a.fits"), specs[0].File)

	// The entry's missing redshift clears the option's.
	assert.Nil(t, specs[1].Z)
	assert.False(t, specs[1].RestFrame)

	require.Len(t, skips, 1)
	assert.Equal(t, "missing.fits", skips[0].File)
	assert.ErrorIs(t, skips[0].Err, os.ErrNotExist)
	assert.Equal(t, 1, logs.Len())
}
