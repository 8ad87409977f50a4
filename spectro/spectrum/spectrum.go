package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectro/spectro/continuum"
	"github.com/cwbudde/algo-spectro/spectro/restframe"
	"github.com/cwbudde/algo-spectro/spectro/table"
	"github.com/cwbudde/algo-spectro/spectro/units"
)

// Spectrum is a processed spectrum. It is not modified after Load or
// Process return it.
type Spectrum struct {
	Wave     []float64
	Flux     []float64 // Fλ
	WaveUnit units.WaveUnit

	Z    *float64
	File string
	// RestFrame is true when Wave and Flux were shifted by Z.
	RestFrame bool

	// Normalized is true iff normalization was requested and succeeded, in
	// which case NormWindow and NormFactor are set and NormError is empty.
	Normalized bool
	NormWindow *continuum.Window
	NormFactor *float64
	// NormError is set iff normalization was requested and failed.
	NormError string

	OutputFluxScale *float64
}

// Len returns the number of samples.
func (s Spectrum) Len() int {
	return len(s.Wave)
}

// NormalizationRequested reports whether the spectrum went through the
// normalization step, successfully or not.
func (s Spectrum) NormalizationRequested() bool {
	return s.Normalized || s.NormError != ""
}

// NormalizationFailed reports whether normalization was requested and
// failed.
func (s Spectrum) NormalizationFailed() bool {
	return s.NormError != ""
}

// Map returns the spectrum keyed by its record field names. Absent optional
// fields map to nil.
func (s Spectrum) Map() map[string]any {
	m := map[string]any{
		"wave":              s.Wave,
		"flux":              s.Flux,
		"z":                 nil,
		"file":              s.File,
		"normalized":        s.Normalized,
		"norm_window":       nil,
		"norm_factor":       nil,
		"norm_error":        nil,
		"output_flux_scale": nil,
	}
	if s.Z != nil {
		m["z"] = *s.Z
	}
	if s.NormWindow != nil {
		m["norm_window"] = [2]float64{s.NormWindow.Min, s.NormWindow.Max}
	}
	if s.NormFactor != nil {
		m["norm_factor"] = *s.NormFactor
	}
	if s.NormError != "" {
		m["norm_error"] = s.NormError
	}
	if s.OutputFluxScale != nil {
		m["output_flux_scale"] = *s.OutputFluxScale
	}
	return m
}

// Load reads the spectrum stored at path and processes it. Read failures
// are returned with the underlying cause intact.
func Load(path string, opts ...Option) (Spectrum, error) {
	cfg := ApplyOptions(opts...)

	wave, flux, err := table.ReadColumns(path, cfg.WaveColumn, cfg.FluxColumn)
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: read %s: %w", path, err)
	}

	return process(path, wave, flux, cfg)
}

// Process runs already-read columns through the pipeline. source is
// recorded as the spectrum's File for provenance only.
func Process(source string, wave, flux []float64, opts ...Option) (Spectrum, error) {
	return process(source, wave, flux, ApplyOptions(opts...))
}

func process(path string, wave, flux []float64, cfg Config) (Spectrum, error) {
	flambda, err := units.ToFlambda(flux, wave, cfg.InputFluxUnit, cfg.WaveUnit)
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: %s: %w", path, err)
	}

	out := Spectrum{
		Wave:     append([]float64(nil), wave...),
		Flux:     flambda,
		WaveUnit: cfg.WaveUnit,
		File:     path,
	}
	if cfg.Redshift != nil {
		z := *cfg.Redshift
		out.Z = &z
	}

	// Without a redshift the observed frame passes through unchanged.
	if cfg.RestFrame && out.Z != nil {
		out.Wave, out.Flux, err = restframe.ToRestFrame(out.Wave, out.Flux, *out.Z, restframe.FLambda)
		if err != nil {
			return Spectrum{}, fmt.Errorf("spectrum: %s: %w", path, err)
		}
		out.RestFrame = true
	}

	if cfg.Normalize {
		res, err := continuum.Normalize(out.Wave, out.Flux,
			continuum.WithWindow(cfg.NormWindow),
			continuum.WithStatistic(cfg.NormStatistic),
			continuum.WithMinPoints(cfg.NormMinPoints),
		)
		switch {
		case err == nil:
			w, f := res.Window, res.Factor
			out.Flux = res.Flux
			out.Normalized = true
			out.NormWindow = &w
			out.NormFactor = &f
		case continuum.IsRecoverable(err):
			out.NormError = err.Error()
		default:
			return Spectrum{}, fmt.Errorf("spectrum: %s: %w", path, err)
		}
	}

	if cfg.OutputFluxScale != nil {
		scale := *cfg.OutputFluxScale
		if len(out.Flux) > 0 {
			vecmath.ScaleBlockInPlace(out.Flux, scale)
		}
		out.OutputFluxScale = &scale
	}

	return out, nil
}
