// Package restframe shifts observed spectra to their rest frame.
//
// With z1 = 1 + z, rest wavelengths are λ/z1. Per-wavelength flux densities
// are multiplied by z1 and per-frequency flux densities divided by it.
package restframe

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by ToRestFrame.
var (
	ErrInvalidFluxType = errors.New("restframe: flux type must be 'flambda' or 'fnu'")
	ErrInvalidRedshift = errors.New("restframe: redshift must be > -1")
	ErrLengthMismatch  = errors.New("restframe: wave and flux length mismatch")
)

// FluxType tags how a flux density is expressed.
type FluxType string

const (
	// FLambda is flux density per unit wavelength.
	FLambda FluxType = "flambda"
	// FNu is flux density per unit frequency.
	FNu FluxType = "fnu"
)

// ToRestFrame maps observed wavelength and flux at redshift z to the rest
// frame. Inputs are not modified.
func ToRestFrame(wave, flux []float64, z float64, ft FluxType) (waveRest, fluxRest []float64, err error) {
	if len(wave) != len(flux) {
		return nil, nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(wave), len(flux))
	}
	z1 := 1 + z
	if !(z1 > 0) {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidRedshift, z)
	}

	var fluxScale float64
	switch ft {
	case FLambda:
		fluxScale = z1
	case FNu:
		fluxScale = 1 / z1
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidFluxType, string(ft))
	}

	waveRest = make([]float64, len(wave))
	for i, w := range wave {
		waveRest[i] = w / z1
	}

	fluxRest = make([]float64, len(flux))
	if ft == FLambda {
		if len(flux) > 0 {
			vecmath.ScaleBlock(fluxRest, flux, fluxScale)
		}
	} else {
		for i, f := range flux {
			fluxRest[i] = f / z1
		}
	}

	return waveRest, fluxRest, nil
}

// InverseRedshift returns the redshift z' that undoes a shift by z, so
// that (1+z)(1+z') = 1.
func InverseRedshift(z float64) float64 {
	return 1/(1+z) - 1
}
