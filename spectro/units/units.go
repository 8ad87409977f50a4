package units

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by unit conversion functions.
var (
	ErrInvalidUnit         = errors.New("units: wave unit must be 'um' or 'A'")
	ErrUnsupportedFluxUnit = errors.New("units: unsupported input flux unit")
	ErrLengthMismatch      = errors.New("units: wave and flux length mismatch")
)

const (
	// SpeedOfLight in cm/s.
	SpeedOfLight = 2.998e10

	// MicroJanskyCGS is one micro-Jansky in erg s⁻¹ cm⁻² Hz⁻¹.
	MicroJanskyCGS = 1e-29

	cmPerMicron   = 1e-4
	cmPerAngstrom = 1e-8
	angstromPerCM = 1e8
)

// WaveUnit tags the unit of a wavelength array.
type WaveUnit string

const (
	Micron   WaveUnit = "um"
	Angstrom WaveUnit = "A"
)

// ParseWaveUnit maps a tag or a spelled-out name to a WaveUnit.
func ParseWaveUnit(s string) (WaveUnit, error) {
	switch strings.TrimSpace(s) {
	case "um", "micron", "microns", "μm":
		return Micron, nil
	case "A", "angstrom", "angstroms", "Å":
		return Angstrom, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}
}

// ToCentimeters returns the factor converting a wavelength in u to cm.
func (u WaveUnit) ToCentimeters() (float64, error) {
	switch u {
	case Micron:
		return cmPerMicron, nil
	case Angstrom:
		return cmPerAngstrom, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, string(u))
	}
}

// Symbol returns the printable unit symbol, or the raw tag for unknown
// units.
func (u WaveUnit) Symbol() string {
	switch u {
	case Micron:
		return "μm"
	case Angstrom:
		return "Å"
	default:
		return string(u)
	}
}

// FluxUnit tags the unit of input flux densities.
type FluxUnit string

// MicroJansky is the only implemented input flux unit.
const MicroJansky FluxUnit = "uJy"

// FnuToFlambda converts Fν [erg s⁻¹ cm⁻² Hz⁻¹] sampled at wave to
// Fλ [erg s⁻¹ cm⁻² Å⁻¹]. The result is a new slice.
func FnuToFlambda(fnu, wave []float64, unit WaveUnit) ([]float64, error) {
	toCM, err := unit.ToCentimeters()
	if err != nil {
		return nil, err
	}
	if len(fnu) != len(wave) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(fnu), len(wave))
	}

	out := make([]float64, len(fnu))
	for i, w := range wave {
		lamCM := w * toCM
		out[i] = fnu[i] * SpeedOfLight / (lamCM * lamCM) / angstromPerCM
	}
	return out, nil
}

// MicroJanskyToFnu converts flux densities in μJy to erg s⁻¹ cm⁻² Hz⁻¹.
func MicroJanskyToFnu(flux []float64) []float64 {
	out := make([]float64, len(flux))
	if len(flux) > 0 {
		vecmath.ScaleBlock(out, flux, MicroJanskyCGS)
	}
	return out
}

// ToFlambda converts flux in fluxUnit, sampled at wave in waveUnit, to Fλ in
// erg s⁻¹ cm⁻² Å⁻¹. Only [MicroJansky] input is implemented; any other
// flux unit fails with [ErrUnsupportedFluxUnit].
func ToFlambda(flux, wave []float64, fluxUnit FluxUnit, waveUnit WaveUnit) ([]float64, error) {
	switch fluxUnit {
	case MicroJansky:
		return FnuToFlambda(MicroJanskyToFnu(flux), wave, waveUnit)
	default:
		return nil, fmt.Errorf("%w: %q (only %q is implemented)", ErrUnsupportedFluxUnit, string(fluxUnit), string(MicroJansky))
	}
}
