package render

import (
	"fmt"
	"math"
)

// Flux axis labels.
const (
	NormalizedLabel = "Normalized flux"
	PhysicalLabel   = "Fλ [erg s⁻¹ cm⁻² Å⁻¹]"
)

// FluxLabel returns the flux axis label. Normalized spectra get
// NormalizedLabel; otherwise a set scale yields a power-of-ten label and no
// scale yields PhysicalLabel.
func FluxLabel(normalized bool, scale *float64) string {
	switch {
	case normalized:
		return NormalizedLabel
	case scale != nil:
		s := *scale
		if !(s > 0) || math.IsInf(s, 0) {
			return fmt.Sprintf("Fλ × %g [erg s⁻¹ cm⁻² Å⁻¹]", s)
		}
		return fmt.Sprintf("Fλ [10^%d erg s⁻¹ cm⁻² Å⁻¹]", ScaleExponent(s))
	default:
		return PhysicalLabel
	}
}

// ScaleExponent returns -floor(log10(scale)) for a positive finite scale.
// Exact powers of ten map to their exact exponent.
func ScaleExponent(scale float64) int {
	e := math.Floor(math.Log10(scale))
	// Log10 can land just below an exact power of ten.
	if math.Pow(10, e+1) <= scale {
		e++
	} else if math.Pow(10, e) > scale {
		e--
	}
	return -int(e)
}

// WaveLabel returns the wavelength axis label for unit symbol sym.
func WaveLabel(restFrame bool, sym string) string {
	if restFrame {
		return fmt.Sprintf("Rest-frame wavelength [%s]", sym)
	}
	return fmt.Sprintf("Observed wavelength [%s]", sym)
}
