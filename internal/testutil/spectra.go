package testutil

import "math"

// Linspace returns n evenly spaced samples over [start, stop], both ends
// included.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[n-1] = stop
	return out
}

// Constant returns a slice of length n filled with value.
func Constant(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// PowerLaw returns amplitude * (wave/pivot)^slope for each wavelength.
func PowerLaw(wave []float64, amplitude, pivot, slope float64) []float64 {
	out := make([]float64, len(wave))
	for i, w := range wave {
		out[i] = amplitude * math.Pow(w/pivot, slope)
	}
	return out
}

// Mask returns a copy of x with NaN written at every index in idx.
// Out-of-range indices are ignored.
func Mask(x []float64, idx ...int) []float64 {
	out := append([]float64(nil), x...)
	for _, i := range idx {
		if i >= 0 && i < len(out) {
			out[i] = math.NaN()
		}
	}
	return out
}
