package smooth

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectro/stats/nanstat"
)

// truncation is the Gaussian kernel half-width in units of sigma.
const truncation = 4

// GaussianKernel returns a unit-sum Gaussian kernel with standard deviation
// sigma samples, truncated at ±4σ. The kernel length is always odd.
func GaussianKernel(sigma float64) ([]float64, error) {
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSigma, sigma)
	}

	half := int(math.Ceil(truncation * sigma))
	k := make([]float64, 2*half+1)
	inv := 1 / (2 * sigma * sigma)
	for i := range k {
		d := float64(i - half)
		k[i] = math.Exp(-d * d * inv)
	}
	vecmath.ScaleBlockInPlace(k, 1/vecmath.Sum(k))
	return k, nil
}

// BoxcarKernel returns a unit-sum moving-average kernel. Even widths are
// widened by one so the kernel stays centered.
func BoxcarKernel(width int) ([]float64, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	if width%2 == 0 {
		width++
	}
	k := make([]float64, width)
	for i := range k {
		k[i] = 1 / float64(width)
	}
	return k, nil
}

// Gaussian smooths flux with a Gaussian of standard deviation sigma samples.
func Gaussian(flux []float64, sigma float64) ([]float64, error) {
	k, err := GaussianKernel(sigma)
	if err != nil {
		return nil, err
	}
	return Apply(flux, k)
}

// Boxcar smooths flux with a moving average over width samples.
func Boxcar(flux []float64, width int) ([]float64, error) {
	k, err := BoxcarKernel(width)
	if err != nil {
		return nil, err
	}
	return Apply(flux, k)
}

// Apply smooths flux with kernel, ignoring non-finite samples. Samples that
// were not finite on input are NaN on output. The kernel should be
// symmetric with a positive center tap.
func Apply(flux, kernel []float64) ([]float64, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if len(flux) == 0 {
		return []float64{}, nil
	}

	filled := make([]float64, len(flux))
	mask := make([]float64, len(flux))
	for i, v := range flux {
		if nanstat.IsFinite(v) {
			filled[i] = v
			mask[i] = 1
		}
	}

	num, err := convolveSame(filled, kernel)
	if err != nil {
		return nil, err
	}
	den, err := convolveSame(mask, kernel)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(flux))
	for i := range out {
		if mask[i] == 0 || !(den[i] > 0) {
			out[i] = math.NaN()
			continue
		}
		out[i] = num[i] / den[i]
	}
	return out, nil
}
