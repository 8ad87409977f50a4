package smooth

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by the smoothing functions.
var (
	ErrEmptyKernel  = errors.New("smooth: empty kernel")
	ErrInvalidSigma = errors.New("smooth: sigma must be finite and > 0")
	ErrInvalidWidth = errors.New("smooth: width must be > 0")
)

// directThreshold is the longest kernel applied without FFT.
const directThreshold = 64

// convolveSame returns the linear convolution of x and k trimmed to len(x),
// centered on the kernel midpoint.
func convolveSame(x, k []float64) ([]float64, error) {
	if len(k) == 0 {
		return nil, ErrEmptyKernel
	}
	if len(x) == 0 {
		return nil, nil
	}

	var full []float64
	if len(k) <= directThreshold {
		full = make([]float64, len(x)+len(k)-1)
		direct(full, x, k)
	} else {
		oa, err := newOverlapAdd(k)
		if err != nil {
			return nil, err
		}
		if full, err = oa.process(x); err != nil {
			return nil, err
		}
	}

	start := (len(k) - 1) / 2
	return full[start : start+len(x)], nil
}

// direct accumulates x*k into dst, which must have length len(x)+len(k)-1
// and be zeroed.
func direct(dst, x, k []float64) {
	m := len(k)
	tmp := make([]float64, m)
	for i, v := range x {
		if v == 0 {
			continue
		}
		vecmath.ScaleBlock(tmp, k, v)
		vecmath.AddBlockInPlace(dst[i:i+m], tmp)
	}
}

// overlapAdd convolves long inputs block by block in the frequency domain.
type overlapAdd struct {
	kernelFFT []complex128
	kernelLen int
	blockSize int
	plan      *algofft.Plan[complex128]
	scratch   []complex128
}

func newOverlapAdd(kernel []float64) (*overlapAdd, error) {
	blockSize := nextPowerOf2(len(kernel))
	if blockSize < 256 {
		blockSize = 256
	}
	fftSize := nextPowerOf2(blockSize + len(kernel) - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("smooth: FFT plan: %w", err)
	}

	padded := make([]complex128, fftSize)
	for i, v := range kernel {
		padded[i] = complex(v, 0)
	}
	kernelFFT := make([]complex128, fftSize)
	if err := plan.Forward(kernelFFT, padded); err != nil {
		return nil, fmt.Errorf("smooth: kernel FFT: %w", err)
	}

	return &overlapAdd{
		kernelFFT: kernelFFT,
		kernelLen: len(kernel),
		blockSize: blockSize,
		plan:      plan,
		scratch:   make([]complex128, fftSize),
	}, nil
}

// process returns the full linear convolution of input with the kernel.
func (oa *overlapAdd) process(input []float64) ([]float64, error) {
	out := make([]float64, len(input)+oa.kernelLen-1)

	for start := 0; start < len(input); start += oa.blockSize {
		end := min(start+oa.blockSize, len(input))

		for i := range oa.scratch {
			oa.scratch[i] = 0
		}
		for i := start; i < end; i++ {
			oa.scratch[i-start] = complex(input[i], 0)
		}

		if err := oa.plan.Forward(oa.scratch, oa.scratch); err != nil {
			return nil, fmt.Errorf("smooth: forward FFT: %w", err)
		}
		for i := range oa.scratch {
			oa.scratch[i] *= oa.kernelFFT[i]
		}
		if err := oa.plan.Inverse(oa.scratch, oa.scratch); err != nil {
			return nil, fmt.Errorf("smooth: inverse FFT: %w", err)
		}

		n := end - start + oa.kernelLen - 1
		for i := 0; i < n && start+i < len(out); i++ {
			out[start+i] += real(oa.scratch[i])
		}
	}

	return out, nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
