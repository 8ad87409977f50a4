package continuum

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectro/stats/nanstat"
)

// Errors returned by Normalize.
var (
	ErrInsufficientWindowPoints   = errors.New("continuum: insufficient points in normalization window")
	ErrInvalidStatistic           = errors.New("continuum: statistic must be 'median' or 'mean'")
	ErrInvalidNormalizationFactor = errors.New("continuum: invalid normalization factor")
	ErrInvalidWindow              = errors.New("continuum: invalid normalization window")
	ErrLengthMismatch             = errors.New("continuum: wave and flux length mismatch")
)

const (
	// DefaultMinPoints is the minimum window population accepted by default.
	DefaultMinPoints = 4

	DefaultWindowMin = 0.3546 // μm
	DefaultWindowMax = 0.3746 // μm
)

// DefaultWindow returns (0.3546, 0.3746), in microns.
func DefaultWindow() Window {
	return Window{Min: DefaultWindowMin, Max: DefaultWindowMax}
}

// Window is an inclusive wavelength interval.
type Window struct {
	Min float64
	Max float64
}

// Contains reports whether lambda lies in [Min, Max].
func (w Window) Contains(lambda float64) bool {
	return lambda >= w.Min && lambda <= w.Max
}

// Validate checks that both bounds are finite and Min <= Max.
func (w Window) Validate() error {
	if !nanstat.IsFinite(w.Min) || !nanstat.IsFinite(w.Max) {
		return fmt.Errorf("%w: bounds must be finite: (%v, %v)", ErrInvalidWindow, w.Min, w.Max)
	}
	if w.Min > w.Max {
		return fmt.Errorf("%w: min %v > max %v", ErrInvalidWindow, w.Min, w.Max)
	}
	return nil
}

// String formats the window as (min, max).
func (w Window) String() string {
	return fmt.Sprintf("(%g, %g)", w.Min, w.Max)
}

// Statistic selects the continuum estimator.
type Statistic string

const (
	Median Statistic = "median"
	Mean   Statistic = "mean"
)

// Validate reports ErrInvalidStatistic for unknown estimators.
func (s Statistic) Validate() error {
	switch s {
	case Median, Mean:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatistic, string(s))
	}
}

// reduce evaluates s over x, ignoring non-finite samples.
func (s Statistic) reduce(x []float64) float64 {
	if s == Mean {
		return nanstat.Mean(x)
	}
	return nanstat.Median(x)
}

// Result is a successful normalization.
type Result struct {
	Flux   []float64 // flux / Factor
	Factor float64   // continuum level, finite and > 0
	Window Window
	Points int // samples selected by Window, finite or not
}

// Select returns the flux samples whose wavelength lies in w, in order.
func Select(wave, flux []float64, w Window) []float64 {
	var out []float64
	for i, lambda := range wave {
		if w.Contains(lambda) {
			out = append(out, flux[i])
		}
	}
	return out
}

// Level estimates the continuum level of flux over the configured window.
// It returns the level and the number of selected samples.
func Level(wave, flux []float64, opts ...Option) (float64, int, error) {
	cfg := ApplyOptions(opts...)
	return level(wave, flux, cfg)
}

func level(wave, flux []float64, cfg Config) (float64, int, error) {
	if len(wave) != len(flux) {
		return 0, 0, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(wave), len(flux))
	}
	if err := cfg.Statistic.Validate(); err != nil {
		return 0, 0, err
	}
	if err := cfg.Window.Validate(); err != nil {
		return 0, 0, err
	}

	sel := Select(wave, flux, cfg.Window)
	if len(sel) < cfg.MinPoints {
		return 0, len(sel), fmt.Errorf("%w: %d < %d in window %s",
			ErrInsufficientWindowPoints, len(sel), cfg.MinPoints, cfg.Window)
	}

	v := cfg.Statistic.reduce(sel)
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, len(sel), fmt.Errorf("%w: %s over window %s = %v",
			ErrInvalidNormalizationFactor, cfg.Statistic, cfg.Window, v)
	}

	return v, len(sel), nil
}

// Normalize divides flux by its continuum level over the configured window.
// The returned flux is a new slice; inputs are not modified.
func Normalize(wave, flux []float64, opts ...Option) (Result, error) {
	cfg := ApplyOptions(opts...)

	factor, n, err := level(wave, flux, cfg)
	if err != nil {
		return Result{}, err
	}

	out := make([]float64, len(flux))
	if inv := 1 / factor; !math.IsInf(inv, 0) {
		if len(flux) > 0 {
			vecmath.ScaleBlock(out, flux, inv)
		}
	} else {
		for i, f := range flux {
			out[i] = f / factor
		}
	}

	return Result{
		Flux:   out,
		Factor: factor,
		Window: cfg.Window,
		Points: n,
	}, nil
}

// IsRecoverable reports whether err is a data-dependent normalization
// failure that should be recorded rather than propagated.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrInsufficientWindowPoints) || errors.Is(err, ErrInvalidNormalizationFactor)
}
