package nanstat

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats holds summary statistics over the finite samples of a series.
type Stats struct {
	Length int // all samples, finite or not
	Finite int
	Mean   float64
	Median float64
	StdDev float64 // sample standard deviation (n-1)
	Min    float64
	MinPos int // index into the original series
	Max    float64
	MaxPos int
	Sum    float64
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Finite returns a new slice holding only the finite values of x, in order.
func Finite(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if IsFinite(v) {
			out = append(out, v)
		}
	}
	return out
}

// CountFinite returns the number of finite values in x.
func CountFinite(x []float64) int {
	n := 0
	for _, v := range x {
		if IsFinite(v) {
			n++
		}
	}
	return n
}

// Mean returns the arithmetic mean of the finite values of x.
// Returns NaN when x has no finite values.
func Mean(x []float64) float64 {
	f := Finite(x)
	if len(f) == 0 {
		return math.NaN()
	}
	return stat.Mean(f, nil)
}

// Median returns the median of the finite values of x. For an even count
// the two central values are averaged.
// Returns NaN when x has no finite values.
func Median(x []float64) float64 {
	f := Finite(x)
	if len(f) == 0 {
		return math.NaN()
	}
	sort.Float64s(f)
	return sortedMedian(f)
}

// sortedMedian expects a non-empty ascending slice.
func sortedMedian(sorted []float64) float64 {
	n := len(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return 0.5 * (sorted[mid-1] + sorted[mid])
}

// emptyStats returns the summary for a series without finite values.
func emptyStats(length int) Stats {
	nan := math.NaN()
	return Stats{
		Length: length,
		Mean:   nan,
		Median: nan,
		StdDev: nan,
		Min:    nan,
		MinPos: -1,
		Max:    nan,
		MaxPos: -1,
	}
}

// Calculate computes all summary statistics over the finite values of x.
func Calculate(x []float64) Stats {
	f := Finite(x)
	if len(f) == 0 {
		return emptyStats(len(x))
	}

	s := Stats{
		Length: len(x),
		Finite: len(f),
		Min:    math.Inf(1),
		MinPos: -1,
		Max:    math.Inf(-1),
		MaxPos: -1,
		Sum:    floats.Sum(f),
	}

	for i, v := range x {
		if !IsFinite(v) {
			continue
		}
		if v < s.Min {
			s.Min, s.MinPos = v, i
		}
		if v > s.Max {
			s.Max, s.MaxPos = v, i
		}
	}

	if len(f) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(f, nil)
	} else {
		s.Mean, s.StdDev = f[0], 0
	}

	sort.Float64s(f)
	s.Median = sortedMedian(f)

	return s
}
