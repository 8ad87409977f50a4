package nanstat

import (
	"math"
	"testing"
)

const tolerance = 1e-12

var nan = math.NaN()

func TestMedianIgnoresNaN(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{name: "odd", in: []float64{3, 1, 2}, want: 2},
		{name: "even", in: []float64{4, 1, 3, 2}, want: 2.5},
		{name: "nan-odd-remaining", in: []float64{nan, 5, 1, nan, 3}, want: 3},
		{name: "nan-even-remaining", in: []float64{nan, 10, 2}, want: 6},
		{name: "inf-dropped", in: []float64{math.Inf(1), 1, 2, 3}, want: 2},
		{name: "single", in: []float64{7}, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Median(tt.in)
			if math.Abs(got-tt.want) > tolerance {
				t.Fatalf("Median(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMeanIgnoresNaN(t *testing.T) {
	got := Mean([]float64{1, nan, 2, math.Inf(-1), 3})
	if math.Abs(got-2) > tolerance {
		t.Fatalf("Mean = %v, want 2", got)
	}
}

func TestAllNaNIsNaN(t *testing.T) {
	in := []float64{nan, nan, nan}
	if !math.IsNaN(Mean(in)) {
		t.Fatal("Mean of all-NaN input should be NaN")
	}
	if !math.IsNaN(Median(in)) {
		t.Fatal("Median of all-NaN input should be NaN")
	}
	if !math.IsNaN(Median(nil)) {
		t.Fatal("Median of empty input should be NaN")
	}
}

func TestMedianDoesNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	Median(in)
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Fatalf("input reordered: %v", in)
	}
}

func TestCountFinite(t *testing.T) {
	if got := CountFinite([]float64{1, nan, math.Inf(1), -2}); got != 2 {
		t.Fatalf("CountFinite = %d, want 2", got)
	}
}

func TestCalculate(t *testing.T) {
	s := Calculate([]float64{nan, 4, 1, nan, 3, 2})

	if s.Length != 6 || s.Finite != 4 {
		t.Fatalf("Length/Finite = %d/%d, want 6/4", s.Length, s.Finite)
	}
	if s.Min != 1 || s.MinPos != 2 {
		t.Fatalf("Min = %v@%d, want 1@2", s.Min, s.MinPos)
	}
	if s.Max != 4 || s.MaxPos != 1 {
		t.Fatalf("Max = %v@%d, want 4@1", s.Max, s.MaxPos)
	}
	if math.Abs(s.Mean-2.5) > tolerance || math.Abs(s.Median-2.5) > tolerance {
		t.Fatalf("Mean/Median = %v/%v, want 2.5/2.5", s.Mean, s.Median)
	}
	if math.Abs(s.Sum-10) > tolerance {
		t.Fatalf("Sum = %v, want 10", s.Sum)
	}
	// sample std of 1..4
	if want := math.Sqrt(5.0 / 3.0); math.Abs(s.StdDev-want) > tolerance {
		t.Fatalf("StdDev = %v, want %v", s.StdDev, want)
	}
}

func TestCalculateEmpty(t *testing.T) {
	s := Calculate([]float64{nan})
	if s.Length != 1 || s.Finite != 0 {
		t.Fatalf("Length/Finite = %d/%d, want 1/0", s.Length, s.Finite)
	}
	if !math.IsNaN(s.Mean) || s.MinPos != -1 || s.MaxPos != -1 {
		t.Fatalf("unexpected empty stats: %+v", s)
	}
}

func TestCalculateSingle(t *testing.T) {
	s := Calculate([]float64{5})
	if s.Mean != 5 || s.StdDev != 0 || s.Median != 5 {
		t.Fatalf("unexpected single-sample stats: %+v", s)
	}
}
