package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-spectro/spectro/spectrum"
)

func ExampleProcess() {
	wave := []float64{0.6, 0.8, 1.0, 1.2}
	flux := []float64{10, 10, 10, 10} // μJy

	s, err := spectrum.Process("example", wave, flux,
		spectrum.WithRedshift(1),
		spectrum.WithNormalize(true),
	)
	if err != nil {
		panic(err)
	}
	fmt.Printf("max wave=%.1f normalized=%v\n", s.Wave[len(s.Wave)-1], s.Normalized)
	fmt.Println(s.NormError)

	// Output:
	// max wave=0.6 normalized=false
	// continuum: insufficient points in normalization window: 0 < 4 in window (0.3546, 0.3746)
}
