package smooth

import (
	"math"
	"strconv"
	"testing"
)

func BenchmarkGaussian(b *testing.B) {
	flux := make([]float64, 4096)
	for i := range flux {
		flux[i] = 1 + 0.1*math.Sin(float64(i)/7)
	}
	for _, sigma := range []float64{2, 40} {
		b.Run(strconv.FormatFloat(sigma, 'f', -1, 64), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(flux) * 8))
			for range b.N {
				if _, err := Gaussian(flux, sigma); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
