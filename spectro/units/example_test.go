package units_test

import (
	"fmt"

	"github.com/cwbudde/algo-spectro/spectro/units"
)

func ExampleToFlambda() {
	flambda, err := units.ToFlambda([]float64{1}, []float64{1}, units.MicroJansky, units.Micron)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.4e\n", flambda[0])

	// Output:
	// 2.9980e-19
}
