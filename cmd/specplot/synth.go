package main

import (
	"errors"
	"math"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-spectro/spectro/table"
)

func newSynthCmd() *cobra.Command {
	var (
		output           string
		n                int
		waveMin, waveMax float64
		amplitude        float64
		pivot, slope     float64
		nanEvery         int
		waveCol, fluxCol string
	)

	cmd := &cobra.Command{
		Use:   "synth -o out.fits",
		Short: "Write a synthetic power-law spectrum in μJy to a FITS table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				return errNoOutput
			}
			if n < 1 || !(waveMin < waveMax) || !(pivot > 0) {
				return errors.New("synth: need -n ≥ 1, wave-min < wave-max and pivot > 0")
			}

			wave := []float64{waveMin}
			if n > 1 {
				wave = floats.Span(make([]float64, n), waveMin, waveMax)
			}
			flux := make([]float64, n)
			for i, w := range wave {
				flux[i] = amplitude * math.Pow(w/pivot, slope)
				if nanEvery > 0 && (i+1)%nanEvery == 0 {
					flux[i] = math.NaN()
				}
			}

			if err := table.WriteFile(output, waveCol, fluxCol, wave, flux); err != nil {
				return err
			}
			cmd.Printf("wrote %d samples to %s\n", n, output)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&output, "output", "o", "", "output FITS file")
	fs.IntVarP(&n, "samples", "n", 100, "number of samples")
	fs.Float64Var(&waveMin, "wave-min", 0.30, "first wavelength")
	fs.Float64Var(&waveMax, "wave-max", 0.70, "last wavelength")
	fs.Float64Var(&amplitude, "flux", 10, "flux density at the pivot wavelength in μJy")
	fs.Float64Var(&pivot, "pivot", 0.5, "pivot wavelength")
	fs.Float64Var(&slope, "slope", 0, "power-law index of flux against wavelength")
	fs.IntVar(&nanEvery, "nan-every", 0, "replace every k-th flux sample with NaN (0 disables)")
	fs.StringVar(&waveCol, "wave-col", table.DefaultWaveColumn, "wavelength column name")
	fs.StringVar(&fluxCol, "flux-col", table.DefaultFluxColumn, "flux column name")
	return cmd
}
