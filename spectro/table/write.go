package table

import (
	"fmt"
	"io"
	"os"

	"github.com/astrogo/fitsio"
)

// Write encodes wave and flux as a FITS file: an empty primary HDU followed
// by a binary table with two double-precision columns.
func Write(w io.Writer, waveCol, fluxCol string, wave, flux []float64) (err error) {
	if len(wave) != len(flux) {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(wave), len(flux))
	}
	if waveCol == "" {
		waveCol = DefaultWaveColumn
	}
	if fluxCol == "" {
		fluxCol = DefaultFluxColumn
	}

	ff, err := fitsio.Create(w)
	if err != nil {
		return fmt.Errorf("table: create: %w", err)
	}
	defer func() {
		if cerr := ff.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("table: close: %w", cerr)
		}
	}()

	phdu, err := fitsio.NewPrimaryHDU(nil)
	if err != nil {
		return fmt.Errorf("table: primary HDU: %w", err)
	}
	if err := ff.Write(phdu); err != nil {
		return fmt.Errorf("table: write primary HDU: %w", err)
	}

	cols := []fitsio.Column{
		{Name: waveCol, Format: "D"},
		{Name: fluxCol, Format: "D"},
	}
	tbl, err := fitsio.NewTable("SPECTRUM", cols, fitsio.BINARY_TBL)
	if err != nil {
		return fmt.Errorf("table: new table: %w", err)
	}
	defer tbl.Close()

	for i := range wave {
		lambda, f := wave[i], flux[i]
		if err := tbl.Write(&lambda, &f); err != nil {
			return fmt.Errorf("table: write row %d: %w", i, err)
		}
	}

	if err := ff.Write(tbl); err != nil {
		return fmt.Errorf("table: write table: %w", err)
	}
	return nil
}

// WriteFile creates path and writes the spectrum to it.
func WriteFile(path, waveCol, fluxCol string, wave, flux []float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return Write(f, waveCol, fluxCol, wave, flux)
}
