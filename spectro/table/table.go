package table

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/astrogo/fitsio"
)

// Errors returned by the table readers and writers.
var (
	ErrNoTable          = errors.New("table: no table in first extension")
	ErrColumnNotFound   = errors.New("table: column not found")
	ErrNonNumericColumn = errors.New("table: column is not numeric")
	ErrLengthMismatch   = errors.New("table: wave and flux length mismatch")
)

// Default column names.
const (
	DefaultWaveColumn = "wave"
	DefaultFluxColumn = "flux"
)

// extension is the HDU index holding the spectrum table.
const extension = 1

// ReadColumns opens the FITS file at path and returns its wave and flux
// columns as aligned float64 slices.
func ReadColumns(path, waveCol, fluxCol string) (wave, flux []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return Read(f, waveCol, fluxCol)
}

// Read decodes a FITS stream and returns its wave and flux columns.
func Read(r io.Reader, waveCol, fluxCol string) (wave, flux []float64, err error) {
	if waveCol == "" {
		waveCol = DefaultWaveColumn
	}
	if fluxCol == "" {
		fluxCol = DefaultFluxColumn
	}

	ff, err := fitsio.Open(r)
	if err != nil {
		return nil, nil, fmt.Errorf("table: open: %w", err)
	}
	defer func() {
		if cerr := ff.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("table: close: %w", cerr)
		}
	}()

	hdus := ff.HDUs()
	if len(hdus) <= extension {
		return nil, nil, fmt.Errorf("%w: file has %d HDU(s)", ErrNoTable, len(hdus))
	}
	tbl, ok := hdus[extension].(*fitsio.Table)
	if !ok {
		return nil, nil, fmt.Errorf("%w: HDU %d is %T", ErrNoTable, extension, hdus[extension])
	}

	iw, err := columnIndex(tbl, waveCol)
	if err != nil {
		return nil, nil, err
	}
	ifl, err := columnIndex(tbl, fluxCol)
	if err != nil {
		return nil, nil, err
	}

	return readPair(tbl, iw, ifl)
}

// columnIndex resolves name to a column index, falling back to a
// case-insensitive match.
func columnIndex(tbl *fitsio.Table, name string) (int, error) {
	if i := tbl.Index(name); i >= 0 {
		return i, nil
	}
	for i, col := range tbl.Cols() {
		if strings.EqualFold(col.Name, name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

func readPair(tbl *fitsio.Table, iw, ifl int) (wave, flux []float64, err error) {
	cols := tbl.Cols()
	dest := make([]any, len(cols))
	for i := range cols {
		dest[i] = reflect.New(cols[i].Type()).Interface()
	}

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, nil, fmt.Errorf("table: read rows: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("table: close rows: %w", cerr)
		}
	}()

	n := int(tbl.NumRows())
	wave = make([]float64, 0, n)
	flux = make([]float64, 0, n)

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("table: scan row: %w", err)
		}
		if wave, err = appendFloats(wave, dest[iw], cols[iw].Name); err != nil {
			return nil, nil, err
		}
		if flux, err = appendFloats(flux, dest[ifl], cols[ifl].Name); err != nil {
			return nil, nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("table: iterate rows: %w", err)
	}

	if len(wave) != len(flux) {
		return nil, nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(wave), len(flux))
	}
	return wave, flux, nil
}

// appendFloats appends the value behind ptr, flattened to float64, to dst.
func appendFloats(dst []float64, ptr any, name string) ([]float64, error) {
	v := reflect.ValueOf(ptr).Elem()
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			f, ok := toFloat(v.Index(i))
			if !ok {
				return nil, fmt.Errorf("%w: %q holds %s", ErrNonNumericColumn, name, v.Type())
			}
			dst = append(dst, f)
		}
		return dst, nil
	default:
		f, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("%w: %q holds %s", ErrNonNumericColumn, name, v.Type())
		}
		return append(dst, f), nil
	}
}

func toFloat(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	default:
		return 0, false
	}
}
