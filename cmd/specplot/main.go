// Command specplot loads FITS spectra, converts them to rest-frame Fλ,
// optionally normalizes them to a continuum window, and draws them.
//
// Usage:
//
//	specplot info [flags] file...
//	specplot panel [flags] -o out.png file[@z]...
//	specplot overlay [flags] -o out.svg file[@z]...
//	specplot synth [flags] -o out.fits
//	specplot config
//	specplot version
//
// Examples:
//
//	specplot info --normalize spectra/a.fits@2.31
//	specplot panel --config batch.toml
//	specplot panel --normalize --rows 2 --cols 2 -o grid.png a.fits@2.31 b.fits@3.02
//	specplot overlay --normalize --offset 1 -o stack.pdf a.fits@2.31 b.fits@3.02
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "specplot:", err)
		os.Exit(1)
	}
}
