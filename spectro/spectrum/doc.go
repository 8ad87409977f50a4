// Package spectrum loads a FITS spectrum and runs it through the processing
// pipeline:
//
//	read → μJy to Fλ → rest frame (optional) → continuum normalization (optional) → rescale (optional)
//
// Every stage returns new slices, so a [Spectrum] never shares storage with
// its inputs. Normalization failures caused by the data (an underpopulated
// window, a non-positive continuum) are recorded in [Spectrum.NormError]
// instead of failing the load; everything else is returned as an error.
package spectrum
