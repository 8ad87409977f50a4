// Package nanstat provides reductions that ignore non-finite samples.
//
// Spectra routinely carry masked pixels encoded as NaN. Every function in
// this package drops NaN and ±Inf before reducing and reports NaN when
// nothing finite remains.
package nanstat
