// Package render draws processed spectra with gonum/plot.
//
// It is a pure consumer of [spectrum.Spectrum] records: it chooses the flux
// axis label from the records' normalization state and output scale, refuses
// batches that mix those states, and leaves out records whose normalization
// was requested but failed. Figures are either a grid of panels sharing both
// axes ([Panel]) or a single axis with vertically offset traces
// ([Overlay]).
package render
