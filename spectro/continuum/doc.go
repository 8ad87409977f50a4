// Package continuum normalizes a spectrum by a continuum level estimated
// over a wavelength window.
//
// The level is the NaN-aware median (or mean) of the flux samples whose
// wavelength lies in the inclusive window [Min, Max]. The window is given in
// the same unit as the wavelength array; [DefaultWindow] brackets the
// Balmer-jump reference near 3646 Å in microns.
//
// Normalization has two expected failure modes that callers routinely
// branch on: too few samples in the window ([ErrInsufficientWindowPoints])
// and a level that cannot divide the flux ([ErrInvalidNormalizationFactor]).
// [IsRecoverable] reports whether an error belongs to that class, as opposed
// to a misconfiguration such as [ErrInvalidStatistic].
package continuum
