// Package units converts flux densities between per-frequency and
// per-wavelength representations.
//
// Flux densities are in cgs units: Fν in erg s⁻¹ cm⁻² Hz⁻¹ and Fλ in
// erg s⁻¹ cm⁻² Å⁻¹. Wavelengths are tagged with a [WaveUnit]; only
// microns and angstroms are recognized.
//
// The conversion follows Fλ = Fν·c/λ², evaluated with λ in centimeters and
// rescaled from per-centimeter to per-angstrom:
//
//	flambda := fnu * SpeedOfLight / (lamCM*lamCM) / 1e8
package units
