// Package smooth provides NaN-aware smoothing for display of noisy spectra.
//
// Smoothing is a normalized convolution: flux (with masked samples set to
// zero) and the finite-sample mask are convolved with the same kernel and
// divided, so masked pixels neither pull neighbours towards zero nor spread
// NaN through the output. Masked input samples stay NaN.
//
// Kernels up to 64 taps are applied with a direct SIMD-accelerated loop;
// longer kernels use FFT overlap-add.
package smooth
