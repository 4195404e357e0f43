// Package spectrum computes magnitude spectra, power spectral densities and
// short-time Fourier transforms of real-valued signals.
//
// [ComputeFFT] and [ComputePSD] zero-pad their input to the next power of
// two and return the single-sided bins k < N/2, normalized by 1/N.
// Non-finite samples (dropped or NaN) are removed before the transform.
// [STFT] frames the signal with a Hann window and evaluates each frame with
// a direct DFT, which is adequate for the small frame sizes it is used with.
package spectrum
