// Package hilbert computes the discrete Hilbert transform by spectral masking.
//
// The input is zero-padded to a power of two, transformed, and its spectrum
// multiplied by the one-sided mask (DC and Nyquist x1, positive bins x2,
// negative bins x0). The inverse transform is the analytic signal; its
// imaginary part is the Hilbert transform. Results are truncated back to the
// input length.
package hilbert
