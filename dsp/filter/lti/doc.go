// Package lti evaluates continuous-time transfer functions
//
//	H(s) = (b[0]s^m + ... + b[m]) / (a[0]s^n + ... + a[n])
//
// on the imaginary axis, sweeps Bode plots, locates poles and zeros, and
// drives discrete-time simulations either straight from the coefficients or
// through a bilinear discretization.
package lti
