// Package fir provides a direct-form FIR filter runtime and the moving-average
// smoothers used by the demodulators.
//
// A [Filter] applies fixed coefficients through a circular delay line.
// [Trailing] and [Centered] are block smoothers over whole slices; [Trailing]
// is a boxcar [Filter] with zero initial state.
package fir
