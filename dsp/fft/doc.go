// Package fft implements an iterative radix-2 Cooley-Tukey transform.
//
// Transform lengths must be powers of two; [Real] and [PadComplex] zero-pad
// arbitrary input up to the next power of two. The butterflies advance their
// twiddle factor by complex multiplication (w *= wn) within each stage
// instead of calling the trigonometric functions per sample.
//
// A [Plan] wraps a fixed transform size and can delegate to the SIMD-backed
// algo-fft implementation when created [WithAccelerated].
package fft
