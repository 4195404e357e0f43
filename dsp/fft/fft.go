package fft

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-siglab/dsp/core"
)

// ErrNotPowerOfTwo is returned when a transform length is not a power of two.
var ErrNotPowerOfTwo = errors.New("fft: length must be a power of two")

// Forward returns the forward DFT of x. len(x) must be a power of two.
//
//	X[k] = sum_n x[n] * exp(-2*pi*i*k*n/N)
func Forward(x []complex128) ([]complex128, error) {
	if err := checkLength(len(x)); err != nil {
		return nil, err
	}
	out := make([]complex128, len(x))
	copy(out, x)
	transform(out, false)
	return out, nil
}

// Inverse returns the inverse DFT of x, scaled by 1/N.
func Inverse(x []complex128) ([]complex128, error) {
	if err := checkLength(len(x)); err != nil {
		return nil, err
	}
	out := make([]complex128, len(x))
	copy(out, x)
	transform(out, true)

	scale := complex(1/float64(len(out)), 0)
	for i := range out {
		out[i] *= scale
	}
	return out, nil
}

// Real zero-pads x to the next power of two and returns its forward DFT.
// An empty input yields an empty spectrum.
func Real(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	buf := PadComplex(x, core.NextPowerOfTwo(len(x)))
	transform(buf, false)
	return buf
}

// PadComplex converts x to complex values zero-padded to length n.
// Samples beyond n are discarded.
func PadComplex(x []float64, n int) []complex128 {
	out := make([]complex128, n)
	for i := 0; i < n && i < len(x); i++ {
		out[i] = complex(x[i], 0)
	}
	return out
}

func checkLength(n int) error {
	if n == 0 {
		return nil
	}
	if !core.IsPowerOfTwo(n) {
		return fmt.Errorf("%w: %d", ErrNotPowerOfTwo, n)
	}
	return nil
}

// transform runs the in-place radix-2 transform. len(x) must be a power of
// two (or zero).
func transform(x []complex128, inverse bool) {
	n := len(x)
	if n <= 1 {
		return
	}

	bitReverse(x)

	sign := -1.0
	if inverse {
		sign = 1.0
	}

	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		theta := sign * 2 * math.Pi / float64(size)
		wn := complex(math.Cos(theta), math.Sin(theta))
		for start := 0; start < n; start += size {
			w := complex(1, 0)
			for j := range half {
				u := x[start+j]
				v := w * x[start+j+half]
				x[start+j] = u + v
				x[start+j+half] = u - v
				w *= wn
			}
		}
	}
}

func bitReverse(x []complex128) {
	n := len(x)
	j := 0
	for i := 1; i < n; i++ {
		bit := n >> 1
		for j&bit != 0 {
			j ^= bit
			bit >>= 1
		}
		j |= bit
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}
}
