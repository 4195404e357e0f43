package hilbert

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/dsp/fft"
)

// Analytic returns x + j*H{x} for the real sequence x.
//
// Non-finite samples enter the transform as zero; the output is NaN at
// those positions only.
func Analytic(x []float64) []complex128 {
	if len(x) == 0 {
		return nil
	}
	clean := x
	var bad []int
	for i, v := range x {
		if core.IsFinite(v) {
			continue
		}
		if bad == nil {
			clean = core.Clone(x)
		}
		clean[i] = 0
		bad = append(bad, i)
	}

	spec := fft.Real(clean)
	applyMask(spec)

	z, err := fft.Inverse(spec)
	if err != nil {
		// fft.Real always yields a power-of-two length.
		panic("hilbert: " + err.Error())
	}
	z = z[:len(x)]
	for _, i := range bad {
		z[i] = complex(math.NaN(), math.NaN())
	}
	return z
}

// Transform returns the Hilbert transform of x: the imaginary part of
// [Analytic].
func Transform(x []float64) []float64 {
	z := Analytic(x)
	out := make([]float64, len(z))
	for i, v := range z {
		out[i] = imag(v)
	}
	return out
}

// Envelope returns the instantaneous amplitude |x + j*H{x}|.
func Envelope(x []float64) []float64 {
	z := Analytic(x)
	out := make([]float64, len(z))
	for i, v := range z {
		out[i] = cmplx.Abs(v)
	}
	return out
}

func applyMask(spec []complex128) {
	n := len(spec)
	half := n / 2
	for k := 1; k < n; k++ {
		switch {
		case k < half:
			spec[k] *= 2
		case k > half:
			spec[k] = 0
		}
	}
}
