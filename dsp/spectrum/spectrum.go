package spectrum

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// Phase returns arg(X[k]) for each complex spectrum bin in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}

// UnwrapPhase returns a new phase slice with +/-2*pi discontinuities removed.
func UnwrapPhase(phase []float64) []float64 {
	return unwrap(phase, math.Pi)
}

// UnwrapDegrees returns a new phase slice in degrees, adjusted in 360 degree
// steps so that consecutive values never differ by more than 180 degrees.
func UnwrapDegrees(phase []float64) []float64 {
	return unwrap(phase, 180)
}

func unwrap(phase []float64, half float64) []float64 {
	if len(phase) == 0 {
		return nil
	}
	full := 2 * half
	out := make([]float64, len(phase))
	out[0] = phase[0]
	for i := 1; i < len(phase); i++ {
		v := phase[i]
		if math.IsNaN(v) || math.IsInf(v, 0) || math.IsInf(out[i-1], 0) || math.IsNaN(out[i-1]) {
			out[i] = v
			continue
		}
		for v-out[i-1] > half {
			v -= full
		}
		for v-out[i-1] < -half {
			v += full
		}
		out[i] = v
	}
	return out
}
