package spectrum

import (
	"math"

	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/dsp/fft"
	"github.com/cwbudde/algo-siglab/dsp/signal"
)

// Result is a single-sided spectrum: Frequencies[k] = k*SampleRate/FFTSize
// for k < FFTSize/2, paired with a magnitude or power value.
type Result struct {
	Frequencies []float64
	Values      []float64
	FFTSize     int
}

// Len returns the number of bins.
func (r Result) Len() int { return len(r.Values) }

// BinWidth returns the spacing of the frequency grid in Hz.
func (r Result) BinWidth() float64 {
	if len(r.Frequencies) < 2 {
		return 0
	}
	return r.Frequencies[1] - r.Frequencies[0]
}

// Peak returns the frequency and value of the largest bin. An empty result
// yields zeros.
func (r Result) Peak() (freq, value float64) {
	k := PeakBin(r.Values)
	if k < 0 {
		return 0, 0
	}
	return r.Frequencies[k], r.Values[k]
}

// PeakBin returns the index of the largest value, or -1 for an empty slice.
// Ties resolve to the lowest index.
func PeakBin(values []float64) int {
	best := -1
	for i, v := range values {
		if best < 0 || v > values[best] {
			best = i
		}
	}
	return best
}

// ComputeFFT returns the normalized magnitude spectrum |X[k]|/N of values.
//
// Non-finite samples are removed, the remaining samples are truncated to the
// configured sample cap and zero-padded to N, the next power of two. The
// sample rate is given explicitly; any rate set through opts is ignored.
func ComputeFFT(values []float64, sampleRate float64, opts ...core.ProcessorOption) Result {
	bins, n := transformFinite(values, opts)
	half := n / 2
	res := newResult(half, n, sampleRate)
	if half == 0 {
		return res
	}
	mag := Magnitude(bins[:half])
	scale := 1 / float64(n)
	for k := range res.Values {
		res.Values[k] = mag[k] * scale
	}
	return res
}

// ComputePSD returns the squared normalized magnitude (|X[k]|/N)^2 on the
// same grid as [ComputeFFT].
func ComputePSD(values []float64, sampleRate float64, opts ...core.ProcessorOption) Result {
	bins, n := transformFinite(values, opts)
	half := n / 2
	res := newResult(half, n, sampleRate)
	if half == 0 {
		return res
	}
	pow := Power(bins[:half])
	scale := 1 / (float64(n) * float64(n))
	for k := range res.Values {
		res.Values[k] = pow[k] * scale
	}
	return res
}

// ComputeSignalFFT is [ComputeFFT] over the present samples of sig.
func ComputeSignalFFT(sig signal.Signal, opts ...core.ProcessorOption) Result {
	return ComputeFFT(sig.Compact(), sig.SampleRate, opts...)
}

// ComputeSignalPSD is [ComputePSD] over the present samples of sig.
func ComputeSignalPSD(sig signal.Signal, opts ...core.ProcessorOption) Result {
	return ComputePSD(sig.Compact(), sig.SampleRate, opts...)
}

func transformFinite(values []float64, opts []core.ProcessorOption) ([]complex128, int) {
	cfg := core.ApplyProcessorOptions(opts...)
	clean := cfg.Truncate(core.Finite(values))
	if len(clean) == 0 {
		return nil, 0
	}
	if cfg.Accelerated {
		if bins, err := accelerated(clean); err == nil {
			return bins, len(bins)
		}
	}
	bins := fft.Real(clean)
	return bins, len(bins)
}

func accelerated(x []float64) ([]complex128, error) {
	n := core.NextPowerOfTwo(len(x))
	plan, err := fft.NewPlan(n, fft.WithAccelerated())
	if err != nil {
		return nil, err
	}
	out := make([]complex128, n)
	if err := plan.Forward(out, fft.PadComplex(x, n)); err != nil {
		return nil, err
	}
	return out, nil
}

func newResult(bins, n int, sampleRate float64) Result {
	res := Result{
		Frequencies: make([]float64, bins),
		Values:      make([]float64, bins),
		FFTSize:     n,
	}
	if n == 0 || !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return res
	}
	df := sampleRate / float64(n)
	for k := range res.Frequencies {
		res.Frequencies[k] = float64(k) * df
	}
	return res
}
