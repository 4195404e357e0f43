package fir

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-siglab/dsp/core"
)

// Filter is a direct-form FIR filter with a circular delay line.
type Filter struct {
	taps  []float64
	delay []float64
	pos   int
}

// New creates a filter from taps. The slice is copied; the order is
// len(taps)-1.
func New(taps []float64) *Filter {
	return &Filter{
		taps:  core.Clone(taps),
		delay: make([]float64, len(taps)),
	}
}

// NewMovingAverage returns a boxcar filter of the given length with unit
// DC gain. Lengths below one are treated as one.
func NewMovingAverage(length int) *Filter {
	length = max(1, length)
	taps := make([]float64, length)
	for i := range taps {
		taps[i] = 1 / float64(length)
	}
	return &Filter{taps: taps, delay: make([]float64, length)}
}

// ProcessSample pushes x into the delay line and returns
//
//	y[n] = sum_k h[k] * x[n-k]
func (f *Filter) ProcessSample(x float64) float64 {
	n := len(f.taps)
	if n == 0 {
		return 0
	}
	f.delay[f.pos] = x
	var y float64
	p := f.pos
	for _, h := range f.taps {
		y += h * f.delay[p]
		if p == 0 {
			p = n
		}
		p--
	}
	f.pos = (f.pos + 1) % n
	return y
}

// ProcessBlock filters buf in place.
func (f *Filter) ProcessBlock(buf []float64) {
	f.ProcessBlockTo(buf, buf)
}

// ProcessBlockTo filters src into dst, which must be at least as long.
func (f *Filter) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1]
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Apply filters a copy of x from a cleared state.
func (f *Filter) Apply(x []float64) []float64 {
	f.Reset()
	out := make([]float64, len(x))
	f.ProcessBlockTo(out, x)
	return out
}

// Reset clears the delay line.
func (f *Filter) Reset() {
	clear(f.delay)
	f.pos = 0
}

// Order returns len(taps)-1.
func (f *Filter) Order() int {
	return len(f.taps) - 1
}

// Coefficients returns a copy of the taps.
func (f *Filter) Coefficients() []float64 {
	return core.Clone(f.taps)
}

// Response returns H(e^{jw}) at freqHz for the given sample rate.
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	var h complex128
	for k, c := range f.taps {
		h += complex(c, 0) * cmplx.Rect(1, -w*float64(k))
	}
	return h
}

// MagnitudeDB returns the floored magnitude response in dB.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.LinearToDBFloor(cmplx.Abs(f.Response(freqHz, sampleRate)))
}
