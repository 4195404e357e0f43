package modulation

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-siglab/dsp/filter/fir"
	"github.com/cwbudde/algo-siglab/dsp/spectrum"
	timestats "github.com/cwbudde/algo-siglab/stats/time"
)

// Detector constants.
const (
	EnvelopeWindow = 10  // trailing moving-average length of the envelope detector
	FMSmoothHalf   = 5   // half-width of the FM estimator's centered smoother
	ASKThreshold   = 0.3 // fraction of Ac at which the ASK envelope reads as 1
)

// Demodulate recovers the message (analog) or a 0/1 decision waveform
// (digital) from x.
//
//	AM, DSB-SC, SSB, PM  trailing 10-sample average of |x|
//	FM                   |x[n]-x[n-1]| smoothed over +/-5 samples, mean removed
//	ASK                  envelope >= 0.3*Ac
//	FSK                  one-bit sliding Goertzel power, FSKHigh vs FSKLow
//	PSK, QPSK            x*sin(wc*t) averaged over max(1, N/50) samples, >= 0
func Demodulate(s Scheme, x []float64, p Params) ([]float64, error) {
	if err := p.validate(s); err != nil {
		return nil, err
	}

	switch s {
	case AM, DSBSC, SSB, PM:
		return envelope(x), nil
	case FM:
		return fmDiscriminator(x), nil
	case ASK:
		env := envelope(x)
		level := ASKThreshold * p.CarrierAmplitude
		for i, v := range env {
			env[i] = boolToFloat(v >= level)
		}
		return env, nil
	case FSK:
		return fskDecisions(x, p)
	case PSK, QPSK:
		return productDecisions(x, p), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, int(s))
	}
}

// RecoverBits returns one bit per bit interval of x: the majority of the
// decision waveform from [Demodulate] over that interval. QPSK bits come
// straight from the symbol decisions.
func RecoverBits(s Scheme, x []float64, p Params) ([]int, error) {
	if !s.IsDigital() {
		return nil, fmt.Errorf("%w: %s", ErrNotDigital, s)
	}
	if err := p.validate(s); err != nil {
		return nil, err
	}
	if len(x) == 0 {
		return nil, nil
	}

	if s == QPSK {
		pts := constellation(s, x, p)
		bits := make([]int, 0, 2*len(pts))
		for _, pt := range pts {
			bits = append(bits, int(pt.Symbol[0]-'0'), int(pt.Symbol[1]-'0'))
		}
		// A trailing half symbol only carries its first bit.
		return bits[:p.bitIndex(len(x)-1)+1], nil
	}

	dec, err := Demodulate(s, x, p)
	if err != nil {
		return nil, err
	}
	count := p.bitIndex(len(x)-1) + 1
	sums := make([]float64, count)
	ns := make([]int, count)
	for i, v := range dec {
		k := p.bitIndex(i)
		sums[k] += v
		ns[k]++
	}
	bits := make([]int, count)
	for k := range bits {
		if ns[k] > 0 && sums[k]/float64(ns[k]) >= 0.5 {
			bits[k] = 1
		}
	}
	return bits, nil
}

// BER returns the fraction of differing bits over the common length of tx
// and rx. Empty input yields 0.
func BER(tx, rx []int) float64 {
	n := min(len(tx), len(rx))
	if n == 0 {
		return 0
	}
	var errs int
	for i := range n {
		if bitValue(tx[i]) != bitValue(rx[i]) {
			errs++
		}
	}
	return float64(errs) / float64(n)
}

func envelope(x []float64) []float64 {
	rect := make([]float64, len(x))
	for i, v := range x {
		rect[i] = math.Abs(v)
	}
	return fir.Trailing(rect, EnvelopeWindow)
}

// fmDiscriminator approximates the instantaneous frequency by the smoothed
// magnitude of the first difference.
func fmDiscriminator(x []float64) []float64 {
	d := make([]float64, len(x))
	for i := 1; i < len(x); i++ {
		d[i] = math.Abs(x[i] - x[i-1])
	}
	out := fir.Centered(d, FMSmoothHalf)
	dc := timestats.DC(out)
	for i := range out {
		out[i] -= dc
	}
	return out
}

func fskDecisions(x []float64, p Params) ([]float64, error) {
	low, err := spectrum.NewGoertzel(p.FSKLow, p.SampleRate)
	if err != nil {
		return nil, err
	}
	high, err := spectrum.NewGoertzel(p.FSKHigh, p.SampleRate)
	if err != nil {
		return nil, err
	}

	w := samplesPerBit(p)
	out := make([]float64, len(x))
	for i := range x {
		lo := max(0, i-w/2)
		hi := min(len(x), lo+w)
		low.Reset()
		high.Reset()
		low.ProcessBlock(x[lo:hi])
		high.ProcessBlock(x[lo:hi])
		out[i] = boolToFloat(high.Power() > low.Power())
	}
	return out, nil
}

func productDecisions(x []float64, p Params) []float64 {
	wc := 2 * math.Pi * p.CarrierFrequency
	prod := make([]float64, len(x))
	for i, v := range x {
		prod[i] = v * math.Sin(wc*float64(i)/p.SampleRate)
	}
	smoothed := fir.Centered(prod, fir.AdaptiveLength(len(x))/2)
	for i, v := range smoothed {
		smoothed[i] = boolToFloat(v >= 0)
	}
	return smoothed
}

func samplesPerBit(p Params) int {
	return max(1, int(math.Round(p.SampleRate/p.BitRate)))
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// correlate returns (2/N)*sum x[n]*exp(-j*2*pi*f*n/fs) over x, whose real and
// imaginary parts are the cosine and negated sine correlators.
func correlate(x []float64, start int, f, fs float64) complex128 {
	if len(x) == 0 {
		return 0
	}
	w := 2 * math.Pi * f / fs
	var acc complex128
	for k, v := range x {
		acc += complex(v, 0) * cmplx.Rect(1, -w*float64(start+k))
	}
	return acc * complex(2/float64(len(x)), 0)
}
