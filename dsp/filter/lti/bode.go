package lti

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/dsp/spectrum"
)

// ErrInvalidRange is returned for a Bode sweep with non-positive, reversed or
// non-finite bounds, or fewer than one point.
var ErrInvalidRange = errors.New("lti: invalid frequency range")

// BodePoint is one sample of a Bode plot. Frequency is in the unit the sweep
// was requested in (rad/s for [TransferFunction.Bode], Hz for
// [TransferFunction.BodeHz]).
type BodePoint struct {
	Frequency   float64
	MagnitudeDB float64
	PhaseDeg    float64
}

// Bode evaluates H on points log-spaced angular frequencies from wStart to
// wStop inclusive. Magnitude is floored at [core.MagnitudeFloor] before the
// dB conversion; the phase is unwrapped so consecutive points never differ
// by more than 180 degrees.
func (tf *TransferFunction) Bode(wStart, wStop float64, points int) ([]BodePoint, error) {
	return tf.sweep(wStart, wStop, points, 1)
}

// BodeHz is [TransferFunction.Bode] over a grid given in Hz.
func (tf *TransferFunction) BodeHz(fStart, fStop float64, points int) ([]BodePoint, error) {
	return tf.sweep(fStart, fStop, points, 2*math.Pi)
}

func (tf *TransferFunction) sweep(start, stop float64, points int, toRad float64) ([]BodePoint, error) {
	if points < 1 || !(start > 0) || !(stop >= start) || math.IsInf(stop, 0) {
		return nil, fmt.Errorf("%w: [%v, %v] with %d points", ErrInvalidRange, start, stop, points)
	}

	freqs := LogSpace(start, stop, points)
	phase := make([]float64, points)
	out := make([]BodePoint, points)
	for i, f := range freqs {
		mag, ph := tf.Evaluate(f * toRad)
		out[i] = BodePoint{Frequency: f, MagnitudeDB: core.LinearToDBFloor(mag)}
		phase[i] = ph
	}
	for i, ph := range spectrum.UnwrapDegrees(phase) {
		out[i].PhaseDeg = ph
	}
	return out, nil
}

// LogSpace returns n points geometrically spaced from start to stop
// inclusive. Both bounds must be positive. A single point is start.
func LogSpace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	out[0] = start
	if n == 1 {
		return out
	}
	ratio := math.Log(stop / start)
	for i := 1; i < n-1; i++ {
		out[i] = start * math.Exp(ratio*float64(i)/float64(n-1))
	}
	out[n-1] = stop
	return out
}
