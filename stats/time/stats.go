// Package time computes time-domain statistics of sampled signals.
//
// Every entry point ignores non-finite samples, and [CalculateSignal] also
// skips samples dropped from a signal's validity mask. An input without any
// usable sample yields zeroed statistics.
package time

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/dsp/signal"
)

// Stats holds time-domain signal statistics.
//
//nolint:revive
type Stats struct {
	Length        int // usable samples
	Dropped       int // samples excluded as missing or non-finite
	DC            float64
	RMS           float64
	RMS_dB        float64 // floored at core.MagnitudeFloor
	Max           float64
	MaxPos        int // index into the usable samples
	Min           float64
	MinPos        int
	Peak          float64 // max(|Max|, |Min|)
	Range         float64
	CrestFactor   float64 // Peak / RMS, 0 for silence
	Energy        float64 // sum of squares
	Power         float64 // Energy / Length
	ZeroCrossings int
	Variance      float64 // population variance
	StdDev        float64
	Skewness      float64 // sample skewness, 0 below 3 samples or for constant input
	Kurtosis      float64 // sample excess kurtosis, 0 below 4 samples or for constant input
}

// Calculate computes all statistics over the finite samples of values.
func Calculate(values []float64) Stats {
	x := core.Finite(values)
	s := calculate(x)
	s.Dropped = len(values) - len(x)
	return s
}

// CalculateSignal computes statistics over the present samples of sig.
func CalculateSignal(sig signal.Signal) Stats {
	x := sig.Compact()
	s := calculate(x)
	s.Dropped = sig.Len() - len(x)
	return s
}

func calculate(x []float64) Stats {
	n := len(x)
	if n == 0 {
		return Stats{RMS_dB: core.LinearToDBFloor(0)}
	}

	nf := float64(n)
	energy := floats.Dot(x, x)
	rms := math.Sqrt(energy / nf)
	mean, variance := stat.PopMeanVariance(x, nil)
	maxPos, minPos := floats.MaxIdx(x), floats.MinIdx(x)

	s := Stats{
		Length:        n,
		DC:            mean,
		RMS:           rms,
		RMS_dB:        core.LinearToDBFloor(rms),
		Max:           x[maxPos],
		MaxPos:        maxPos,
		Min:           x[minPos],
		MinPos:        minPos,
		Peak:          math.Max(math.Abs(x[maxPos]), math.Abs(x[minPos])),
		Range:         x[maxPos] - x[minPos],
		Energy:        energy,
		Power:         energy / nf,
		ZeroCrossings: zeroCrossings(x),
		Variance:      variance,
		StdDev:        math.Sqrt(variance),
	}
	if rms > 0 {
		s.CrestFactor = s.Peak / rms
	}
	if variance > 0 {
		if n >= 3 {
			s.Skewness = stat.Skew(x, nil)
		}
		if n >= 4 {
			s.Kurtosis = stat.ExKurtosis(x, nil)
		}
	}
	return s
}

// RMS returns the root-mean-square of the finite samples.
func RMS(values []float64) float64 {
	return math.Sqrt(Power(values))
}

// Power returns the mean square of the finite samples.
func Power(values []float64) float64 {
	x := core.Finite(values)
	if len(x) == 0 {
		return 0
	}
	return floats.Dot(x, x) / float64(len(x))
}

// DC returns the mean of the finite samples.
func DC(values []float64) float64 {
	x := core.Finite(values)
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// Peak returns the largest absolute finite sample.
func Peak(values []float64) float64 {
	var peak float64
	for _, v := range values {
		if core.IsFinite(v) {
			peak = math.Max(peak, math.Abs(v))
		}
	}
	return peak
}

// CrestFactor returns Peak/RMS, or 0 when RMS is zero.
func CrestFactor(values []float64) float64 {
	r := RMS(values)
	if r == 0 {
		return 0
	}
	return Peak(values) / r
}

// ZeroCrossings counts sign changes between consecutive finite samples.
func ZeroCrossings(values []float64) int {
	return zeroCrossings(core.Finite(values))
}

func zeroCrossings(x []float64) int {
	var count int
	for i := 1; i < len(x); i++ {
		if x[i-1]*x[i] < 0 {
			count++
		}
	}
	return count
}

// SNR returns 10*log10(P_ref / P_err) in dB, where the error is test minus
// reference over their common finite prefix. ok is false when the inputs do
// not overlap or the reference has no power; a perfect match yields +Inf.
func SNR(reference, test []float64) (db float64, ok bool) {
	n := min(len(reference), len(test))
	var ps, pe float64
	var used int
	for i := range n {
		r, y := reference[i], test[i]
		if !core.IsFinite(r) || !core.IsFinite(y) {
			continue
		}
		ps += r * r
		pe += (y - r) * (y - r)
		used++
	}
	if used == 0 || ps == 0 {
		return 0, false
	}
	if pe == 0 {
		return math.Inf(1), true
	}
	return 10 * math.Log10(ps/pe), true
}
