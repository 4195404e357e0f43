// Package frequency computes descriptors of single-sided magnitude spectra.
//
// Functions take parallel frequency and magnitude slices as produced by
// spectrum.ComputeFFT, so they are independent of how the bin grid was
// built. Non-finite magnitudes are treated as zero.
package frequency

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/dsp/spectrum"
)

// Stats holds frequency-domain descriptors of a magnitude spectrum.
type Stats struct {
	BinCount          int
	Peak              float64 // largest magnitude
	PeakFrequency     float64 // Hz
	Sum               float64
	Energy            float64 // sum of squared magnitudes
	Centroid          float64 // Hz
	Spread            float64 // Hz
	Flatness          float64 // 0..1, DC bin excluded
	Rolloff           float64 // Hz below which 85% of the energy lies
	Bandwidth         float64 // Hz, interpolated -3 dB width of the peak lobe
	OccupiedBandwidth float64 // Hz, span of every bin at or above peak/sqrt2
}

// RolloffFraction is the energy fraction used for Stats.Rolloff.
const RolloffFraction = 0.85

// Calculate computes all descriptors. Slices of unequal length are truncated
// to the shorter one.
func Calculate(freqs, magnitude []float64) Stats {
	freqs, mag := align(freqs, magnitude)
	n := len(mag)
	if n == 0 {
		return Stats{}
	}

	peakBin := floats.MaxIdx(mag)
	s := Stats{
		BinCount:      n,
		Peak:          mag[peakBin],
		PeakFrequency: freqs[peakBin],
		Sum:           floats.Sum(mag),
		Energy:        floats.Dot(mag, mag),
	}
	s.Centroid = centroid(freqs, mag, s.Sum)
	s.Spread = spread(freqs, mag, s.Centroid, s.Sum)
	s.Flatness = flatness(mag)
	s.Rolloff = rolloff(freqs, mag, RolloffFraction, s.Energy)
	s.Bandwidth = bandwidth(freqs, mag, peakBin)
	s.OccupiedBandwidth = occupied(freqs, mag, mag[peakBin])
	return s
}

// CalculateResult is [Calculate] over a spectrum result.
func CalculateResult(r spectrum.Result) Stats {
	return Calculate(r.Frequencies, r.Values)
}

// PeakFrequency returns the frequency of the largest bin, or 0 for an empty
// or silent spectrum.
func PeakFrequency(freqs, magnitude []float64) float64 {
	freqs, mag := align(freqs, magnitude)
	if len(mag) == 0 {
		return 0
	}
	k := floats.MaxIdx(mag)
	if mag[k] == 0 {
		return 0
	}
	return freqs[k]
}

// Centroid returns sum(f*|X|)/sum(|X|).
func Centroid(freqs, magnitude []float64) float64 {
	freqs, mag := align(freqs, magnitude)
	if len(mag) == 0 {
		return 0
	}
	return centroid(freqs, mag, floats.Sum(mag))
}

// OccupiedBandwidth returns the distance between the lowest and highest
// frequency whose magnitude is at least peak/sqrt(2). Bins need not be
// contiguous; a single qualifying bin yields 0.
func OccupiedBandwidth(freqs, magnitude []float64) float64 {
	freqs, mag := align(freqs, magnitude)
	if len(mag) == 0 {
		return 0
	}
	return occupied(freqs, mag, floats.Max(mag))
}

// Bandwidth returns the -3 dB width of the lobe around the peak, with linear
// interpolation of the crossing points.
func Bandwidth(freqs, magnitude []float64) float64 {
	freqs, mag := align(freqs, magnitude)
	if len(mag) == 0 {
		return 0
	}
	return bandwidth(freqs, mag, floats.MaxIdx(mag))
}

// Flatness returns the spectral flatness (geometric over arithmetic mean) of
// bins 1..n-1. Any zero bin makes it 0.
func Flatness(magnitude []float64) float64 {
	return flatness(finite(magnitude))
}

// Rolloff returns the frequency below which fraction of the energy lies.
func Rolloff(freqs, magnitude []float64, fraction float64) float64 {
	freqs, mag := align(freqs, magnitude)
	if len(mag) == 0 {
		return 0
	}
	return rolloff(freqs, mag, fraction, floats.Dot(mag, mag))
}

// align truncates both slices to a common length and replaces non-finite
// magnitudes by zero.
func align(freqs, magnitude []float64) ([]float64, []float64) {
	n := min(len(freqs), len(magnitude))
	return freqs[:n], finite(magnitude[:n])
}

func finite(magnitude []float64) []float64 {
	mag := make([]float64, len(magnitude))
	for i, v := range magnitude {
		if core.IsFinite(v) {
			mag[i] = v
		}
	}
	return mag
}

func centroid(freqs, mag []float64, sum float64) float64 {
	if sum == 0 {
		return 0
	}
	return floats.Dot(freqs, mag) / sum
}

func spread(freqs, mag []float64, cent, sum float64) float64 {
	if sum == 0 {
		return 0
	}
	var acc float64
	for i, v := range mag {
		d := freqs[i] - cent
		acc += d * d * v
	}
	return math.Sqrt(acc / sum)
}

func flatness(mag []float64) float64 {
	if len(mag) < 2 {
		return 0
	}
	bins := mag[1:]
	mean := floats.Sum(bins) / float64(len(bins))
	if mean == 0 || floats.Min(bins) <= 0 {
		return 0
	}
	var logSum float64
	for _, v := range bins {
		logSum += math.Log(v)
	}
	return math.Exp(logSum/float64(len(bins))) / mean
}

func rolloff(freqs, mag []float64, fraction, total float64) float64 {
	if total == 0 {
		return 0
	}
	threshold := fraction * total
	var cum float64
	for i, v := range mag {
		cum += v * v
		if cum >= threshold {
			return freqs[i]
		}
	}
	return freqs[len(freqs)-1]
}

func occupied(freqs, mag []float64, peak float64) float64 {
	if peak <= 0 {
		return 0
	}
	threshold := peak / math.Sqrt2
	lo, hi := -1, -1
	for i, v := range mag {
		if v >= threshold {
			if lo < 0 {
				lo = i
			}
			hi = i
		}
	}
	return freqs[hi] - freqs[lo]
}

func bandwidth(freqs, mag []float64, peakBin int) float64 {
	peak := mag[peakBin]
	if peak == 0 || len(mag) < 2 {
		return 0
	}
	threshold := peak / math.Sqrt2

	lower := freqs[0]
	for i := peakBin; i >= 1; i-- {
		if mag[i-1] <= threshold && mag[i] > threshold {
			lower = interp(freqs[i-1], freqs[i], mag[i-1], mag[i], threshold)
			break
		}
	}
	upper := freqs[len(freqs)-1]
	for i := peakBin; i < len(mag)-1; i++ {
		if mag[i+1] <= threshold && mag[i] > threshold {
			upper = interp(freqs[i], freqs[i+1], mag[i], mag[i+1], threshold)
			break
		}
	}
	return math.Max(0, upper-lower)
}

// interp returns the frequency where the line through (fLow, mLow) and
// (fHigh, mHigh) reaches threshold.
func interp(fLow, fHigh, mLow, mHigh, threshold float64) float64 {
	if mHigh == mLow {
		return (fLow + fHigh) / 2
	}
	t := (threshold - mLow) / (mHigh - mLow)
	return fLow + t*(fHigh-fLow)
}
