package vowel

import (
	"cmp"
	"math"
	"slices"

	"github.com/cwbudde/algo-siglab/dsp/core"
)

// Formant search limits.
const (
	F1Cutoff     = 900.0  // Hz; F1 is the strongest peak below this
	BandLimit    = 3000.0 // Hz; peaks are only searched below this
	PeakDistance = 3      // bins; a peak is >= every neighbour this close
	MinMagnitude = 1e-6
)

// Formants holds the two dominant resonances in Hz, F1 < F2. A zero value
// means no usable peak was found.
type Formants struct {
	F1 float64
	F2 float64
}

// ExtractFormants finds F1 and F2 in a single-sided magnitude spectrum of
// len(mag) bins, where bin k sits at k*sampleRate/(2*len(mag)).
func ExtractFormants(mag []float64, sampleRate float64) Formants {
	if len(mag) == 0 || !(sampleRate > 0) {
		return Formants{}
	}
	binHz := sampleRate / float64(2*len(mag))
	limit := min(len(mag), int(math.Ceil(BandLimit/binHz)))

	peaks := findPeaks(mag[:limit])
	slices.SortStableFunc(peaks, func(a, b int) int {
		return cmp.Compare(mag[b], mag[a])
	})

	first := -1
	for i, k := range peaks {
		if float64(k)*binHz < F1Cutoff {
			first = i
			break
		}
	}
	if first < 0 {
		return Formants{}
	}
	f1 := float64(peaks[first]) * binHz

	f2 := 0.0
	for i, k := range peaks {
		if i != first && float64(k)*binHz > f1 {
			f2 = float64(k) * binHz
			break
		}
	}
	if f2 == 0 {
		for i, k := range peaks {
			if i != first {
				f2 = float64(k) * binHz
				break
			}
		}
	}
	if f2 != 0 && f2 < f1 {
		f1, f2 = f2, f1
	}
	return Formants{F1: f1, F2: f2}
}

// findPeaks returns the bins that are at least as large as every neighbour
// within PeakDistance and above MinMagnitude.
func findPeaks(mag []float64) []int {
	var peaks []int
	for k, v := range mag {
		if !core.IsFinite(v) || v <= MinMagnitude {
			continue
		}
		peak := true
		for j := max(0, k-PeakDistance); j <= min(len(mag)-1, k+PeakDistance); j++ {
			if j != k && mag[j] > v {
				peak = false
				break
			}
		}
		if peak {
			peaks = append(peaks, k)
		}
	}
	return peaks
}
