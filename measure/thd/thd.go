// Package thd measures total harmonic distortion of a tone.
package thd

import (
	"math"

	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/dsp/signal"
	"github.com/cwbudde/algo-siglab/dsp/spectrum"
	"github.com/cwbudde/algo-siglab/dsp/window"
)

const (
	defaultMaxHarmonics = 10
	// Half-width of the Hann main lobe in bins.
	defaultCaptureBins = 2
)

// Config holds THD measurement parameters. Zero values select defaults.
type Config struct {
	Fundamental  float64 // Hz; 0 picks the strongest bin in range
	LowerFreq    float64 // Hz; bins below are ignored (DC is always skipped)
	UpperFreq    float64 // Hz; 0 means Nyquist
	MaxHarmonics int     // harmonics 2..MaxHarmonics+1 are measured
	CaptureBins  int     // bins summed either side of each harmonic
}

// Result holds THD measurement results. Ratios are relative to the
// fundamental level.
//
//nolint:revive
type Result struct {
	FundamentalFreq  float64
	FundamentalLevel float64 // summed magnitude of the capture window
	Harmonics        []float64
	THD              float64
	THDN             float64
	THD_dB           float64
	THDN_dB          float64
	OddHD            float64
	EvenHD           float64
	Noise            float64
	SINAD            float64 // dB
}

// Analyze applies a periodic Hann window to the finite samples of values and
// measures the resulting spectrum.
func Analyze(values []float64, sampleRate float64, cfg Config) Result {
	x := core.Finite(values)
	if len(x) < 2 {
		return Result{}
	}
	window.Apply(window.TypeHann, x, window.WithPeriodic())
	return FromSpectrum(spectrum.ComputeFFT(x, sampleRate), cfg)
}

// AnalyzeSignal is [Analyze] over the present samples of sig.
func AnalyzeSignal(sig signal.Signal, cfg Config) Result {
	return Analyze(sig.Compact(), sig.SampleRate, cfg)
}

// FromSpectrum measures a magnitude spectrum as returned by
// [spectrum.ComputeFFT].
func FromSpectrum(res spectrum.Result, cfg Config) Result {
	cfg = normalize(cfg)
	mag := res.Values
	binHz := res.BinWidth()
	if len(mag) < 2 || !(binHz > 0) {
		return Result{}
	}
	maxBin := len(mag) - 1

	lower := core.ClampInt(int(math.Round(cfg.LowerFreq/binHz)), 1, maxBin)
	upper := maxBin
	if cfg.UpperFreq > 0 {
		upper = core.ClampInt(int(math.Round(cfg.UpperFreq/binHz)), lower, maxBin)
	}

	fb := lower + spectrum.PeakBin(mag[lower:upper+1])
	if cfg.Fundamental > 0 {
		fb = core.ClampInt(int(math.Round(cfg.Fundamental/binHz)), lower, upper)
	}
	capture := min(cfg.CaptureBins, fb/2)

	out := Result{FundamentalFreq: float64(fb) * binHz}
	fundamental := level(mag, fb, capture)
	if fundamental <= 0 {
		return out
	}
	out.FundamentalLevel = fundamental

	var harmonics, odd, even float64
	for k := 2; k <= cfg.MaxHarmonics+1; k++ {
		bin := k * fb
		if bin > upper {
			break
		}
		v := level(mag, bin, capture)
		harmonics += v
		if k%2 == 0 {
			even += v
		} else {
			odd += v
		}
		out.Harmonics = append(out.Harmonics, v/fundamental)
	}

	var total float64
	for _, v := range mag[lower : upper+1] {
		total += v
	}
	rest := max(0, total-fundamental)

	out.THD = harmonics / fundamental
	out.THDN = rest / fundamental
	out.OddHD = odd / fundamental
	out.EvenHD = even / fundamental
	out.Noise = max(0, rest-harmonics) / fundamental
	out.THD_dB = core.LinearToDB(out.THD)
	out.THDN_dB = core.LinearToDB(out.THDN)
	out.SINAD = math.Inf(1)
	if out.THDN > 0 {
		out.SINAD = -out.THDN_dB
	}
	return out
}

func normalize(cfg Config) Config {
	if cfg.MaxHarmonics <= 0 {
		cfg.MaxHarmonics = defaultMaxHarmonics
	}
	if cfg.CaptureBins <= 0 {
		cfg.CaptureBins = defaultCaptureBins
	}
	cfg.LowerFreq = max(0, cfg.LowerFreq)
	return cfg
}

// level sums the magnitude of the bins within capture of bin.
func level(mag []float64, bin, capture int) float64 {
	if bin < 0 || bin >= len(mag) {
		return 0
	}
	var sum float64
	for i := max(0, bin-capture); i <= min(len(mag)-1, bin+capture); i++ {
		sum += mag[i]
	}
	return sum
}
