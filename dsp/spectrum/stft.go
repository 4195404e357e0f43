package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/dsp/window"
)

// Default STFT framing.
const (
	DefaultSTFTWindow    = 256
	DefaultSTFTMaxFrames = 200
)

// STFTConfig configures framing for [STFT].
type STFTConfig struct {
	WindowSize int // samples per frame
	HopSize    int // samples between frame starts; 0 means WindowSize/2
	MaxFrames  int // hard ceiling on emitted frames; 0 means DefaultSTFTMaxFrames
}

// DefaultSTFTConfig returns a 256-sample window with 50% overlap.
func DefaultSTFTConfig() STFTConfig {
	return STFTConfig{
		WindowSize: DefaultSTFTWindow,
		HopSize:    DefaultSTFTWindow / 2,
		MaxFrames:  DefaultSTFTMaxFrames,
	}
}

// STFTResult is a spectrogram. Power[f][k] is the power of bin k in the
// frame starting at Times[f].
type STFTResult struct {
	Times       []float64
	Frequencies []float64
	Power       [][]float64
}

// Frames returns the number of frames.
func (r STFTResult) Frames() int { return len(r.Power) }

// STFT computes a Hann-windowed short-time spectrum of values.
//
// Each frame yields WindowSize/2 single-sided bins with power |X[k]|^2/W^2.
// Frames start every HopSize samples; a signal shorter than one window
// produces a single zero-padded frame. At most MaxFrames frames are emitted.
// Non-finite samples are removed first.
func STFT(values []float64, sampleRate float64, cfg STFTConfig) (STFTResult, error) {
	if cfg.WindowSize < 2 {
		return STFTResult{}, fmt.Errorf("stft: window size must be >= 2: %d", cfg.WindowSize)
	}
	if cfg.HopSize < 0 {
		return STFTResult{}, fmt.Errorf("stft: hop size must be >= 0: %d", cfg.HopSize)
	}
	if !(sampleRate > 0) {
		return STFTResult{}, fmt.Errorf("stft: sample rate must be > 0: %v", sampleRate)
	}
	hop := cfg.HopSize
	if hop == 0 {
		hop = max(1, cfg.WindowSize/2)
	}
	maxFrames := cfg.MaxFrames
	if maxFrames <= 0 {
		maxFrames = DefaultSTFTMaxFrames
	}

	x := core.Finite(values)
	w := cfg.WindowSize
	bins := w / 2

	res := STFTResult{Frequencies: make([]float64, bins)}
	for k := range res.Frequencies {
		res.Frequencies[k] = float64(k) * sampleRate / float64(w)
	}
	if len(x) == 0 {
		return res, nil
	}

	frames := 1
	if len(x) > w {
		frames = (len(x)-w)/hop + 1
	}
	frames = min(frames, maxFrames)

	win := window.Generate(window.TypeHann, w)
	cosTab, sinTab := twiddleTable(w)
	frame := make([]float64, w)
	norm := 1 / (float64(w) * float64(w))

	res.Times = make([]float64, frames)
	res.Power = make([][]float64, frames)
	for f := range frames {
		start := f * hop
		res.Times[f] = float64(start) / sampleRate
		for i := range frame {
			frame[i] = 0
			if start+i < len(x) {
				frame[i] = x[start+i] * win[i]
			}
		}
		res.Power[f] = directDFTPower(frame, bins, cosTab, sinTab, norm)
	}
	return res, nil
}

// directDFTPower evaluates the first bins DFT bins of frame by direct
// summation and returns their scaled power.
func directDFTPower(frame []float64, bins int, cosTab, sinTab []float64, norm float64) []float64 {
	w := len(frame)
	out := make([]float64, bins)
	for k := range bins {
		var re, im float64
		idx := 0
		for _, v := range frame {
			re += v * cosTab[idx]
			im -= v * sinTab[idx]
			idx += k
			if idx >= w {
				idx -= w
			}
		}
		out[k] = (re*re + im*im) * norm
	}
	return out
}

func twiddleTable(n int) (cosTab, sinTab []float64) {
	cosTab = make([]float64, n)
	sinTab = make([]float64, n)
	for i := range n {
		angle := 2 * math.Pi * float64(i) / float64(n)
		cosTab[i] = math.Cos(angle)
		sinTab[i] = math.Sin(angle)
	}
	return cosTab, sinTab
}
