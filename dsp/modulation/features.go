package modulation

import (
	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/dsp/spectrum"
	frequencystats "github.com/cwbudde/algo-siglab/stats/frequency"
	timestats "github.com/cwbudde/algo-siglab/stats/time"
)

// Features summarizes a (possibly received) waveform.
type Features struct {
	RMS           float64
	Power         float64 // mean square
	Bandwidth     float64 // Hz spanned by bins at or above peak/sqrt2
	PeakFrequency float64 // Hz
	SNRdB         float64
	SNRValid      bool // false without a usable reference
}

// ExtractFeatures measures x. The spectrum comes from [spectrum.ComputeFFT]
// with opts applied (e.g. core.WithMaxSamples); reference, when non-nil, is
// the clean signal the SNR is measured against. Non-finite samples are
// ignored throughout.
func ExtractFeatures(x, reference []float64, sampleRate float64, opts ...core.ProcessorOption) Features {
	res := spectrum.ComputeFFT(x, sampleRate, opts...)
	f := Features{
		RMS:           timestats.RMS(x),
		Power:         timestats.Power(x),
		Bandwidth:     frequencystats.OccupiedBandwidth(res.Frequencies, res.Values),
		PeakFrequency: frequencystats.PeakFrequency(res.Frequencies, res.Values),
	}
	if reference != nil {
		f.SNRdB, f.SNRValid = timestats.SNR(reference, x)
	}
	return f
}
