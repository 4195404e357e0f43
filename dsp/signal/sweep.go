package signal

import (
	"fmt"
	"math"
)

// SweepMode selects how the instantaneous frequency moves between the
// sweep endpoints.
type SweepMode int

const (
	SweepLinear SweepMode = iota
	SweepLog
)

// String returns "linear" or "log".
func (m SweepMode) String() string {
	switch m {
	case SweepLinear:
		return "linear"
	case SweepLog:
		return "log"
	default:
		return fmt.Sprintf("SweepMode(%d)", int(m))
	}
}

// SweepParams describes a frequency/amplitude/phase sweep.
//
// Amplitude and phase offset are interpolated linearly from their start to
// their stop values over Duration.
type SweepParams struct {
	Mode           SweepMode
	StartFreq      float64 // Hz
	StopFreq       float64 // Hz
	StartAmplitude float64
	StopAmplitude  float64
	StartPhase     float64 // radians
	StopPhase      float64 // radians
	DCOffset       float64
	SampleRate     float64 // Hz
	Duration       float64 // seconds
}

// DefaultSweepParams returns a 1 s unit-amplitude linear sweep from 1 to
// 100 Hz at 1 kHz.
func DefaultSweepParams() SweepParams {
	return SweepParams{
		Mode:           SweepLinear,
		StartFreq:      1,
		StopFreq:       100,
		StartAmplitude: 1,
		StopAmplitude:  1,
		SampleRate:     1000,
		Duration:       1,
	}
}

// logRatio reports the frequency ratio of a log sweep and whether the log
// formula applies. Equal, inverted or non-positive endpoints fall back to
// the linear formula.
func (p SweepParams) logRatio() (float64, bool) {
	if p.Mode != SweepLog || p.StartFreq <= 0 || p.StopFreq <= 0 {
		return 0, false
	}
	r := p.StopFreq / p.StartFreq
	if r <= 1 || math.Abs(p.StopFreq-p.StartFreq) < 1e-9 || p.Duration <= 0 {
		return 0, false
	}
	return r, true
}

// InstantaneousFrequency returns the sweep frequency in Hz at time t.
func (p SweepParams) InstantaneousFrequency(t float64) float64 {
	if r, ok := p.logRatio(); ok {
		return p.StartFreq * math.Pow(r, t/p.Duration)
	}
	if p.Duration <= 0 {
		return p.StartFreq
	}
	return p.StartFreq + (p.StopFreq-p.StartFreq)*t/p.Duration
}

// Phase returns the closed-form integral of 2*pi times the instantaneous
// frequency from 0 to t.
//
//	linear: 2*pi*(f0*t + k*t^2/2),          k = (f1-f0)/T
//	log:    2*pi*f0*T/ln(r) * (r^(t/T) - 1), r = f1/f0
func (p SweepParams) Phase(t float64) float64 {
	if r, ok := p.logRatio(); ok {
		T := p.Duration
		return 2 * math.Pi * p.StartFreq * T / math.Log(r) * (math.Pow(r, t/T) - 1)
	}
	k := 0.0
	if p.Duration > 0 {
		k = (p.StopFreq - p.StartFreq) / p.Duration
	}
	return 2 * math.Pi * (p.StartFreq*t + 0.5*k*t*t)
}

// Sweep generates floor(SampleRate*Duration) samples of a sine sweep.
func Sweep(p SweepParams) (Signal, error) {
	if err := validateTiming(p.SampleRate, p.Duration); err != nil {
		return Signal{}, err
	}

	n := sampleCount(p.SampleRate, p.Duration)
	sig := Signal{
		Time:       TimeAxis(n, p.SampleRate),
		Values:     make([]float64, n),
		SampleRate: p.SampleRate,
	}

	for i, t := range sig.Time {
		frac := 0.0
		if p.Duration > 0 {
			frac = t / p.Duration
		}
		amp := p.StartAmplitude + (p.StopAmplitude-p.StartAmplitude)*frac
		offset := p.StartPhase + (p.StopPhase-p.StartPhase)*frac
		sig.Values[i] = amp*math.Sin(p.Phase(t)+offset) + p.DCOffset
	}

	return sig, nil
}
