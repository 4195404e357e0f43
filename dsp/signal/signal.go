package signal

import (
	"github.com/cwbudde/algo-siglab/dsp/core"
)

// Signal is a uniformly sampled real-valued signal.
//
// Time and Values have equal length. Valid is either nil, meaning every
// sample is present, or has the same length as Values and marks dropped
// samples with false. Dropped samples keep a placeholder value of zero and
// are excluded by [Signal.Compact].
type Signal struct {
	Time       []float64
	Values     []float64
	Valid      []bool
	SampleRate float64
}

// FromValues wraps values into a Signal with a time axis derived from
// sampleRate. The values slice is not copied.
func FromValues(values []float64, sampleRate float64) Signal {
	return Signal{
		Time:       TimeAxis(len(values), sampleRate),
		Values:     values,
		SampleRate: sampleRate,
	}
}

// TimeAxis returns n timestamps t[i] = i/sampleRate.
func TimeAxis(n int, sampleRate float64) []float64 {
	if n <= 0 {
		return []float64{}
	}
	t := make([]float64, n)
	if sampleRate <= 0 {
		return t
	}
	for i := range t {
		t[i] = float64(i) / sampleRate
	}
	return t
}

// Len returns the number of samples, including dropped ones.
func (s Signal) Len() int {
	return len(s.Values)
}

// DT returns the sample spacing in seconds.
func (s Signal) DT() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return 1 / s.SampleRate
}

// Duration returns Len()*DT().
func (s Signal) Duration() float64 {
	return float64(s.Len()) * s.DT()
}

// IsValid reports whether sample i is present and finite.
func (s Signal) IsValid(i int) bool {
	if i < 0 || i >= len(s.Values) {
		return false
	}
	if s.Valid != nil && !s.Valid[i] {
		return false
	}
	return core.IsFinite(s.Values[i])
}

// ValidCount returns the number of present, finite samples.
func (s Signal) ValidCount() int {
	n := 0
	for i := range s.Values {
		if s.IsValid(i) {
			n++
		}
	}
	return n
}

// Compact returns the present, finite samples in order. Dropped samples are
// skipped rather than zero-filled.
func (s Signal) Compact() []float64 {
	out := make([]float64, 0, len(s.Values))
	for i, v := range s.Values {
		if s.IsValid(i) {
			out = append(out, v)
		}
	}
	return out
}

// Clone returns a deep copy of s.
func (s Signal) Clone() Signal {
	out := Signal{
		Time:       core.Clone(s.Time),
		Values:     core.Clone(s.Values),
		SampleRate: s.SampleRate,
	}
	if s.Valid != nil {
		out.Valid = make([]bool, len(s.Valid))
		copy(out.Valid, s.Valid)
	}
	return out
}

// EnsureMask allocates the validity mask if it is nil, marking every sample
// as present, and returns it.
func (s *Signal) EnsureMask() []bool {
	if s.Valid == nil {
		s.Valid = make([]bool, len(s.Values))
		for i := range s.Valid {
			s.Valid[i] = true
		}
	}
	return s.Valid
}

// Drop marks sample i as missing and zeroes its placeholder value.
func (s *Signal) Drop(i int) {
	if i < 0 || i >= len(s.Values) {
		return
	}
	s.EnsureMask()[i] = false
	s.Values[i] = 0
}
