package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// Errors returned by the generator.
var (
	ErrInvalidSampleRate = errors.New("signal: sample rate must be positive and finite")
	ErrInvalidDuration   = errors.New("signal: duration must be non-negative and finite")
	ErrUnknownWaveform   = errors.New("signal: unknown waveform")
)

// Waveform identifies a basis function.
type Waveform int

const (
	WaveformSine Waveform = iota
	WaveformSquare
	WaveformTriangle
	WaveformSawtooth
	WaveformHarmonic
	WaveformImpulse
	WaveformStep
	WaveformNoise

	numWaveforms
)

var waveformNames = [numWaveforms]string{
	WaveformSine:     "sine",
	WaveformSquare:   "square",
	WaveformTriangle: "triangle",
	WaveformSawtooth: "sawtooth",
	WaveformHarmonic: "harmonic",
	WaveformImpulse:  "impulse",
	WaveformStep:     "step",
	WaveformNoise:    "noise",
}

// String returns the lower-case waveform name.
func (w Waveform) String() string {
	if w < 0 || w >= numWaveforms {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

// ParseWaveform resolves a waveform name, case-insensitively.
func ParseWaveform(name string) (Waveform, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for w, n := range waveformNames {
		if n == name {
			return Waveform(w), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWaveform, name)
}

// Waveforms returns every supported waveform in declaration order.
func Waveforms() []Waveform {
	out := make([]Waveform, numWaveforms)
	for i := range out {
		out[i] = Waveform(i)
	}
	return out
}

// Params describes one generated signal.
type Params struct {
	Amplitude  float64
	Frequency  float64 // Hz
	Phase      float64 // radians
	DCOffset   float64
	SampleRate float64 // Hz
	Duration   float64 // seconds
	// Harmonics weights the 2nd..5th harmonic of WaveformHarmonic.
	Harmonics [4]float64
}

// DefaultParams returns a 1 s, 5 Hz, unit-amplitude sine setup at 1 kHz.
func DefaultParams() Params {
	return Params{
		Amplitude:  1,
		Frequency:  5,
		SampleRate: 1000,
		Duration:   1,
		Harmonics:  [4]float64{1.0 / 2, 1.0 / 3, 1.0 / 4, 1.0 / 5},
	}
}

// SampleCount returns floor(SampleRate*Duration).
func (p Params) SampleCount() int {
	return sampleCount(p.SampleRate, p.Duration)
}

func sampleCount(sampleRate, duration float64) int {
	return int(math.Floor(sampleRate * duration))
}

func validateTiming(sampleRate, duration float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	if duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}
	return nil
}

// Generator creates signals. Noise draws come from the generator's own
// random source, so a seeded generator is reproducible.
type Generator struct {
	rng *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed seeds the generator's random source.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRand injects a caller-owned random source.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// NewGenerator creates a generator. Without options it is seeded with 1.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}
	WithSeed(1)(g)
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Generate produces floor(SampleRate*Duration) samples of
//
//	x[n] = A*f(2*pi*f*t[n] + phase) + DC,  t[n] = n/SampleRate
func (g *Generator) Generate(w Waveform, p Params) (Signal, error) {
	if w < 0 || w >= numWaveforms {
		return Signal{}, fmt.Errorf("%w: %d", ErrUnknownWaveform, int(w))
	}
	if err := validateTiming(p.SampleRate, p.Duration); err != nil {
		return Signal{}, err
	}

	n := p.SampleCount()
	sig := Signal{
		Time:       TimeAxis(n, p.SampleRate),
		Values:     make([]float64, n),
		SampleRate: p.SampleRate,
	}

	omega := 2 * math.Pi * p.Frequency
	for i, t := range sig.Time {
		theta := omega*t + p.Phase
		var v float64
		switch w {
		case WaveformSine:
			v = math.Sin(theta)
		case WaveformSquare:
			v = sign(math.Sin(theta))
		case WaveformTriangle:
			v = 2 / math.Pi * math.Asin(math.Sin(theta))
		case WaveformSawtooth:
			v = sawtooth(theta)
		case WaveformHarmonic:
			v = math.Sin(theta)
			for k, weight := range p.Harmonics {
				v += weight * math.Sin(float64(k+2)*theta)
			}
		case WaveformImpulse:
			if i == 0 {
				v = 1
			}
		case WaveformStep:
			v = 1
		case WaveformNoise:
			v = g.Gaussian()
		}
		sig.Values[i] = p.Amplitude*v + p.DCOffset
	}

	return sig, nil
}

// Gaussian draws one standard normal value with the Box-Muller transform.
func (g *Generator) Gaussian() float64 {
	return BoxMuller(g.rng)
}

// BoxMuller draws one standard normal value from two uniform draws of rng.
func BoxMuller(rng *rand.Rand) float64 {
	u1 := 1 - rng.Float64() // (0, 1], keeps the log finite
	u2 := rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// sawtooth is a ramp in [-1, 1) that crosses zero rising at theta = 0.
func sawtooth(theta float64) float64 {
	x := theta/(2*math.Pi) + 0.5
	return 2*(x-math.Floor(x)) - 1
}

// Normalize scales data to target peak amplitude and returns a new slice.
// Non-finite samples are ignored when finding the peak.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		if av := math.Abs(v); av > maxAbs && !math.IsInf(av, 0) {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
