package fault

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-siglab/dsp/signal"
)

// Injector applies fault specs. Stochastic kinds draw from the injector's
// own random source. An Injector is not safe for concurrent use.
type Injector struct {
	rng *rand.Rand
	log *zap.Logger
}

// Option configures an Injector.
type Option func(*Injector)

// WithSeed seeds the random source.
func WithSeed(seed uint64) Option {
	return func(in *Injector) {
		in.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRand injects a caller-owned random source.
func WithRand(rng *rand.Rand) Option {
	return func(in *Injector) {
		if rng != nil {
			in.rng = rng
		}
	}
}

// WithLogger sets the logger that receives one debug entry per applied
// fault.
func WithLogger(log *zap.Logger) Option {
	return func(in *Injector) {
		if log != nil {
			in.log = log
		}
	}
}

// NewInjector creates an injector seeded with 1 and a no-op logger.
func NewInjector(opts ...Option) *Injector {
	in := &Injector{log: zap.NewNop()}
	WithSeed(1)(in)
	for _, opt := range opts {
		if opt != nil {
			opt(in)
		}
	}
	return in
}

// Apply returns a corrupted copy of sig. The input is never modified.
//
// Active kinds run in enumeration order. Severities are clamped to
// [0, MaxSeverity]; use [Spec.Validate] to reject them instead.
func (in *Injector) Apply(sig signal.Signal, spec Spec) signal.Signal {
	out := sig.Clone()
	if len(out.Time) != len(out.Values) {
		out.Time = signal.TimeAxis(len(out.Values), out.SampleRate)
	}
	if len(out.Values) == 0 {
		return out
	}

	for k := range numKinds {
		set := spec[k]
		if !set.Active() {
			continue
		}
		freq := set.Frequency
		if freq <= 0 {
			freq = kinds[k].defaultFreq
		}
		p := params{magnitude: set.Magnitude(), freq: freq}
		kinds[k].apply(in, &out, p)

		in.log.Debug("fault applied",
			zap.Stringer("kind", k),
			zap.Int("severity", set.Severity),
			zap.Float64("magnitude", p.magnitude),
			zap.Float64("frequency", freq),
			zap.Int("valid", out.ValidCount()),
		)
	}
	return out
}

func (in *Injector) gaussian() float64 {
	return signal.BoxMuller(in.rng)
}

func (in *Injector) chance(p float64) bool {
	return in.rng.Float64() < p
}
