package core

// ProcessorConfig defines settings shared by the analysis entry points.
type ProcessorConfig struct {
	SampleRate float64
	// MaxSamples caps the number of input samples an analysis consumes.
	// Zero disables the cap.
	MaxSamples int
	// Accelerated routes transforms through the algo-fft backend, falling
	// back to the in-tree FFT when that backend fails.
	Accelerated bool
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the defaults used when no option is given.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 1000,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithMaxSamples caps how many leading samples an analysis reads.
func WithMaxSamples(n int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if n > 0 {
			cfg.MaxSamples = n
		}
	}
}

// WithAccelerated selects the accelerated FFT backend. If the backend
// cannot plan or run a transform, the analysis falls back to the in-tree
// radix-2 FFT without reporting an error.
func WithAccelerated() ProcessorOption {
	return func(cfg *ProcessorConfig) {
		cfg.Accelerated = true
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Truncate returns the leading part of values allowed by MaxSamples.
// The returned slice aliases values.
func (cfg ProcessorConfig) Truncate(values []float64) []float64 {
	if cfg.MaxSamples > 0 && len(values) > cfg.MaxSamples {
		return values[:cfg.MaxSamples]
	}
	return values
}
