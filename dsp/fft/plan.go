package fft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Plan is a reusable transform of a fixed power-of-two size.
type Plan struct {
	size  int
	accel *algofft.Plan[complex128]
}

// PlanOption configures a Plan.
type PlanOption func(*planConfig)

type planConfig struct {
	accelerated bool
}

// WithAccelerated delegates the transform to the algo-fft backend.
func WithAccelerated() PlanOption {
	return func(c *planConfig) {
		c.accelerated = true
	}
}

// NewPlan creates a transform plan for size n.
func NewPlan(n int, opts ...PlanOption) (*Plan, error) {
	if n <= 0 {
		return nil, fmt.Errorf("fft: plan size must be > 0: %d", n)
	}
	if err := checkLength(n); err != nil {
		return nil, err
	}

	var cfg planConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	p := &Plan{size: n}
	if cfg.accelerated {
		accel, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("fft: accelerated plan: %w", err)
		}
		p.accel = accel
	}
	return p, nil
}

// Size returns the transform length.
func (p *Plan) Size() int { return p.size }

// Accelerated reports whether the plan uses the algo-fft backend.
func (p *Plan) Accelerated() bool { return p.accel != nil }

// Forward writes the forward DFT of src into dst. Both slices must have the
// plan size.
func (p *Plan) Forward(dst, src []complex128) error {
	if err := p.checkBuffers(dst, src); err != nil {
		return err
	}
	if p.accel != nil {
		return p.accel.Forward(dst, src)
	}
	copy(dst, src)
	transform(dst, false)
	return nil
}

// Inverse writes the inverse DFT of src, scaled by 1/N, into dst.
func (p *Plan) Inverse(dst, src []complex128) error {
	if err := p.checkBuffers(dst, src); err != nil {
		return err
	}
	if p.accel != nil {
		return p.accel.Inverse(dst, src)
	}
	copy(dst, src)
	transform(dst, true)
	scale := complex(1/float64(p.size), 0)
	for i := range dst {
		dst[i] *= scale
	}
	return nil
}

func (p *Plan) checkBuffers(dst, src []complex128) error {
	if len(dst) != p.size || len(src) != p.size {
		return fmt.Errorf("fft: buffer length mismatch: dst=%d src=%d plan=%d", len(dst), len(src), p.size)
	}
	return nil
}
