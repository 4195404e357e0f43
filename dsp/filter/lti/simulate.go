package lti

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-siglab/dsp/filter/fir"
	"github.com/cwbudde/algo-siglab/internal/polyroot"
)

// ErrInvalidSampleRate is returned by the bilinear discretization for a
// non-positive sample rate.
var ErrInvalidSampleRate = errors.New("lti: sample rate must be positive")

// Simulate drives the difference equation
//
//	a[0]y[n] = sum_k b[k]x[n-k] - sum_{k>=1} a[k]y[n-k]
//
// using Num as b and Den as a directly. This is a coarse stand-in for the
// continuous dynamics and only tracks them when the implied sample period is
// short compared with the system's time constants.
func (tf *TransferFunction) Simulate(input []float64) []float64 {
	return difference(tf.Num, tf.Den, input)
}

// StepResponse simulates n samples of a unit step.
func (tf *TransferFunction) StepResponse(n int) []float64 {
	x := make([]float64, max(0, n))
	for i := range x {
		x[i] = 1
	}
	return tf.Simulate(x)
}

// ImpulseResponse simulates n samples of a unit impulse.
func (tf *TransferFunction) ImpulseResponse(n int) []float64 {
	x := make([]float64, max(0, n))
	if len(x) > 0 {
		x[0] = 1
	}
	return tf.Simulate(x)
}

// Discrete is a digital filter in powers of z^-1 with A[0] == 1.
type Discrete struct {
	B []float64
	A []float64
}

// Filter runs the digital filter over input from rest.
func (d Discrete) Filter(input []float64) []float64 {
	return difference(d.B, d.A, input)
}

// Bilinear maps H(s) to H(z) with s = 2*fs*(z-1)/(z+1).
func (tf *TransferFunction) Bilinear(sampleRate float64) (Discrete, error) {
	if !(sampleRate > 0) {
		return Discrete{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	k := 2 * sampleRate
	num := polyroot.Trim(tf.Num)
	order := max(len(num), len(tf.Den)) - 1

	b := substitute(num, k, order)
	a := substitute(tf.Den, k, order)
	a0 := a[0]
	for i := range a {
		a[i] /= a0
	}
	for i := range b {
		b[i] /= a0
	}
	return Discrete{B: b, A: a}, nil
}

// SimulateBilinear discretizes tf at sampleRate and filters input.
func (tf *TransferFunction) SimulateBilinear(input []float64, sampleRate float64) ([]float64, error) {
	d, err := tf.Bilinear(sampleRate)
	if err != nil {
		return nil, err
	}
	return d.Filter(input), nil
}

// substitute returns p(k(z-1)/(z+1)) * (z+1)^order as order+1 coefficients
// in descending powers of z.
func substitute(p []float64, k float64, order int) []float64 {
	out := make([]float64, order+1)
	deg := len(p) - 1
	for i, c := range p {
		pow := deg - i
		term := polyroot.Mul(polyroot.Pow([]float64{1, -1}, pow), polyroot.Pow([]float64{1, 1}, order-pow))
		scale := c
		for range pow {
			scale *= k
		}
		for j, v := range term {
			out[j] += scale * v
		}
	}
	return out
}

// difference evaluates the direct-form recursion; the feed-forward part runs
// through an FIR delay line.
func difference(b, a, input []float64) []float64 {
	out := make([]float64, len(input))
	if len(a) == 0 || a[0] == 0 {
		return out
	}
	ff := fir.New(b)
	for n, x := range input {
		acc := ff.ProcessSample(x)
		for k := 1; k < len(a) && k <= n; k++ {
			acc -= a[k] * out[n-k]
		}
		out[n] = acc / a[0]
	}
	return out
}
