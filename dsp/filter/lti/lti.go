package lti

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/internal/polyroot"
)

var (
	// ErrEmptyDenominator is returned for a transfer function without
	// denominator coefficients.
	ErrEmptyDenominator = errors.New("lti: empty denominator")
	// ErrZeroLeadingCoefficient is returned when Den[0] is zero.
	ErrZeroLeadingCoefficient = errors.New("lti: leading denominator coefficient is zero")
)

// TransferFunction is a rational polynomial in s. Coefficients are in
// descending power order.
type TransferFunction struct {
	Num []float64
	Den []float64
}

// New validates and copies the coefficients. An empty numerator is the zero
// system.
func New(num, den []float64) (*TransferFunction, error) {
	if len(den) == 0 {
		return nil, ErrEmptyDenominator
	}
	if den[0] == 0 {
		return nil, ErrZeroLeadingCoefficient
	}
	return &TransferFunction{Num: core.Clone(num), Den: core.Clone(den)}, nil
}

// Response returns H(jw). A denominator that evaluates to exactly zero yields
// complex infinity.
func (tf *TransferFunction) Response(w float64) complex128 {
	s := complex(0, w)
	den := polyroot.Eval(tf.Den, s)
	if den == 0 {
		return cmplx.Inf()
	}
	return polyroot.Eval(tf.Num, s) / den
}

// Evaluate returns |H(jw)| and its phase in degrees. At a pole on the
// imaginary axis the magnitude is +Inf and the phase zero.
func (tf *TransferFunction) Evaluate(w float64) (magnitude, phaseDeg float64) {
	h := tf.Response(w)
	if cmplx.IsInf(h) {
		return math.Inf(1), 0
	}
	return cmplx.Abs(h), cmplx.Phase(h) * 180 / math.Pi
}

// Order returns the denominator degree.
func (tf *TransferFunction) Order() int {
	return len(tf.Den) - 1
}

// Poles returns the roots of the denominator.
func (tf *TransferFunction) Poles() ([]complex128, error) {
	return polyroot.Roots(tf.Den)
}

// Zeros returns the roots of the numerator. A constant numerator has none.
func (tf *TransferFunction) Zeros() ([]complex128, error) {
	return polyroot.Roots(tf.Num)
}

// IsStable reports whether every pole lies strictly in the left half-plane.
func (tf *TransferFunction) IsStable() (bool, error) {
	poles, err := tf.Poles()
	if err != nil {
		return false, err
	}
	for _, p := range poles {
		if real(p) >= 0 {
			return false, nil
		}
	}
	return true, nil
}
