// Package polyroot provides polynomial evaluation, multiplication and root
// finding for the transfer-function code.
//
// Coefficients are in descending power order throughout:
// c[0]*x^n + c[1]*x^(n-1) + ... + c[n].
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrDegeneratePolynomial is returned when a polynomial has no roots to find
// (degree zero, all-zero coefficients) or the iteration fails to converge.
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// RealTol is the relative imaginary magnitude below which a root is reported
// as real.
const RealTol = 1e-9

// Eval evaluates a real-coefficient polynomial at a complex point by Horner's
// method. An empty polynomial evaluates to zero.
func Eval(coeff []float64, x complex128) complex128 {
	var v complex128
	for _, c := range coeff {
		v = v*x + complex(c, 0)
	}
	return v
}

// PolyEval is [Eval] for complex coefficients.
func PolyEval(coeff []complex128, x complex128) complex128 {
	var v complex128
	for _, c := range coeff {
		v = v*x + c
	}
	return v
}

// Mul returns the product of two polynomials.
func Mul(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]float64, len(a)+len(b)-1)
	for i, x := range a {
		for j, y := range b {
			out[i+j] += x * y
		}
	}
	return out
}

// Pow returns p raised to a non-negative integer power.
func Pow(p []float64, n int) []float64 {
	out := []float64{1}
	for range n {
		out = Mul(out, p)
	}
	return out
}

// Trim drops leading zero coefficients. The result aliases coeff.
func Trim(coeff []float64) []float64 {
	for len(coeff) > 0 && coeff[0] == 0 {
		coeff = coeff[1:]
	}
	return coeff
}

// Roots returns every root of a real-coefficient polynomial. Leading zeros
// are ignored, trailing zeros become roots at the origin, and roots whose
// imaginary part is negligible are returned as exactly real.
func Roots(coeff []float64) ([]complex128, error) {
	coeff = Trim(coeff)
	if len(coeff) == 0 {
		return nil, ErrDegeneratePolynomial
	}

	var zeros int
	for len(coeff) > 1 && coeff[len(coeff)-1] == 0 {
		coeff = coeff[:len(coeff)-1]
		zeros++
	}
	roots := make([]complex128, zeros, len(coeff)-1+zeros)
	if len(coeff) == 1 {
		return roots, nil
	}

	c := make([]complex128, len(coeff))
	for i, v := range coeff {
		c[i] = complex(v, 0)
	}
	found, err := DurandKerner(c)
	if err != nil {
		return nil, err
	}
	for _, r := range found {
		if math.Abs(imag(r)) <= RealTol*math.Max(1, math.Abs(real(r))) {
			r = complex(real(r), 0)
		}
		roots = append(roots, r)
	}
	return roots, nil
}

// DurandKerner finds all roots of a polynomial with the Durand-Kerner
// (Weierstrass) simultaneous iteration.
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 || coeff[0] == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1
	lead := coeff[0]
	norm := make([]complex128, len(coeff))
	radius := 1.0
	for i, c := range coeff {
		norm[i] = c / lead
		if i > 0 {
			radius = math.Max(radius, cmplx.Abs(norm[i]))
		}
	}

	// Start on a slightly spiralled circle so no two guesses coincide and
	// none sits on the real axis.
	roots := make([]complex128, n)
	for i := range roots {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		roots[i] = cmplx.Rect(radius*(1+0.1*float64(i)/float64(n)), angle)
	}

	const (
		maxIter = 500
		tol     = 1e-12
	)
	for range maxIter {
		maxDelta := 0.0
		for i := range roots {
			den := complex(1, 0)
			for j := range roots {
				if i != j {
					den *= roots[i] - roots[j]
				}
			}
			if den == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}
			delta := PolyEval(norm, roots[i]) / den
			roots[i] -= delta
			maxDelta = math.Max(maxDelta, cmplx.Abs(delta))
		}
		if maxDelta < tol {
			return roots, nil
		}
	}

	for _, r := range roots {
		if cmplx.Abs(PolyEval(norm, r)) >= 1e-6 {
			return nil, ErrDegeneratePolynomial
		}
	}
	return roots, nil
}
