package polyroot

import (
	"math"
	"math/cmplx"
	"testing"
)

func almostEqual(valA, valB, tol float64) bool {
	if valA == valB {
		return true
	}

	diff := math.Abs(valA - valB)
	if tol > 0 && tol < 1 {
		mag := math.Max(math.Abs(valA), math.Abs(valB))
		if mag > 1 {
			return diff/mag < tol
		}
	}

	return diff < tol
}

func TestDurandKerner_Quadratic(t *testing.T) {
	// z^2 - 3z + 2 = (z-1)(z-2), roots at 1 and 2
	coeff := []complex128{1, -3, 2}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}

	r := [2]float64{real(roots[0]), real(roots[1])}
	if r[0] > r[1] {
		r[0], r[1] = r[1], r[0]
	}

	if !almostEqual(r[0], 1.0, 1e-10) || !almostEqual(r[1], 2.0, 1e-10) {
		t.Errorf("expected roots {1,2}, got {%v, %v}", r[0], r[1])
	}
}

func TestDurandKerner_Quartic(t *testing.T) {
	// (z^2 - 1)(z^2 - 4) = z^4 - 5z^2 + 4, roots: -2, -1, 1, 2
	coeff := []complex128{1, 0, -5, 0, 4}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 4 {
		t.Fatalf("expected 4 roots, got %d", len(roots))
	}

	for i, r := range roots {
		val := PolyEval(coeff, r)
		if cmplx.Abs(val) > 1e-8 {
			t.Errorf("root %d: p(%v) = %v, expected ~0", i, r, val)
		}
	}
}

func TestDurandKerner_ConjugatePairRoots(t *testing.T) {
	// z^4 + 1 has roots at e^{i*pi/4 * (2k+1)}, k=0..3
	coeff := []complex128{1, 0, 0, 0, 1}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 4 {
		t.Fatalf("expected 4 roots, got %d", len(roots))
	}

	for i, r := range roots {
		if !almostEqual(cmplx.Abs(r), 1.0, 1e-9) {
			t.Errorf("root %d: |r|=%v, expected 1.0", i, cmplx.Abs(r))
		}
	}
}

func TestDurandKerner_ClusteredRoots(t *testing.T) {
	// (z - 0.9)^2 * (z - 0.8)^2 - two double roots
	r1, r2 := 0.9, 0.8
	c4 := complex(1, 0)
	c3 := complex(-2*(r1+r2), 0)
	c2 := complex(r1*r1+4*r1*r2+r2*r2, 0)
	c1 := complex(-2*r1*r2*(r1+r2), 0)
	c0 := complex(r1*r1*r2*r2, 0)
	coeff := []complex128{c4, c3, c2, c1, c0}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	for i, r := range roots {
		val := PolyEval(coeff, r)
		if cmplx.Abs(val) > 1e-6 {
			t.Errorf("clustered root %d: p(%v) = %v, expected ~0", i, r, val)
		}
	}
}

func TestPolyEval(t *testing.T) {
	// p(z) = 2z^3 - 3z + 5, p(2) = 16 - 6 + 5 = 15
	coeff := []complex128{2, 0, -3, 5}

	val := PolyEval(coeff, 2)
	if !almostEqual(real(val), 15, 1e-12) || !almostEqual(imag(val), 0, 1e-12) {
		t.Errorf("PolyEval: expected 15, got %v", val)
	}
}

// ============================================================
// Durand-Kerner stress tests
// ============================================================

func TestDurandKerner_UnitCircleRoots(t *testing.T) {
	// z^4 - 1, roots: 1, -1, i, -i
	coeff := []complex128{1, 0, 0, 0, -1}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	for i, r := range roots {
		if !almostEqual(cmplx.Abs(r), 1.0, 1e-8) {
			t.Errorf("root %d: |r|=%v, expected 1.0", i, cmplx.Abs(r))
		}

		val := PolyEval(coeff, r)
		if cmplx.Abs(val) > 1e-7 {
			t.Errorf("root %d: p(r) = %v, expected ~0", i, val)
		}
	}
}

func TestDurandKerner_LargeCoeffRange(t *testing.T) {
	// Polynomial with very different coefficient magnitudes
	coeff := []complex128{1e6, 0, 1e-3, 0, 1e6}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Skipf("large coefficient range: %v (known limitation)", err)
		return
	}

	for i, r := range roots {
		val := PolyEval(coeff, r)

		residual := cmplx.Abs(val) / 1e6
		if residual > 1e-4 {
			t.Errorf("root %d: relative residual = %e", i, residual)
		}
	}
}

func TestEval(t *testing.T) {
	// p(s) = s^2 + 2s + 5 at s = j: -1 + 2j + 5
	got := Eval([]float64{1, 2, 5}, 1i)
	if got != complex(4, 2) {
		t.Fatalf("Eval = %v, want (4+2i)", got)
	}
	if Eval(nil, 3) != 0 {
		t.Fatal("Eval(nil) should be 0")
	}
}

func TestMulPow(t *testing.T) {
	// (x+1)(x-1) = x^2 - 1
	got := Mul([]float64{1, 1}, []float64{1, -1})
	want := []float64{1, 0, -1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Mul = %v, want %v", got, want)
		}
	}

	// (x+1)^3 = x^3 + 3x^2 + 3x + 1
	got = Pow([]float64{1, 1}, 3)
	want = []float64{1, 3, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Pow = %v, want %v", got, want)
		}
	}

	if p := Pow([]float64{2, 3}, 0); len(p) != 1 || p[0] != 1 {
		t.Fatalf("Pow(p, 0) = %v, want [1]", p)
	}
}

func TestRoots(t *testing.T) {
	// 0*s^3 + s^2 + s = s(s+1): leading zero ignored, one root at 0.
	roots, err := Roots([]float64{0, 1, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %v", roots)
	}
	if roots[0] != 0 {
		t.Errorf("roots[0] = %v, want 0", roots[0])
	}
	if imag(roots[1]) != 0 || !almostEqual(real(roots[1]), -1, 1e-10) {
		t.Errorf("roots[1] = %v, want -1", roots[1])
	}

	// s^2 + 2s + 5 has roots -1 +/- 2j.
	roots, err = Roots([]float64{1, 2, 5})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range roots {
		if !almostEqual(real(r), -1, 1e-10) || !almostEqual(math.Abs(imag(r)), 2, 1e-10) {
			t.Errorf("root %v, want -1 +/- 2j", r)
		}
	}

	if roots, err := Roots([]float64{3}); err != nil || len(roots) != 0 {
		t.Fatalf("constant: roots=%v err=%v", roots, err)
	}
	if _, err := Roots([]float64{0, 0}); err == nil {
		t.Fatal("expected error for zero polynomial")
	}
}
