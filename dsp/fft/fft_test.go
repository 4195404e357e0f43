package fft

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	godspfft "github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-siglab/internal/testutil"
)

func naiveDFT(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := range n {
		var sum complex128
		for j := range n {
			angle := -2 * math.Pi * float64(k*j) / float64(n)
			sum += x[j] * cmplx.Exp(complex(0, angle))
		}
		out[k] = sum
	}
	return out
}

func requireComplexNear(t *testing.T, got, want []complex128, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if cmplx.Abs(got[i]-want[i]) > tol {
			t.Fatalf("bin %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestForwardMatchesNaiveDFT(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 64, 256} {
		x := make([]complex128, n)
		noise := testutil.DeterministicNoise(uint64(n), 1, 2*n)
		for i := range x {
			x[i] = complex(noise[2*i], noise[2*i+1])
		}

		got, err := Forward(x)
		if err != nil {
			t.Fatalf("n=%d: Forward() error = %v", n, err)
		}
		requireComplexNear(t, got, naiveDFT(x), 1e-9)
	}
}

func TestInverseRoundTrip(t *testing.T) {
	x := make([]complex128, 128)
	for i := range x {
		x[i] = complex(math.Sin(float64(i)*0.3), math.Cos(float64(i)*0.7))
	}
	spec, err := Forward(x)
	if err != nil {
		t.Fatalf("Forward() error = %v", err)
	}
	back, err := Inverse(spec)
	if err != nil {
		t.Fatalf("Inverse() error = %v", err)
	}
	requireComplexNear(t, back, x, 1e-12)
}

func TestForwardRejectsNonPowerOfTwo(t *testing.T) {
	_, err := Forward(make([]complex128, 12))
	if !errors.Is(err, ErrNotPowerOfTwo) {
		t.Fatalf("err = %v, want ErrNotPowerOfTwo", err)
	}
	if _, err := Inverse(make([]complex128, 3)); !errors.Is(err, ErrNotPowerOfTwo) {
		t.Fatalf("err = %v, want ErrNotPowerOfTwo", err)
	}
}

func TestRealPadsToPowerOfTwo(t *testing.T) {
	x := testutil.DeterministicSine(50, 1000, 1, 1000)
	spec := Real(x)
	if len(spec) != 1024 {
		t.Fatalf("len = %d, want 1024", len(spec))
	}
	if len(Real(nil)) != 0 {
		t.Fatal("expected empty spectrum for empty input")
	}
}

func TestRealMatchesGonum(t *testing.T) {
	x := testutil.DeterministicNoise(3, 1, 512)
	got := Real(x)

	want := fourier.NewFFT(len(x)).Coefficients(nil, x)
	requireComplexNear(t, got[:len(want)], want, 1e-9)
}

func TestRealMatchesGoDSP(t *testing.T) {
	x := testutil.DeterministicNoise(5, 1, 256)
	requireComplexNear(t, Real(x), godspfft.FFTReal(x), 1e-9)
}

func TestPlanForward(t *testing.T) {
	x := make([]complex128, 64)
	for i := range x {
		x[i] = complex(float64(i%7), 0)
	}
	want := naiveDFT(x)

	for _, accelerated := range []bool{false, true} {
		var opts []PlanOption
		if accelerated {
			opts = append(opts, WithAccelerated())
		}
		p, err := NewPlan(len(x), opts...)
		if err != nil {
			t.Fatalf("NewPlan() error = %v", err)
		}
		if p.Accelerated() != accelerated || p.Size() != 64 {
			t.Fatalf("plan = %+v", p)
		}

		dst := make([]complex128, len(x))
		if err := p.Forward(dst, x); err != nil {
			t.Fatalf("Forward() error = %v", err)
		}
		requireComplexNear(t, dst, want, 1e-9)
	}
}

func TestPlanInverse(t *testing.T) {
	p, err := NewPlan(16)
	if err != nil {
		t.Fatalf("NewPlan() error = %v", err)
	}
	x := make([]complex128, 16)
	x[3] = 1
	spec := make([]complex128, 16)
	back := make([]complex128, 16)
	if err := p.Forward(spec, x); err != nil {
		t.Fatalf("Forward() error = %v", err)
	}
	if err := p.Inverse(back, spec); err != nil {
		t.Fatalf("Inverse() error = %v", err)
	}
	requireComplexNear(t, back, x, 1e-12)
}

func TestPlanErrors(t *testing.T) {
	if _, err := NewPlan(0); err == nil {
		t.Fatal("expected error for zero size")
	}
	if _, err := NewPlan(10); !errors.Is(err, ErrNotPowerOfTwo) {
		t.Fatalf("err = %v, want ErrNotPowerOfTwo", err)
	}
	p, _ := NewPlan(8)
	if err := p.Forward(make([]complex128, 4), make([]complex128, 8)); err == nil {
		t.Fatal("expected buffer length error")
	}
}
