package window

import (
	"math"
	"testing"
)

func TestGenerateAllTypes(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman, TypeTriangle} {
		t.Run(Info(typ).Name, func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}
			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) || v < -1e-12 || v > 1+1e-12 {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
				if math.Abs(v-w[len(w)-1-i]) > 1e-12 {
					t.Fatalf("coefficient[%d] not symmetric", i)
				}
			}
		})
	}
}

func TestHannMatchesFormula(t *testing.T) {
	const n = 16
	w, err := Hann(n)
	if err != nil {
		t.Fatalf("Hann() error = %v", err)
	}
	for i, v := range w {
		want := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		if math.Abs(v-want) > 1e-12 {
			t.Fatalf("w[%d] = %v, want %v", i, v, want)
		}
	}
	if _, err := Hann(0); err == nil {
		t.Fatal("expected error for zero size")
	}
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	a := Generate(TypeHann, 16)
	b := Generate(TypeHann, 16, WithPeriodic())
	if a[15] != 0 || b[15] == 0 {
		t.Fatalf("unexpected last coefficients: %v %v", a[15], b[15])
	}
}

func TestEquivalentNoiseBandwidth(t *testing.T) {
	enbw, err := EquivalentNoiseBandwidth(Generate(TypeHann, 4096, WithPeriodic()))
	if err != nil {
		t.Fatalf("ENBW error: %v", err)
	}
	if math.Abs(enbw-Info(TypeHann).ENBW) > 1e-3 {
		t.Fatalf("ENBW = %v, want %v", enbw, Info(TypeHann).ENBW)
	}
	if _, err := EquivalentNoiseBandwidth(nil); err == nil {
		t.Fatal("expected error for empty coefficients")
	}
}

func TestApplyCoefficients(t *testing.T) {
	out, err := ApplyCoefficients([]float64{2, 2}, []float64{0.5, 0.25})
	if err != nil {
		t.Fatalf("ApplyCoefficients() error = %v", err)
	}
	if out[0] != 1 || out[1] != 0.5 {
		t.Fatalf("out = %v", out)
	}
	if _, err := ApplyCoefficients([]float64{1}, nil); err == nil {
		t.Fatal("expected length mismatch error")
	}
}
