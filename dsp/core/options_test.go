package core

import "testing"

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(96000), WithMaxSamples(2048))
	if cfg.SampleRate != 96000 {
		t.Fatalf("sample rate = %v, want 96000", cfg.SampleRate)
	}
	if cfg.MaxSamples != 2048 {
		t.Fatalf("max samples = %d, want 2048", cfg.MaxSamples)
	}
	if cfg.Accelerated {
		t.Fatal("accelerated backend enabled without WithAccelerated")
	}
	if !ApplyProcessorOptions(WithAccelerated()).Accelerated {
		t.Fatal("WithAccelerated had no effect")
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithMaxSamples(-1))
	def := DefaultProcessorConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}

func TestTruncate(t *testing.T) {
	in := []float64{1, 2, 3, 4}
	if got := ApplyProcessorOptions(WithMaxSamples(2)).Truncate(in); len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got := DefaultProcessorConfig().Truncate(in); len(got) != 4 {
		t.Fatalf("len = %d, want 4 without a cap", len(got))
	}
}
