package main

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/dsp/modulation"
	"github.com/cwbudde/algo-siglab/dsp/signal"
	"github.com/cwbudde/algo-siglab/dsp/spectrum"
	"github.com/cwbudde/algo-siglab/measure/vowel"
	timestats "github.com/cwbudde/algo-siglab/stats/time"
)

func runMod(e *env, args []string) error {
	fs := newFlagSet(e, "mod")
	p := modulation.DefaultParams()
	scheme := fs.String("scheme", "am", "modulation: "+joinNames(modulation.Schemes()))
	bits := fs.String("bits", modulation.FormatBits(p.Bits), "bit pattern for digital schemes")
	fs.Float64Var(&p.CarrierFrequency, "fc", p.CarrierFrequency, "carrier frequency in Hz")
	fs.Float64Var(&p.CarrierAmplitude, "ac", p.CarrierAmplitude, "carrier amplitude")
	fs.Float64Var(&p.MessageFrequency, "fm", p.MessageFrequency, "message frequency in Hz")
	fs.Float64Var(&p.SampleRate, "rate", p.SampleRate, "sample rate in Hz")
	fs.Float64Var(&p.Duration, "dur", p.Duration, "duration in seconds")
	fs.Float64Var(&p.BitRate, "bitrate", p.BitRate, "bits per second")
	faults := fs.String("faults", "", "faults applied to the modulated carrier, as for gen")
	seed := fs.Uint64("seed", 1, "random seed for stochastic faults")
	maxSamples := fs.Int("max", 4096, "cap on samples used for features (0 for none)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := modulation.ParseScheme(*scheme)
	if err != nil {
		return err
	}
	if s.IsDigital() {
		if p.Bits, err = modulation.ParseBits(*bits); err != nil {
			return err
		}
	}

	res, err := modulation.Modulate(s, p, nil)
	if err != nil {
		return err
	}
	rx, err := applyFaults(e, res.Signal(), *faults, *seed)
	if err != nil {
		return err
	}
	// Dropped samples reach the demodulators as silence.
	received := make([]float64, rx.Len())
	for i := range received {
		if rx.IsValid(i) {
			received[i] = rx.Values[i]
		}
	}
	e.log.Debug("carrier modulated", zap.Stringer("scheme", s), zap.Int("samples", len(received)),
		zap.Int("dropped", rx.Len()-rx.ValidCount()))

	f := modulation.ExtractFeatures(received, res.Modulated, p.SampleRate, withMax(*maxSamples)...)
	snr := "n/a"
	if f.SNRValid {
		snr = fmt.Sprintf("%.2f dB", f.SNRdB)
		if math.IsInf(f.SNRdB, 1) {
			snr = "inf"
		}
	}
	_, _ = fmt.Fprintf(e.stdout, "scheme=%s samples=%d rms=%.4f power=%.4f peak=%.3f Hz bandwidth=%.3f Hz snr=%s\n",
		s, len(received), f.RMS, f.Power, f.PeakFrequency, f.Bandwidth, snr)

	if !s.IsDigital() {
		demod, err := modulation.Demodulate(s, received, p)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(e.stdout, "demodulated rms=%.4f\n", timestats.RMS(demod))
		return nil
	}

	got, err := modulation.RecoverBits(s, received, p)
	if err != nil {
		return err
	}
	want := make([]int, len(got))
	for k := range want {
		want[k] = p.Bits[k%len(p.Bits)]
	}
	_, _ = fmt.Fprintf(e.stdout, "sent     %s\nreceived %s\nBER=%.4f\n\n",
		modulation.FormatBits(want), modulation.FormatBits(got), modulation.BER(want, got))

	pts, err := modulation.Constellation(s, received, p)
	if err != nil {
		return err
	}
	tw := newTable(e.stdout)
	_, _ = fmt.Fprintf(tw, "symbol\tI\tQ\tdecision\n")
	for i, pt := range pts {
		_, _ = fmt.Fprintf(tw, "%d\t%+.4f\t%+.4f\t%s\n", i, pt.I, pt.Q, pt.Symbol)
	}
	return tw.Flush()
}

func runVowel(e *env, args []string) error {
	fs := newFlagSet(e, "vowel")
	f1 := fs.Float64("f1", 700, "first formant in Hz")
	f2 := fs.Float64("f2", 1200, "second formant in Hz")
	rate := fs.Float64("rate", 16000, "sample rate in Hz")
	dur := fs.Float64("dur", 0.128, "duration in seconds")
	frames := fs.Int("frames", 1, "frames fed to the smoothing classifier")
	win := fs.Int("window", vowel.DefaultWindow, "classifier history length")
	if err := fs.Parse(args); err != nil {
		return err
	}

	gen := signal.NewGenerator()
	p := signal.DefaultParams()
	p.SampleRate, p.Duration = *rate, *dur
	p.Frequency = *f1
	s1, err := gen.Generate(signal.WaveformSine, p)
	if err != nil {
		return err
	}
	p.Frequency, p.Amplitude = *f2, 0.7
	s2, err := gen.Generate(signal.WaveformSine, p)
	if err != nil {
		return err
	}
	for i := range s1.Values {
		s1.Values[i] += s2.Values[i]
	}

	mag := spectrum.ComputeSignalFFT(s1)
	c := vowel.NewClassifier(vowel.WithWindow(*win))
	var r vowel.Result
	for range max(1, *frames) {
		r = c.Update(mag.Values, *rate)
	}
	_, _ = fmt.Fprintf(e.stdout, "F1=%.1f Hz F2=%.1f Hz vowel=%s confidence=%.3f\n", r.F1, r.F2, r.Vowel, r.Confidence)
	return nil
}

func withMax(n int) []core.ProcessorOption {
	if n <= 0 {
		return nil
	}
	return []core.ProcessorOption{core.WithMaxSamples(n)}
}
