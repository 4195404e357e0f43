package main

import (
	"flag"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/dsp/fault"
	"github.com/cwbudde/algo-siglab/dsp/signal"
	"github.com/cwbudde/algo-siglab/dsp/spectrum"
	"github.com/cwbudde/algo-siglab/dsp/window"
	"github.com/cwbudde/algo-siglab/measure/thd"
	frequencystats "github.com/cwbudde/algo-siglab/stats/frequency"
	timestats "github.com/cwbudde/algo-siglab/stats/time"
)

// signalFlags holds the generator flags shared by gen and spectrum.
type signalFlags struct {
	wave   string
	params signal.Params
	sweep  string
	stop   float64
	seed   uint64
	faults string
}

func (sf *signalFlags) register(fs *flag.FlagSet) {
	sf.params = signal.DefaultParams()
	fs.StringVar(&sf.wave, "wave", "sine", "waveform: "+joinNames(signal.Waveforms()))
	fs.Float64Var(&sf.params.Amplitude, "amp", sf.params.Amplitude, "amplitude")
	fs.Float64Var(&sf.params.Frequency, "freq", sf.params.Frequency, "frequency in Hz (sweep start frequency)")
	fs.Float64Var(&sf.params.Phase, "phase", 0, "phase offset in radians")
	fs.Float64Var(&sf.params.DCOffset, "dc", 0, "DC offset")
	fs.Float64Var(&sf.params.SampleRate, "rate", sf.params.SampleRate, "sample rate in Hz")
	fs.Float64Var(&sf.params.Duration, "dur", sf.params.Duration, "duration in seconds")
	fs.StringVar(&sf.sweep, "sweep", "", "sweep mode instead of a waveform: linear or log")
	fs.Float64Var(&sf.stop, "stop", 100, "sweep stop frequency in Hz")
	fs.Uint64Var(&sf.seed, "seed", 1, "random seed for noise and stochastic faults")
	fs.StringVar(&sf.faults, "faults", "", "comma-separated kind:severity[@Hz] list, e.g. clipping:3,emi:2@500")
}

// build generates the signal and applies the requested faults.
func (sf *signalFlags) build(e *env) (signal.Signal, error) {
	var sig signal.Signal
	var err error
	switch sf.sweep {
	case "":
		var w signal.Waveform
		w, err = signal.ParseWaveform(sf.wave)
		if err != nil {
			return signal.Signal{}, err
		}
		sig, err = signal.NewGenerator(signal.WithSeed(sf.seed)).Generate(w, sf.params)
	case "linear", "log":
		sp := signal.DefaultSweepParams()
		if sf.sweep == "log" {
			sp.Mode = signal.SweepLog
		}
		sp.StartFreq, sp.StopFreq = sf.params.Frequency, sf.stop
		sp.StartAmplitude, sp.StopAmplitude = sf.params.Amplitude, sf.params.Amplitude
		sp.StartPhase, sp.StopPhase = sf.params.Phase, sf.params.Phase
		sp.DCOffset = sf.params.DCOffset
		sp.SampleRate, sp.Duration = sf.params.SampleRate, sf.params.Duration
		sig, err = signal.Sweep(sp)
	default:
		return signal.Signal{}, fmt.Errorf("unknown sweep mode %q", sf.sweep)
	}
	if err != nil {
		return signal.Signal{}, err
	}
	e.log.Debug("signal generated", zap.String("wave", sf.wave), zap.String("sweep", sf.sweep),
		zap.Int("samples", sig.Len()), zap.Float64("rate", sig.SampleRate))

	return applyFaults(e, sig, sf.faults, sf.seed)
}

func applyFaults(e *env, sig signal.Signal, list string, seed uint64) (signal.Signal, error) {
	spec, err := parseFaults(list)
	if err != nil || len(spec) == 0 {
		return sig, err
	}
	in := fault.NewInjector(fault.WithSeed(seed), fault.WithLogger(e.log))
	return in.Apply(sig, spec), nil
}

// parseFaults reads "kind:severity[@Hz]" entries separated by commas.
func parseFaults(list string) (fault.Spec, error) {
	spec := fault.Spec{}
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, rest, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("fault %q: want kind:severity", item)
		}
		k, err := fault.ParseKind(name)
		if err != nil {
			return nil, err
		}
		sevText, freqText, hasFreq := strings.Cut(rest, "@")
		sev, err := strconv.Atoi(sevText)
		if err != nil {
			return nil, fmt.Errorf("fault %q: severity: %w", item, err)
		}
		spec.Enable(k, sev)
		if hasFreq {
			f, err := strconv.ParseFloat(freqText, 64)
			if err != nil {
				return nil, fmt.Errorf("fault %q: frequency: %w", item, err)
			}
			set := spec[k]
			set.Frequency = f
			spec[k] = set
		}
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func runGen(e *env, args []string) error {
	fs := newFlagSet(e, "gen")
	var sf signalFlags
	sf.register(fs)
	rows := fs.Int("n", 10, "number of samples to print (0 for all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sig, err := sf.build(e)
	if err != nil {
		return err
	}

	n := sig.Len()
	if *rows > 0 {
		n = min(n, *rows)
	}
	tw := newTable(e.stdout)
	_, _ = fmt.Fprintf(tw, "t [s]\tvalue\n")
	for i := range n {
		v := "dropped"
		if sig.IsValid(i) {
			v = strconv.FormatFloat(sig.Values[i], 'f', 6, 64)
		}
		_, _ = fmt.Fprintf(tw, "%.6f\t%s\n", sig.Time[i], v)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	st := timestats.CalculateSignal(sig)
	_, _ = fmt.Fprintf(e.stdout, "\nsamples=%d dropped=%d dc=%.4f rms=%.4f peak=%.4f crest=%.4f zero-crossings=%d\n",
		st.Length, st.Dropped, st.DC, st.RMS, st.Peak, st.CrestFactor, st.ZeroCrossings)
	return nil
}

func runSpectrum(e *env, args []string) error {
	fs := newFlagSet(e, "spectrum")
	var sf signalFlags
	sf.register(fs)
	psd := fs.Bool("psd", false, "print power instead of magnitude")
	top := fs.Int("top", 5, "number of strongest bins to print")
	maxSamples := fs.Int("max", 4096, "cap on analyzed samples (0 for none)")
	stft := fs.Int("stft", 0, "STFT window size; 0 computes a single FFT")
	hop := fs.Int("hop", 0, "STFT hop size (default window/2)")
	measureTHD := fs.Bool("thd", false, "also measure harmonic distortion of the -freq tone")
	accel := fs.Bool("accel", false, "use the accelerated FFT backend")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sig, err := sf.build(e)
	if err != nil {
		return err
	}
	if *stft > 0 {
		return printSTFT(e, sig, spectrum.STFTConfig{WindowSize: *stft, HopSize: *hop})
	}

	opts := withMax(*maxSamples)
	if *accel {
		opts = append(opts, core.WithAccelerated())
	}
	var res spectrum.Result
	if *psd {
		res = spectrum.ComputeSignalPSD(sig, opts...)
	} else {
		res = spectrum.ComputeSignalFFT(sig, opts...)
	}

	order := make([]int, res.Len())
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case res.Values[a] > res.Values[b]:
			return -1
		case res.Values[a] < res.Values[b]:
			return 1
		}
		return 0
	})

	tw := newTable(e.stdout)
	_, _ = fmt.Fprintf(tw, "bin\tfrequency [Hz]\tvalue\n")
	for _, k := range order[:min(*top, len(order))] {
		_, _ = fmt.Fprintf(tw, "%d\t%.3f\t%.6g\n", k, res.Frequencies[k], res.Values[k])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	st := frequencystats.CalculateResult(res)
	_, _ = fmt.Fprintf(e.stdout, "\nfft=%d bin=%.4f Hz peak=%.3f Hz centroid=%.3f Hz bandwidth=%.3f Hz flatness=%.4f rolloff=%.3f Hz\n",
		res.FFTSize, res.BinWidth(), st.PeakFrequency, st.Centroid, st.Bandwidth, st.Flatness, st.Rolloff)

	if *measureTHD {
		r := thd.AnalyzeSignal(sig, thd.Config{Fundamental: sf.params.Frequency})
		_, _ = fmt.Fprintf(e.stdout, "thd=%.4f%% thd+n=%.4f%% sinad=%.2f dB\n", 100*r.THD, 100*r.THDN, r.SINAD)
	}
	return nil
}

func printSTFT(e *env, sig signal.Signal, cfg spectrum.STFTConfig) error {
	res, err := spectrum.STFT(sig.Compact(), sig.SampleRate, cfg)
	if err != nil {
		return err
	}
	tw := newTable(e.stdout)
	_, _ = fmt.Fprintf(tw, "frame\tt [s]\tpeak [Hz]\tpower\n")
	for i, frame := range res.Power {
		k := spectrum.PeakBin(frame)
		if k < 0 {
			continue
		}
		_, _ = fmt.Fprintf(tw, "%d\t%.4f\t%.3f\t%.6g\n", i, res.Times[i], res.Frequencies[k], frame[k])
	}
	return tw.Flush()
}

func runWindow(e *env, args []string) error {
	fs := newFlagSet(e, "window")
	size := fs.Int("size", 1024, "window length in samples")
	periodic := fs.Bool("periodic", false, "use periodic (FFT) form instead of symmetric")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var opts []window.Option
	if *periodic {
		opts = append(opts, window.WithPeriodic())
	}

	tw := newTable(e.stdout)
	_, _ = fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\tENBW measured\n")
	for t := window.TypeRectangular; t <= window.TypeTriangle; t++ {
		m := window.Info(t)
		enbw, err := window.EquivalentNoiseBandwidth(window.Generate(t, *size, opts...))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.4f\n", m.Name, *size, m.CoherentGain, m.ENBW, enbw)
	}
	return tw.Flush()
}

func joinNames[T fmt.Stringer](items []T) string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.String()
	}
	return strings.Join(names, ", ")
}
