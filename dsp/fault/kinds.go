package fault

import (
	"math"

	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/dsp/delay"
	"github.com/cwbudde/algo-siglab/dsp/signal"
)

type params struct {
	magnitude float64
	freq      float64
}

type applyFunc func(in *Injector, sig *signal.Signal, p params)

// Echo delay and contact burst length in seconds.
const (
	echoDelay  = 0.005
	burstWidth = 0.005
)

// mapPresent replaces every present sample by fn(i, t, x). Dropped samples
// keep their zero placeholder.
func mapPresent(sig *signal.Signal, fn func(i int, t, x float64) float64) {
	for i, x := range sig.Values {
		if sig.Valid != nil && !sig.Valid[i] {
			continue
		}
		sig.Values[i] = fn(i, sig.Time[i], x)
	}
}

func addTone(sig *signal.Signal, fn func(t float64) float64) {
	mapPresent(sig, func(_ int, t, x float64) float64 { return x + fn(t) })
}

func applyGroundFault(_ *Injector, sig *signal.Signal, p params) {
	addTone(sig, func(float64) float64 { return p.magnitude })
}

func applyGroundLoop(_ *Injector, sig *signal.Signal, p params) {
	w := 2 * math.Pi * p.freq
	addTone(sig, func(t float64) float64 { return p.magnitude * math.Sin(w*t) })
}

func applyFloatingGround(in *Injector, sig *signal.Signal, p params) {
	var drift float64
	mapPresent(sig, func(_ int, _, x float64) float64 {
		drift += in.gaussian() * 0.01 * p.magnitude
		return x + drift
	})
}

func applyEMI(in *Injector, sig *signal.Signal, p params) {
	w := 2 * math.Pi * p.freq
	mapPresent(sig, func(_ int, t, x float64) float64 {
		return x + 0.5*p.magnitude*math.Sin(w*t) + 0.05*p.magnitude*in.gaussian()
	})
}

func applyPowerLineHum(_ *Injector, sig *signal.Signal, p params) {
	w := 2 * math.Pi * p.freq
	addTone(sig, func(t float64) float64 {
		return p.magnitude * (math.Sin(w*t) + math.Sin(3*w*t)/3)
	})
}

func applyRipple(_ *Injector, sig *signal.Signal, p params) {
	w := 2 * math.Pi * p.freq
	addTone(sig, func(t float64) float64 { return 0.5 * p.magnitude * math.Abs(math.Sin(w*t)) })
}

func applyCrosstalk(_ *Injector, sig *signal.Signal, p params) {
	w := 2 * math.Pi * p.freq
	addTone(sig, func(t float64) float64 { return 0.3 * p.magnitude * math.Sin(w*t) })
}

func applyThermalNoise(in *Injector, sig *signal.Signal, p params) {
	sigma := 0.1 * p.magnitude
	mapPresent(sig, func(_ int, _, x float64) float64 { return x + sigma*in.gaussian() })
}

func applyCableAttenuation(_ *Injector, sig *signal.Signal, p params) {
	g := 1 / (1 + p.magnitude)
	mapPresent(sig, func(_ int, _, x float64) float64 { return x * g })
}

func applyGainError(_ *Injector, sig *signal.Signal, p params) {
	g := 1 + p.magnitude
	mapPresent(sig, func(_ int, _, x float64) float64 { return x * g })
}

func applyImpedanceMismatch(_ *Injector, sig *signal.Signal, p params) {
	line, err := delay.New(max(1, int(math.Round(echoDelay*sig.SampleRate))))
	if err != nil {
		return
	}
	g := 0.5 * p.magnitude / (1 + p.magnitude)
	for i, x := range sig.Values {
		echo := line.Tap(x)
		if sig.IsValid(i) {
			sig.Values[i] = x + g*echo
		}
	}
}

func applyHarmonicDistortion(_ *Injector, sig *signal.Signal, p params) {
	mapPresent(sig, func(_ int, _, x float64) float64 {
		return x + 0.1*p.magnitude*x*x + 0.05*p.magnitude*x*x*x
	})
}

func applyClipping(_ *Injector, sig *signal.Signal, p params) {
	mapPresent(sig, func(_ int, _, x float64) float64 {
		return core.Clamp(x, -p.magnitude, p.magnitude)
	})
}

func applySensorSaturation(_ *Injector, sig *signal.Signal, p params) {
	r := 1 / (1 + p.magnitude)
	mapPresent(sig, func(_ int, _, x float64) float64 { return r * math.Tanh(x/r) })
}

func applyDCDrift(_ *Injector, sig *signal.Signal, p params) {
	total := sig.Duration()
	if !(total > 0) {
		return
	}
	addTone(sig, func(t float64) float64 { return p.magnitude * t / total })
}

func applyOpenCircuit(in *Injector, sig *signal.Signal, p params) {
	prob := math.Min(1, 0.05*p.magnitude)
	mapPresent(sig, func(_ int, _, x float64) float64 {
		if in.chance(prob) {
			return 0
		}
		return x
	})
}

func applyIntermittentContact(in *Injector, sig *signal.Signal, p params) {
	prob := 0.01 * p.magnitude
	burst := max(1, int(math.Ceil(burstWidth*sig.SampleRate)))
	for i := 0; i < len(sig.Values); i++ {
		if !in.chance(prob) {
			continue
		}
		end := min(len(sig.Values), i+burst)
		for j := i; j < end; j++ {
			sig.Values[j] = 0
		}
		i = end - 1
	}
}

func applySampleLoss(in *Injector, sig *signal.Signal, p params) {
	prob := math.Min(1, 0.05*p.magnitude)
	for i := range sig.Values {
		if in.chance(prob) {
			sig.Drop(i)
		}
	}
}

func applyAliasing(_ *Injector, sig *signal.Signal, p params) {
	factor := 1 + int(math.Round(2*p.magnitude))
	resample(sig, func(i int) int { return i - i%factor })
}

func applyTimingJitter(in *Injector, sig *signal.Signal, p params) {
	j := max(1, int(math.Round(2*p.magnitude)))
	last := len(sig.Values) - 1
	resample(sig, func(i int) int {
		return core.ClampInt(i+in.rng.IntN(2*j+1)-j, 0, last)
	})
}

func applyQuantization(_ *Injector, sig *signal.Signal, p params) {
	step := 0.05 * p.magnitude
	mapPresent(sig, func(_ int, _, x float64) float64 {
		return math.Round(x/step) * step
	})
}

// resample rebuilds the values (and mask, if any) with out[i] = in[src(i)].
func resample(sig *signal.Signal, src func(i int) int) {
	values := core.Clone(sig.Values)
	var valid []bool
	if sig.Valid != nil {
		valid = make([]bool, len(sig.Valid))
		copy(valid, sig.Valid)
	}
	for i := range sig.Values {
		k := src(i)
		sig.Values[i] = values[k]
		if valid != nil {
			sig.Valid[i] = valid[k]
		}
	}
}
