package fault

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned for a fault name or value outside the enumeration.
var ErrUnknownKind = errors.New("fault: unknown kind")

// Kind identifies one impairment. The declaration order is the application
// order.
type Kind int

const (
	GroundFault Kind = iota
	GroundLoop
	FloatingGround
	EMI
	PowerLineHum
	Ripple
	Crosstalk
	ThermalNoise
	CableAttenuation
	GainError
	ImpedanceMismatch
	HarmonicDistortion
	Clipping
	SensorSaturation
	DCDrift
	OpenCircuit
	IntermittentContact
	SampleLoss
	Aliasing
	TimingJitter
	Quantization

	numKinds
)

type kindInfo struct {
	name        string
	defaultFreq float64
	apply       applyFunc
}

// kinds is the dispatch table; every Kind has exactly one entry.
var kinds = [numKinds]kindInfo{
	GroundFault:         {"ground_fault", 0, applyGroundFault},
	GroundLoop:          {"ground_loop", 60, applyGroundLoop},
	FloatingGround:      {"floating_ground", 0, applyFloatingGround},
	EMI:                 {"emi", 1000, applyEMI},
	PowerLineHum:        {"power_line_hum", 50, applyPowerLineHum},
	Ripple:              {"ripple", 120, applyRipple},
	Crosstalk:           {"crosstalk", 440, applyCrosstalk},
	ThermalNoise:        {"thermal_noise", 0, applyThermalNoise},
	CableAttenuation:    {"cable_attenuation", 0, applyCableAttenuation},
	GainError:           {"gain_error", 0, applyGainError},
	ImpedanceMismatch:   {"impedance_mismatch", 0, applyImpedanceMismatch},
	HarmonicDistortion:  {"harmonic_distortion", 0, applyHarmonicDistortion},
	Clipping:            {"clipping", 0, applyClipping},
	SensorSaturation:    {"sensor_saturation", 0, applySensorSaturation},
	DCDrift:             {"dc_drift", 0, applyDCDrift},
	OpenCircuit:         {"open_circuit", 0, applyOpenCircuit},
	IntermittentContact: {"intermittent_contact", 0, applyIntermittentContact},
	SampleLoss:          {"sample_loss", 0, applySampleLoss},
	Aliasing:            {"aliasing", 0, applyAliasing},
	TimingJitter:        {"timing_jitter", 0, applyTimingJitter},
	Quantization:        {"quantization", 0, applyQuantization},
}

// Valid reports whether k is one of the enumerated kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

// String returns the snake_case name of k.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kinds[k].name
}

// ParseKind resolves a snake_case fault name.
func ParseKind(name string) (Kind, error) {
	for k := range numKinds {
		if kinds[k].name == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Kinds returns every kind in application order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// DefaultFrequency returns the disturbance frequency used when a periodic
// kind's Setting leaves Frequency at zero. Non-periodic kinds return 0.
func DefaultFrequency(k Kind) float64 {
	if !k.Valid() {
		return 0
	}
	return kinds[k].defaultFreq
}
