package modulation

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidParams is wrapped by every parameter validation error.
var ErrInvalidParams = errors.New("modulation: invalid parameters")

// Params configures modulation and demodulation.
type Params struct {
	CarrierAmplitude float64 // Ac
	CarrierFrequency float64 // Fc, Hz
	MessageAmplitude float64 // Am of the default message
	MessageFrequency float64 // Fm of the default message, Hz
	SampleRate       float64 // Hz
	Duration         float64 // seconds; ignored when a message is supplied

	AMIndex       float64 // ka
	FMIndex       float64 // beta
	PMSensitivity float64 // kp, radians per unit message

	Bits    []int   // 0/1; any nonzero value is a 1
	BitRate float64 // bits per second
	FSKLow  float64 // tone for bit 0, Hz
	FSKHigh float64 // tone for bit 1, Hz
}

// DefaultParams returns a 100 Hz carrier at 1 kHz sampling for one second
// with a 5 Hz message and an 8-bit pattern at 10 bit/s.
func DefaultParams() Params {
	return Params{
		CarrierAmplitude: 1,
		CarrierFrequency: 100,
		MessageAmplitude: 1,
		MessageFrequency: 5,
		SampleRate:       1000,
		Duration:         1,
		AMIndex:          0.5,
		FMIndex:          5,
		PMSensitivity:    math.Pi / 2,
		Bits:             []int{1, 0, 1, 1, 0, 0, 1, 0},
		BitRate:          10,
		FSKLow:           50,
		FSKHigh:          150,
	}
}

func (p Params) validate(s Scheme) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownScheme, int(s))
	}
	if !(p.SampleRate > 0) || math.IsInf(p.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidParams, p.SampleRate)
	}
	if !(p.Duration >= 0) || math.IsInf(p.Duration, 0) {
		return fmt.Errorf("%w: duration %v", ErrInvalidParams, p.Duration)
	}
	if !s.IsDigital() {
		return nil
	}
	if len(p.Bits) == 0 {
		return fmt.Errorf("%w: empty bit sequence", ErrInvalidParams)
	}
	if !(p.BitRate > 0) || math.IsInf(p.BitRate, 0) {
		return fmt.Errorf("%w: bit rate %v", ErrInvalidParams, p.BitRate)
	}
	if s == FSK {
		nyquist := p.SampleRate / 2
		if !(p.FSKLow > 0 && p.FSKLow <= nyquist && p.FSKHigh > 0 && p.FSKHigh <= nyquist) {
			return fmt.Errorf("%w: FSK tones %v/%v Hz outside (0, %v]", ErrInvalidParams, p.FSKLow, p.FSKHigh, nyquist)
		}
	}
	return nil
}

// bitIndex returns floor(t*BitRate) for sample i, computed without going
// through the rounded time value.
func (p Params) bitIndex(i int) int {
	return int(math.Floor(float64(i) * p.BitRate / p.SampleRate))
}

// bit returns the (periodic) bit for sample i.
func (p Params) bit(i int) int {
	return bitValue(p.Bits[p.bitIndex(i)%len(p.Bits)])
}

// symbolIndex returns the symbol number of sample i for scheme s.
func (p Params) symbolIndex(s Scheme, i int) int {
	return p.bitIndex(i) / s.BitsPerSymbol()
}

func bitValue(b int) int {
	if b != 0 {
		return 1
	}
	return 0
}

// ParseBits reads a string of '0' and '1' characters. Spaces, commas and
// underscores are ignored.
func ParseBits(s string) ([]int, error) {
	var bits []int
	for _, r := range s {
		switch r {
		case '0':
			bits = append(bits, 0)
		case '1':
			bits = append(bits, 1)
		case ' ', ',', '_':
		default:
			return nil, fmt.Errorf("%w: bit %q", ErrInvalidParams, r)
		}
	}
	if len(bits) == 0 {
		return nil, fmt.Errorf("%w: empty bit sequence", ErrInvalidParams)
	}
	return bits, nil
}

// FormatBits renders bits as a string of '0' and '1'.
func FormatBits(bits []int) string {
	var b strings.Builder
	for _, v := range bits {
		b.WriteByte('0' + byte(bitValue(v)))
	}
	return b.String()
}
