package modulation

import (
	"fmt"
	"math"
	"math/cmplx"
)

// ConstellationPoint is one demodulated symbol.
type ConstellationPoint struct {
	I      float64
	Q      float64
	Symbol string // decided bits, e.g. "1" or "01"
}

// Constellation integrates in-phase and quadrature correlators over each
// symbol period of x, normalized so that an undisturbed carrier of amplitude
// Ac at phase phi lands on (Ac*cos(phi), Ac*sin(phi)).
//
// FSK has no common carrier; its I and Q are the correlation magnitudes
// against FSKLow and FSKHigh.
func Constellation(s Scheme, x []float64, p Params) ([]ConstellationPoint, error) {
	if !s.IsDigital() {
		return nil, fmt.Errorf("%w: %s", ErrNotDigital, s)
	}
	if err := p.validate(s); err != nil {
		return nil, err
	}
	return constellation(s, x, p), nil
}

func constellation(s Scheme, x []float64, p Params) []ConstellationPoint {
	if len(x) == 0 {
		return nil
	}
	count := p.symbolIndex(s, len(x)-1) + 1
	out := make([]ConstellationPoint, 0, count)

	start := 0
	for k := range count {
		end := start
		for end < len(x) && p.symbolIndex(s, end) == k {
			end++
		}
		out = append(out, decide(s, x[start:end], start, p))
		start = end
	}
	return out
}

func decide(s Scheme, seg []float64, start int, p Params) ConstellationPoint {
	if s == FSK {
		lo := cmplx.Abs(correlate(seg, start, p.FSKLow, p.SampleRate))
		hi := cmplx.Abs(correlate(seg, start, p.FSKHigh, p.SampleRate))
		return ConstellationPoint{I: lo, Q: hi, Symbol: bitLabel(hi > lo)}
	}

	c := correlate(seg, start, p.CarrierFrequency, p.SampleRate)
	pt := ConstellationPoint{I: -imag(c), Q: real(c)}
	switch s {
	case ASK:
		pt.Symbol = bitLabel(pt.I >= ASKThreshold*p.CarrierAmplitude)
	case PSK:
		pt.Symbol = bitLabel(pt.I >= 0)
	case QPSK:
		k := int(math.Round(math.Atan2(pt.Q, pt.I) / (math.Pi / 2)))
		pt.Symbol = qpskLabel[(k%4+4)%4]
	}
	return pt
}

func bitLabel(one bool) string {
	if one {
		return "1"
	}
	return "0"
}
