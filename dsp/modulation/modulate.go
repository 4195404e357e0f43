package modulation

import (
	"math"

	"github.com/cwbudde/algo-siglab/dsp/filter/hilbert"
	"github.com/cwbudde/algo-siglab/dsp/signal"
)

// Result is a modulated waveform with its ingredients on a shared time axis.
// For digital schemes Message is the 0/1 bit waveform.
type Result struct {
	Time       []float64
	Carrier    []float64 // Ac*sin(2*pi*Fc*t)
	Message    []float64
	Modulated  []float64
	SampleRate float64
}

// Signal wraps the modulated waveform as a signal.Signal.
func (r Result) Signal() signal.Signal {
	return signal.Signal{Time: r.Time, Values: r.Modulated, SampleRate: r.SampleRate}
}

// qpskPhase maps a Gray-coded pair (b0<<1 | b1) to its phase index:
// 00->0, 01->1, 11->2, 10->3 (multiples of 90 degrees).
var qpskPhase = [4]int{0b00: 0, 0b01: 1, 0b11: 2, 0b10: 3}

// qpskLabel is the inverse of qpskPhase.
var qpskLabel = [4]string{"00", "01", "11", "10"}

// Modulate synthesizes scheme s.
//
// A nil message selects the default Am*sin(2*pi*Fm*t) over
// floor(SampleRate*Duration) samples; otherwise the message length sets the
// sample count. Digital schemes ignore the message and use Bits.
//
//	AM     Ac*(1 + ka*m)*sin(wc*t)
//	DSB-SC Ac*m*sin(wc*t)
//	PM     Ac*sin(wc*t + kp*m)
//	FM     Ac*sin(wc*t + beta*sin(wm*t))  default message
//	       Ac*sin(wc*t + beta*m)          otherwise
//	SSB    Ac*(m*cos(wc*t) - H{m}*sin(wc*t))
//	ASK    Ac*b*sin(wc*t)
//	FSK    Ac*sin(2*pi*f_b*t), f_0 = FSKLow, f_1 = FSKHigh
//	PSK    Ac*sin(wc*t + pi*(1-b))
//	QPSK   Ac*sin(wc*t + k*pi/2), k from the Gray-coded bit pair
func Modulate(s Scheme, p Params, message []float64) (Result, error) {
	if err := p.validate(s); err != nil {
		return Result{}, err
	}

	n := len(message)
	defaultMessage := message == nil || s.IsDigital()
	if defaultMessage {
		n = int(math.Floor(p.SampleRate * p.Duration))
	}

	res := Result{
		Time:       signal.TimeAxis(n, p.SampleRate),
		Carrier:    make([]float64, n),
		Message:    make([]float64, n),
		Modulated:  make([]float64, n),
		SampleRate: p.SampleRate,
	}
	wc := 2 * math.Pi * p.CarrierFrequency
	wm := 2 * math.Pi * p.MessageFrequency
	ac := p.CarrierAmplitude

	for i, t := range res.Time {
		res.Carrier[i] = ac * math.Sin(wc*t)
		switch {
		case s.IsDigital():
			res.Message[i] = float64(p.bit(i))
		case defaultMessage:
			res.Message[i] = p.MessageAmplitude * math.Sin(wm*t)
		default:
			res.Message[i] = message[i]
		}
	}

	var quad []float64
	if s == SSB {
		quad = hilbert.Transform(res.Message)
	}

	for i, t := range res.Time {
		m := res.Message[i]
		var y float64
		switch s {
		case AM:
			y = ac * (1 + p.AMIndex*m) * math.Sin(wc*t)
		case DSBSC:
			y = ac * m * math.Sin(wc*t)
		case PM:
			y = ac * math.Sin(wc*t+p.PMSensitivity*m)
		case FM:
			if defaultMessage {
				y = ac * math.Sin(wc*t+p.FMIndex*math.Sin(wm*t))
			} else {
				y = ac * math.Sin(wc*t+p.FMIndex*m)
			}
		case SSB:
			y = ac * (m*math.Cos(wc*t) - quad[i]*math.Sin(wc*t))
		case ASK:
			y = ac * m * math.Sin(wc*t)
		case FSK:
			f := p.FSKLow
			if m != 0 {
				f = p.FSKHigh
			}
			y = ac * math.Sin(2*math.Pi*f*t)
		case PSK:
			y = ac * math.Sin(wc*t+math.Pi*(1-m))
		case QPSK:
			y = ac * math.Sin(wc*t+float64(p.qpskSymbol(i))*math.Pi/2)
		}
		res.Modulated[i] = y
	}
	return res, nil
}

// qpskSymbol returns the phase index of the symbol containing sample i.
func (p Params) qpskSymbol(i int) int {
	k := p.symbolIndex(QPSK, i)
	b0 := bitValue(p.Bits[(2*k)%len(p.Bits)])
	b1 := bitValue(p.Bits[(2*k+1)%len(p.Bits)])
	return qpskPhase[b0<<1|b1]
}
