package modulation

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-siglab/dsp/filter/fir"
	"github.com/cwbudde/algo-siglab/dsp/spectrum"
)

func TestSchemeNames(t *testing.T) {
	for _, s := range Schemes() {
		got, err := ParseScheme(s.String())
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
	_, err := ParseScheme("ofdm")
	require.ErrorIs(t, err, ErrUnknownScheme)

	require.False(t, SSB.IsDigital())
	require.True(t, ASK.IsDigital())
	require.Equal(t, 2, QPSK.BitsPerSymbol())
	require.Equal(t, 1, PSK.BitsPerSymbol())
	require.Equal(t, "Scheme(42)", Scheme(42).String())
}

func TestModulateShapes(t *testing.T) {
	p := DefaultParams()
	for _, s := range Schemes() {
		res, err := Modulate(s, p, nil)
		require.NoError(t, err, s)
		require.Len(t, res.Time, 1000, s)
		require.Len(t, res.Carrier, 1000, s)
		require.Len(t, res.Message, 1000, s)
		require.Len(t, res.Modulated, 1000, s)
		require.Equal(t, 1000.0, res.Signal().SampleRate)
	}
}

func TestModulateAnalogFormulas(t *testing.T) {
	p := DefaultParams()
	wc := 2 * math.Pi * p.CarrierFrequency
	wm := 2 * math.Pi * p.MessageFrequency

	am, err := Modulate(AM, p, nil)
	require.NoError(t, err)
	dsb, err := Modulate(DSBSC, p, nil)
	require.NoError(t, err)
	pm, err := Modulate(PM, p, nil)
	require.NoError(t, err)
	fm, err := Modulate(FM, p, nil)
	require.NoError(t, err)

	for _, i := range []int{0, 17, 333, 999} {
		tt := am.Time[i]
		m := math.Sin(wm * tt)
		require.InDelta(t, m, am.Message[i], 1e-12)
		require.InDelta(t, (1+0.5*m)*math.Sin(wc*tt), am.Modulated[i], 1e-12)
		require.InDelta(t, m*math.Sin(wc*tt), dsb.Modulated[i], 1e-12)
		require.InDelta(t, math.Sin(wc*tt+math.Pi/2*m), pm.Modulated[i], 1e-12)
		require.InDelta(t, math.Sin(wc*tt+5*math.Sin(wm*tt)), fm.Modulated[i], 1e-12)
	}
}

func TestModulateCustomMessage(t *testing.T) {
	p := DefaultParams()
	msg := make([]float64, 300)
	for i := range msg {
		msg[i] = 0.25
	}

	res, err := Modulate(AM, p, msg)
	require.NoError(t, err)
	require.Len(t, res.Modulated, 300)
	require.Equal(t, msg, res.Message)

	// FM of an arbitrary message substitutes beta*m for the phase.
	fm, err := Modulate(FM, p, msg)
	require.NoError(t, err)
	wc := 2 * math.Pi * p.CarrierFrequency
	require.InDelta(t, math.Sin(wc*fm.Time[7]+5*0.25), fm.Modulated[7], 1e-12)
}

func TestModulateDigitalMapping(t *testing.T) {
	p := DefaultParams()
	wc := 2 * math.Pi * p.CarrierFrequency

	psk, err := Modulate(PSK, p, nil)
	require.NoError(t, err)
	// Bit 0 is 1 (phase 0), bit 1 is 0 (phase pi).
	require.InDelta(t, math.Sin(wc*psk.Time[3]), psk.Modulated[3], 1e-12)
	require.InDelta(t, -math.Sin(wc*psk.Time[103]), psk.Modulated[103], 1e-9)
	require.Equal(t, 1.0, psk.Message[50])
	require.Equal(t, 0.0, psk.Message[150])
	// Bits repeat with period len(Bits): bit 8 is Bits[0].
	require.Equal(t, 1.0, psk.Message[850])

	ask, err := Modulate(ASK, p, nil)
	require.NoError(t, err)
	for i := 100; i < 200; i++ {
		require.Zero(t, ask.Modulated[i])
	}
}

func TestModulateErrors(t *testing.T) {
	p := DefaultParams()

	bad := p
	bad.SampleRate = 0
	_, err := Modulate(AM, bad, nil)
	require.ErrorIs(t, err, ErrInvalidParams)

	bad = p
	bad.Duration = math.NaN()
	_, err = Modulate(AM, bad, nil)
	require.ErrorIs(t, err, ErrInvalidParams)

	bad = p
	bad.Bits = nil
	_, err = Modulate(PSK, bad, nil)
	require.ErrorIs(t, err, ErrInvalidParams)
	_, err = Modulate(AM, bad, nil)
	require.NoError(t, err, "analog schemes ignore bits")

	bad = p
	bad.BitRate = 0
	_, err = Modulate(ASK, bad, nil)
	require.ErrorIs(t, err, ErrInvalidParams)

	bad = p
	bad.FSKHigh = 600
	_, err = Modulate(FSK, bad, nil)
	require.ErrorIs(t, err, ErrInvalidParams)

	_, err = Modulate(Scheme(99), p, nil)
	require.ErrorIs(t, err, ErrUnknownScheme)
}

func expectedBits(p Params, n int) []int {
	out := make([]int, n)
	for k := range out {
		out[k] = p.Bits[k%len(p.Bits)]
	}
	return out
}

func TestASKAllOnesRoundTrip(t *testing.T) {
	p := DefaultParams()
	p.Bits = []int{1, 1, 1, 1}

	res, err := Modulate(ASK, p, nil)
	require.NoError(t, err)
	bits, err := RecoverBits(ASK, res.Modulated, p)
	require.NoError(t, err)
	require.Len(t, bits, 10)
	for _, b := range bits {
		require.Equal(t, 1, b)
	}
}

func TestDigitalRoundTrip(t *testing.T) {
	p := DefaultParams()
	want := expectedBits(p, 10)

	for _, s := range []Scheme{ASK, FSK, PSK, QPSK} {
		res, err := Modulate(s, p, nil)
		require.NoError(t, err, s)

		bits, err := RecoverBits(s, res.Modulated, p)
		require.NoError(t, err, s)
		require.Equal(t, want, bits, s)
		require.Zero(t, BER(want, bits), s)

		dec, err := Demodulate(s, res.Modulated, p)
		require.NoError(t, err, s)
		require.Len(t, dec, len(res.Modulated), s)
		for _, v := range dec {
			require.True(t, v == 0 || v == 1, "%s decision %v", s, v)
		}
	}
}

func TestQPSKDemodulateUsesProductDetector(t *testing.T) {
	p := DefaultParams()
	p.Bits = []int{0, 1, 1, 0, 1, 1, 0, 0}
	res, err := Modulate(QPSK, p, nil)
	require.NoError(t, err)

	x := res.Modulated
	wc := 2 * math.Pi * p.CarrierFrequency
	prod := make([]float64, len(x))
	for i, v := range x {
		prod[i] = v * math.Sin(wc*float64(i)/p.SampleRate)
	}
	smoothed := fir.Centered(prod, fir.AdaptiveLength(len(x))/2)

	dec, err := Demodulate(QPSK, x, p)
	require.NoError(t, err)
	require.Len(t, dec, len(x))
	for i, v := range smoothed {
		want := 0.0
		if v >= 0 {
			want = 1
		}
		require.Equal(t, want, dec[i], "sample %d", i)
	}

	psk, err := Demodulate(PSK, x, p)
	require.NoError(t, err)
	require.Equal(t, psk, dec)
}

func TestRecoverBitsPartialInterval(t *testing.T) {
	p := DefaultParams()
	p.Duration = 0.55 // 5.5 bit intervals

	for _, s := range []Scheme{PSK, QPSK} {
		res, err := Modulate(s, p, nil)
		require.NoError(t, err)
		bits, err := RecoverBits(s, res.Modulated, p)
		require.NoError(t, err)
		require.Equal(t, expectedBits(p, 6), bits, s)
	}

	bits, err := RecoverBits(PSK, nil, p)
	require.NoError(t, err)
	require.Empty(t, bits)
}

func TestAnalogRejectsBitOperations(t *testing.T) {
	p := DefaultParams()
	_, err := RecoverBits(AM, []float64{1}, p)
	require.ErrorIs(t, err, ErrNotDigital)
	_, err = Constellation(FM, []float64{1}, p)
	require.ErrorIs(t, err, ErrNotDigital)
}

func TestConstellationPSKAndQPSK(t *testing.T) {
	p := DefaultParams()

	psk, err := Modulate(PSK, p, nil)
	require.NoError(t, err)
	pts, err := Constellation(PSK, psk.Modulated, p)
	require.NoError(t, err)
	require.Len(t, pts, 10)
	for k, pt := range pts {
		want := 2*float64(p.Bits[k%8]) - 1
		require.InDelta(t, want, pt.I, 1e-9)
		require.InDelta(t, 0, pt.Q, 1e-9)
		require.Equal(t, FormatBits([]int{p.Bits[k%8]}), pt.Symbol)
	}

	qpsk, err := Modulate(QPSK, p, nil)
	require.NoError(t, err)
	pts, err = Constellation(QPSK, qpsk.Modulated, p)
	require.NoError(t, err)
	require.Len(t, pts, 5)

	labels := []string{"10", "11", "00", "10", "10"}
	phases := map[string]float64{"00": 0, "01": 90, "11": 180, "10": 270}
	for k, pt := range pts {
		require.Equal(t, labels[k], pt.Symbol)
		ph := phases[pt.Symbol] * math.Pi / 180
		require.InDelta(t, math.Cos(ph), pt.I, 1e-9)
		require.InDelta(t, math.Sin(ph), pt.Q, 1e-9)
	}
}

func TestConstellationFSK(t *testing.T) {
	p := DefaultParams()
	res, err := Modulate(FSK, p, nil)
	require.NoError(t, err)

	pts, err := Constellation(FSK, res.Modulated, p)
	require.NoError(t, err)
	require.Len(t, pts, 10)
	for k, pt := range pts {
		if p.Bits[k%8] == 1 {
			require.InDelta(t, 1, pt.Q, 1e-9)
			require.InDelta(t, 0, pt.I, 1e-9)
		} else {
			require.InDelta(t, 1, pt.I, 1e-9)
			require.InDelta(t, 0, pt.Q, 1e-9)
		}
	}
}

func TestAMEnvelopeTracksMessage(t *testing.T) {
	p := DefaultParams()
	res, err := Modulate(AM, p, nil)
	require.NoError(t, err)

	env, err := Demodulate(AM, res.Modulated, p)
	require.NoError(t, err)
	r := stat.Correlation(env[EnvelopeWindow:], res.Message[EnvelopeWindow:], nil)
	require.Greater(t, r, 0.95)
}

func TestFMDiscriminatorTracksFrequency(t *testing.T) {
	p := DefaultParams()
	res, err := Modulate(FM, p, nil)
	require.NoError(t, err)

	out, err := Demodulate(FM, res.Modulated, p)
	require.NoError(t, err)

	// Instantaneous frequency is Fc + beta*Fm*cos(wm*t).
	ref := make([]float64, len(out))
	for i, tt := range res.Time {
		ref[i] = math.Cos(2 * math.Pi * p.MessageFrequency * tt)
	}
	require.Greater(t, stat.Correlation(out, ref, nil), 0.8)
	require.InDelta(t, 0, stat.Mean(out, nil), 1e-12)
}

func TestSSBSuppressesLowerSideband(t *testing.T) {
	p := DefaultParams()
	ssb, err := Modulate(SSB, p, nil)
	require.NoError(t, err)
	dsb, err := Modulate(DSBSC, p, nil)
	require.NoError(t, err)

	ssbSpec := spectrum.ComputeFFT(ssb.Modulated, p.SampleRate)
	dsbSpec := spectrum.ComputeFFT(dsb.Modulated, p.SampleRate)
	near := func(r spectrum.Result, f float64) float64 {
		k := int(math.Round(f / r.BinWidth()))
		return slices.Max(r.Values[k-2 : k+3])
	}

	require.Greater(t, near(ssbSpec, 105), 4*near(ssbSpec, 95))
	require.Greater(t, near(dsbSpec, 95), 0.5*near(dsbSpec, 105))

	env, err := Demodulate(SSB, ssb.Modulated, p)
	require.NoError(t, err)
	require.Len(t, env, len(ssb.Modulated))
}

func TestSSBWithNaNMessageSample(t *testing.T) {
	p := DefaultParams()
	msg := make([]float64, 1000)
	for i := range msg {
		msg[i] = math.Sin(2 * math.Pi * 5 * float64(i) / p.SampleRate)
	}
	msg[500] = math.NaN()

	res, err := Modulate(SSB, p, msg)
	require.NoError(t, err)
	require.Len(t, res.Modulated, len(msg))
	for i, v := range res.Modulated {
		if i == 500 {
			require.True(t, math.IsNaN(v))
			continue
		}
		require.False(t, math.IsNaN(v), "sample %d", i)
	}
}

func TestBER(t *testing.T) {
	tx := []int{1, 0, 1, 1, 0, 0, 1, 0}
	require.Zero(t, BER(tx, tx))

	rx := append([]int(nil), tx...)
	rx[3] = 0
	require.InDelta(t, 1.0/8, BER(tx, rx), 0)

	require.Zero(t, BER(nil, tx))
	require.InDelta(t, 0.5, BER([]int{1, 1}, []int{1, 0, 1}), 0)
	require.Zero(t, BER([]int{2}, []int{1}), "nonzero values read as 1")
}

func TestExtractFeatures(t *testing.T) {
	p := DefaultParams()
	res, err := Modulate(PSK, p, nil)
	require.NoError(t, err)

	f := ExtractFeatures(res.Carrier, nil, p.SampleRate)
	require.InDelta(t, 1/math.Sqrt2, f.RMS, 1e-3)
	require.InDelta(t, 0.5, f.Power, 1e-3)
	require.InDelta(t, 100, f.PeakFrequency, 1)
	require.Less(t, f.Bandwidth, 5.0)
	require.False(t, f.SNRValid)

	noisy := append([]float64(nil), res.Carrier...)
	for i := range noisy {
		noisy[i] += 0.01 * math.Cos(float64(i))
	}
	f = ExtractFeatures(noisy, res.Carrier, p.SampleRate)
	require.True(t, f.SNRValid)
	require.InDelta(t, 40, f.SNRdB, 0.5)

	f = ExtractFeatures(nil, nil, p.SampleRate)
	require.Zero(t, f.RMS)
	require.Zero(t, f.PeakFrequency)
}

func TestParseFormatBits(t *testing.T) {
	bits, err := ParseBits("10 11_0,1")
	require.NoError(t, err)
	require.Equal(t, []int{1, 0, 1, 1, 0, 1}, bits)
	require.Equal(t, "101101", FormatBits(bits))

	_, err = ParseBits("102")
	require.ErrorIs(t, err, ErrInvalidParams)
	_, err = ParseBits("  ")
	require.ErrorIs(t, err, ErrInvalidParams)
}
