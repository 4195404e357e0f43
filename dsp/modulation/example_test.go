package modulation_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-siglab/dsp/modulation"
)

func ExampleRecoverBits() {
	p := modulation.DefaultParams()
	res, err := modulation.Modulate(modulation.PSK, p, nil)
	if err != nil {
		panic(err)
	}
	bits, err := modulation.RecoverBits(modulation.PSK, res.Modulated, p)
	if err != nil {
		panic(err)
	}
	fmt.Println(modulation.FormatBits(bits))
	fmt.Printf("BER=%.2f\n", modulation.BER(p.Bits, bits))
	// Output:
	// 1011001010
	// BER=0.00
}

func ExampleConstellation() {
	p := modulation.DefaultParams()
	p.Bits = []int{0, 0, 0, 1, 1, 1, 1, 0}
	res, _ := modulation.Modulate(modulation.QPSK, p, nil)
	pts, _ := modulation.Constellation(modulation.QPSK, res.Modulated, p)
	round := func(v float64) float64 { return math.Round(v*100)/100 + 0 }
	for _, pt := range pts[:4] {
		fmt.Printf("%s I=%+.2f Q=%+.2f\n", pt.Symbol, round(pt.I), round(pt.Q))
	}
	// Output:
	// 00 I=+1.00 Q=+0.00
	// 01 I=+0.00 Q=+1.00
	// 11 I=-1.00 Q=+0.00
	// 10 I=+0.00 Q=-1.00
}
