package frequency_test

import (
	"fmt"

	frequencystats "github.com/cwbudde/algo-siglab/stats/frequency"
)

func ExampleCalculate() {
	freqs := []float64{0, 1000, 2000, 3000, 4000}
	mag := []float64{0, 1, 2, 1, 0}
	s := frequencystats.Calculate(freqs, mag)
	fmt.Printf("peak=%.0f centroid=%.0f rolloff=%.0f occupied=%.0f\n",
		s.PeakFrequency, s.Centroid, s.Rolloff, s.OccupiedBandwidth)

	// Output:
	// peak=2000 centroid=2000 rolloff=3000 occupied=0
}
