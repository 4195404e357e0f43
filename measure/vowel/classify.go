package vowel

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-siglab/dsp/core"
)

// Vowel is a classification label.
type Vowel int

const (
	None Vowel = iota // silence or no formants
	A
	E
	I
	O
	U

	numVowels
)

var vowelNames = [numVowels]string{None: "none", A: "A", E: "E", I: "I", O: "O", U: "U"}

func (v Vowel) String() string {
	if v < 0 || v >= numVowels {
		return fmt.Sprintf("Vowel(%d)", int(v))
	}
	return vowelNames[v]
}

// Silence thresholds.
const (
	MinF1 = 50.0
	MinF2 = 100.0
)

// Result is one classification.
type Result struct {
	Vowel      Vowel
	Confidence float64 // [0, 1]
	F1         float64
	F2         float64
}

type reference struct {
	vowel      Vowel
	f1Lo, f1Hi float64
	f2Lo, f2Hi float64
}

var references = [...]reference{
	{A, 650, 850, 1000, 1400},
	{E, 400, 600, 1700, 2300},
	{I, 250, 400, 2000, 2800},
	{O, 400, 600, 700, 1100},
	{U, 250, 400, 600, 1000},
}

// distance is the Euclidean distance to the range midpoint with each axis
// scaled by the range half-width.
func (r reference) distance(f1, f2 float64) float64 {
	d1 := (f1 - (r.f1Lo+r.f1Hi)/2) / ((r.f1Hi - r.f1Lo) / 2)
	d2 := (f2 - (r.f2Lo+r.f2Hi)/2) / ((r.f2Hi - r.f2Lo) / 2)
	return math.Hypot(d1, d2)
}

// Classify returns the nearest reference vowel with confidence
// max(0, 1-d/2). F1 below MinF1 or F2 below MinF2 is silence.
func Classify(f1, f2 float64) Result {
	res := Result{F1: f1, F2: f2}
	if !core.IsFinite(f1) || !core.IsFinite(f2) || f1 < MinF1 || f2 < MinF2 {
		return res
	}

	best := math.Inf(1)
	for _, r := range references {
		if d := r.distance(f1, f2); d < best {
			best = d
			res.Vowel = r.vowel
		}
	}
	res.Confidence = max(0, 1-best/2)
	return res
}

// Analyze extracts formants from mag and classifies them.
func Analyze(mag []float64, sampleRate float64) Result {
	f := ExtractFormants(mag, sampleRate)
	return Classify(f.F1, f.F2)
}
