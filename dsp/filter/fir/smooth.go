package fir

// Trailing returns the boxcar average of the last length samples of x at
// every index, starting from a zero-filled history.
func Trailing(x []float64, length int) []float64 {
	return NewMovingAverage(length).Apply(x)
}

// Centered returns a moving average over x[n-half..n+half]. The window is
// truncated at the slice edges and the mean is taken over the samples that
// remain, so constant input stays constant.
func Centered(x []float64, half int) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}
	half = max(0, half)

	prefix := make([]float64, len(x)+1)
	for i, v := range x {
		prefix[i+1] = prefix[i] + v
	}
	for i := range x {
		lo := max(0, i-half)
		hi := min(len(x), i+half+1)
		out[i] = (prefix[hi] - prefix[lo]) / float64(hi-lo)
	}
	return out
}

// AdaptiveLength returns max(1, n/50), the smoothing length used for
// coherent detection over an n-sample record.
func AdaptiveLength(n int) int {
	return max(1, n/50)
}
