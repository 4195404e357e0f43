package core

// Finite returns a new slice holding only the finite values of in, in order.
func Finite(in []float64) []float64 {
	out := make([]float64, 0, len(in))
	for _, v := range in {
		if IsFinite(v) {
			out = append(out, v)
		}
	}
	return out
}

// Clone returns a copy of in. A nil input yields nil.
func Clone(in []float64) []float64 {
	if in == nil {
		return nil
	}
	out := make([]float64, len(in))
	copy(out, in)
	return out
}
