package engine

import "math"

// Standardize returns (x − mean) / std element-wise. When the input is
// uniform (std 0) only the mean is subtracted, which yields the zero
// vector rather than a division by zero.
func Standardize(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	var variance float64
	for _, v := range x {
		d := v - mean
		variance += d * d
	}
	std := math.Sqrt(variance / float64(n))

	for i, v := range x {
		if std > 0 {
			out[i] = (v - mean) / std
		} else {
			out[i] = v - mean
		}
	}
	return out
}

// StateVector produces the standardized sentiment vector of the
// network, the x₀ every echo experiment starts from.
func (e *Engine) StateVector() []float64 {
	raw := make([]float64, len(e.nodes))
	for i, nd := range e.nodes {
		raw[i] = nd.Sentiment
	}
	return Standardize(raw)
}
