package matrix

import "math"

// Norm returns the Euclidean (L2) norm of x.
func Norm(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of a and b. Panics on length mismatch.
func Dot(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("matrix: dimension mismatch in Dot")
	}
	var sum float64
	for i, v := range a {
		sum += v * b[i]
	}
	return sum
}

// Clone returns a copy of x.
func Clone(x []float64) []float64 {
	y := make([]float64, len(x))
	copy(y, x)
	return y
}

// Scale multiplies every element of x by f in place.
func Scale(x []float64, f float64) {
	for i := range x {
		x[i] *= f
	}
}

// Axpy performs y += alpha·x in place.
func Axpy(y []float64, alpha float64, x []float64) {
	for i := range y {
		y[i] += alpha * x[i]
	}
}
