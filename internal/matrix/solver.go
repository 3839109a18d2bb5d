package matrix

import "math"

// Operator applies a symmetric positive-definite linear map. The
// conjugate-gradient solver only needs matrix-vector products, so the
// regularized normal-equations system never has to be materialized.
type Operator interface {
	Apply(x []float64) []float64
	Dim() int
}

// NormalEquations is the Tikhonov-regularized operator FᵀF + λI used by
// the backward evolution step. λ > 0 keeps the system positive definite
// even when F is singular.
type NormalEquations struct {
	F      *Sparse
	Lambda float64
}

// Apply returns Fᵀ(F·x) + λ·x.
func (ne NormalEquations) Apply(x []float64) []float64 {
	y := ne.F.MulTransVec(ne.F.MulVec(x))
	Axpy(y, ne.Lambda, x)
	return y
}

// Dim returns the operator dimension.
func (ne NormalEquations) Dim() int { return ne.F.Dim() }

// SolveResult carries the outcome of a conjugate-gradient solve.
// Non-convergence is a status, not an error: X always holds the best
// available iterate.
type SolveResult struct {
	X          []float64
	Converged  bool
	Iterations int
	Residual   float64
}

// ConjugateGradient solves op·x = b starting from the initial guess x0.
// It stops when the residual norm drops below tol·max(1, ‖b‖) or after
// maxIter iterations, whichever comes first.
func ConjugateGradient(op Operator, b, x0 []float64, maxIter int, tol float64) SolveResult {
	n := op.Dim()
	x := Clone(x0)

	// r = b − op·x
	r := Clone(b)
	Axpy(r, -1, op.Apply(x))
	p := Clone(r)
	rs := Dot(r, r)

	target := tol * math.Max(1, Norm(b))
	res := math.Sqrt(rs)
	if res <= target {
		return SolveResult{X: x, Converged: true, Iterations: 0, Residual: res}
	}

	var iter int
	for iter = 1; iter <= maxIter; iter++ {
		ap := op.Apply(p)
		denom := Dot(p, ap)
		if denom <= 0 {
			// Lost positive definiteness numerically; stop with the
			// current iterate.
			break
		}
		alpha := rs / denom
		Axpy(x, alpha, p)
		Axpy(r, -alpha, ap)

		rsNew := Dot(r, r)
		res = math.Sqrt(rsNew)
		if res <= target {
			return SolveResult{X: x, Converged: true, Iterations: iter, Residual: res}
		}

		beta := rsNew / rs
		for i := 0; i < n; i++ {
			p[i] = r[i] + beta*p[i]
		}
		rs = rsNew
	}

	return SolveResult{X: x, Converged: false, Iterations: iter - 1, Residual: res}
}
