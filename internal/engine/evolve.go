package engine

import (
	"log"

	"EchoSentinel/internal/matrix"
)

const (
	// Tikhonov regularization strength for the backward solve.
	regularizationLambda = 0.01
	maxSolveIterations   = 100
	solveTolerance       = 1e-5
	// Backward iterates are rescaled to this norm when they explode.
	backwardNormCap = 10.0
)

// EvolveForward applies x ← F·x exactly steps times and returns the
// result. steps = 0 is the identity; the input is never mutated.
func (e *Engine) EvolveForward(x []float64, steps int) []float64 {
	out := matrix.Clone(x)
	f := e.Matrix()
	for t := 0; t < steps; t++ {
		out = f.MulVec(out)
	}
	return out
}

// EvolveBackward approximately undoes steps applications of F. The
// inverse problem is ill-posed, so each step solves the regularized
// normal equations (FᵀF + λI)·x′ = Fᵀ·x by conjugate gradient, seeded
// with the current iterate. Non-convergence is recorded as a warning
// and the best iterate is kept; it is never surfaced as an error.
func (e *Engine) EvolveBackward(x []float64, steps int) []float64 {
	out := matrix.Clone(x)
	f := e.Matrix()
	op := matrix.NormalEquations{F: f, Lambda: regularizationLambda}

	for t := 0; t < steps; t++ {
		rhs := f.MulTransVec(out)
		res := matrix.ConjugateGradient(op, rhs, out, maxSolveIterations, solveTolerance)
		if !res.Converged {
			log.Printf("[WARN] backward solve step %d/%d not converged after %d iterations (residual %.3e)",
				t+1, steps, res.Iterations, res.Residual)
		}
		out = res.X

		// Explosion guard.
		if n := matrix.Norm(out); n > backwardNormCap {
			matrix.Scale(out, backwardNormCap/n)
		}
	}
	return out
}

// InjectPerturbation returns a copy of x with delta added at the target
// index. The input vector is never modified.
func InjectPerturbation(x []float64, target int, delta float64) []float64 {
	out := matrix.Clone(x)
	out[target] += delta
	return out
}
