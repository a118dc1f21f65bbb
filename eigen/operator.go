package eigen

import "github.com/mansfield-lab/blockpcg/block"
import "github.com/mansfield-lab/blockpcg/mat"

// Operator applies the Hermitian linear operator A. yIn is untouched;
// yOut receives A·yIn. scratch is an additional n×p block the
// implementation may use as working storage — callers must not rely
// on it aliasing yIn, yOut, or anything else.
//
// isFirstCall is a hint (not a requirement) that this is the first
// time A is applied to this particular Y in the current solve, which
// some operator implementations use to decide whether to rebuild a
// cached factorization.
type Operator func(yIn, yOut *block.EvectMatrix, isFirstCall bool, scratch *block.EvectMatrix) error

// Preconditioner approximates A⁻¹ to accelerate convergence. gIn is
// the gradient to be preconditioned; xOut receives K·gIn. y and ytY
// are supplied for context (e.g. a shift-and-invert preconditioner
// needs to know the current subspace); eigenvals is nil unless the
// caller has already diagonalized the reduced problem, which never
// happens mid-iteration in this solver.
type Preconditioner func(gIn, xOut *block.EvectMatrix, y *block.EvectMatrix, eigenvals []float64, ytY *mat.SqMatrix) error

// Constraint applies an idempotent, application-specific projection to
// Y in place (e.g. enforcing transversality). It is invoked once after
// every accepted shift of Y.
type Constraint func(y *block.EvectMatrix) error

// Finisher resolves final eigenvalues (and, implicitly, an aligned
// eigenbasis within the converged invariant subspace) from the
// subspace the trace-minimization loop converged to. Solve keeps this
// step pluggable rather than baking in one diagonalization strategy;
// DefaultFinisher below is a usable default so Solve works end to end
// without a caller-supplied one.
type Finisher interface {
	Resolve(y *block.EvectMatrix, a Operator, work1, work2 *block.EvectMatrix, u *mat.SqMatrix) ([]float64, error)
}
