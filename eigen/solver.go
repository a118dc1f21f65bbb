package eigen

import (
	"github.com/mansfield-lab/blockpcg/block"
	"github.com/mansfield-lab/blockpcg/logging"
	"github.com/mansfield-lab/blockpcg/mat"
)

// Result bundles the outputs of one Solve call: the reference
// algorithm returns eigenvals and num_iterations as separate
// out-parameters of a C-shaped entry point; returning them together
// is the natural Go rendering of "everything one call produced."
type Result struct {
	Eigenvalues []float64
	Iterations  int
}

// solver holds the lifetime-of-one-call state: the current iterate
// (borrowed from the caller), the borrowed workspaces, and the small
// p×p matrices the solver itself owns.
type solver struct {
	cfg *Config

	y *block.EvectMatrix
	g, x, d, prevG *block.EvectMatrix
	usingCG, usePolakRibiere bool

	a          Operator
	k          Preconditioner
	constraint Constraint
	finisher   Finisher

	p int

	// p×p working matrices, all solver-owned.
	ytAYU, dtAD, symYtAD *mat.SqMatrix
	ytY, u, dtD, symYtD  *mat.SqMatrix
	s1, s2, s3           *mat.SqMatrix

	iteration    int
	useLinmin    bool
	prevE        float64
	prevTraceGtX float64
	prevTheta    float64

	// Per-kernel timings the adaptive scheduler weights into t_exact
	// and t_approx. tZtZ, tAZ, tZS, tZtW, and tKZ are refreshed every
	// iteration by run() regardless of which line search executes;
	// tLinmin only advances when the exact search actually runs, so it
	// carries the last measured value across Newton-approximate
	// iterations as the model's estimate of the untaken path's cost.
	tZtZ, tAZ, tZS, tZtW, tKZ, tLinmin float64
	haveLinmin                        bool
}

// Solve finds the p lowest eigenvalues of the Hermitian operator a and
// leaves y holding an orthonormal-or-not basis of the corresponding
// invariant subspace. work supplies the borrowed n×p
// scratch blocks: work[0]=G, work[1]=X are mandatory; work[2]=D opts
// into conjugate-gradient direction building; work[3]=prevG additionally
// opts into Polak-Ribière updates.
func Solve(
	y *block.EvectMatrix,
	a Operator,
	k Preconditioner,
	constraint Constraint,
	work []*block.EvectMatrix,
	finisher Finisher,
	opts ...Option,
) (Result, error) {
	if len(work) < 2 {
		return Result{}, errf(BadInput, "not enough workspace: need at least 2 blocks, got %d", len(work))
	}

	cfg := newConfig(opts)
	p := y.P

	s := &solver{
		cfg:        cfg,
		y:          y,
		a:          a,
		k:          k,
		constraint: constraint,
		finisher:   finisher,
		p:          p,

		g: work[0],
		x: work[1],

		ytAYU:   mat.NewSqMatrix(p),
		dtAD:    mat.NewSqMatrix(p),
		symYtAD: mat.NewSqMatrix(p),
		ytY:     mat.NewSqMatrix(p),
		u:       mat.NewSqMatrix(p),
		dtD:     mat.NewSqMatrix(p),
		symYtD:  mat.NewSqMatrix(p),
		s1:      mat.NewSqMatrix(p),
		s2:      mat.NewSqMatrix(p),
		s3:      mat.NewSqMatrix(p),

		useLinmin: true,
		prevTheta: 0.5,
	}

	s.usingCG = len(work) >= 3
	if s.usingCG {
		s.d = work[2]
		s.d.Zero()
	} else {
		s.d = s.x
	}

	s.usePolakRibiere = len(work) >= 4
	if s.usePolakRibiere {
		s.prevG = work[3]
		s.prevG.Zero()
	} else {
		s.prevG = s.g
	}

	if finisher == nil {
		s.finisher = DefaultFinisher{}
	}

	if s.constraint != nil {
		if err := s.constraint(s.y); err != nil {
			return Result{}, err
		}
	}

	return s.run()
}

func (s *solver) logf(format string, args ...interface{}) {
	logging.Progressf(s.cfg.Flags.has(Verbose), format, args...)
}
