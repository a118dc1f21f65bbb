package eigen

import (
	"math"

	"github.com/mansfield-lab/blockpcg/block"
	"github.com/mansfield-lab/blockpcg/mat"
)

// run executes the block preconditioned conjugate-gradient trace
// minimization loop until the Rayleigh trace converges, a hard
// iteration cap is hit, or a kernel call fails.
func (s *solver) run() (Result, error) {
	for {
		if s.iteration >= s.cfg.MaxIterations {
			return Result{}, errf(NonConvergence, "exceeded %d iterations without converging", s.cfg.MaxIterations)
		}

		s.tZtZ = timer(s.cfg.Clock, func() { block.XtX(s.ytY, s.y) })

		// Renormalize the column scale so ‖Y‖_F²/p stays at 1: without
		// this Y's magnitude can drift over iterations since nothing
		// else in the loop constrains it.
		yNorm := math.Sqrt(s.ytY.Trace() / float64(s.p))
		s.y.Scale(1 / yNorm)
		s.ytY.Scale(1 / (yNorm * yNorm))

		s.u.CopyFrom(s.ytY)
		if err := s.u.Invert(); err != nil {
			return Result{}, errf(Divergence, "singular Gram matrix at iteration %d: %v", s.iteration, err)
		}

		// s.x <- A(Y), raw (not yet scaled by U). s.g serves as the
		// operator's disposable scratch block; its previous value is
		// only ever read earlier in the same iteration it was written.
		var opErr error
		s.tAZ = timer(s.cfg.Clock, func() {
			opErr = s.a(s.y, s.x, s.iteration == 0, s.g)
		})
		if opErr != nil {
			return Result{}, opErr
		}
		s.tZS = timer(s.cfg.Clock, func() { block.XeYS(s.g, s.x, s.u, true) }) // s.g <- (AY)·U

		// s.s1 <- Yᴴ·AY (raw, symmetric); kept around unmodified for
		// the exact line search's trace functional below.
		s.tZtW = timer(s.cfg.Clock, func() { block.XtY(s.s1, s.y, s.x) })
		s.ytAYU.SetProduct(s.s1, false, s.u, false) // YtAY·U
		e := s.ytAYU.Trace()
		if mat.BadNum(e) {
			return Result{}, errf(Divergence, "non-finite trace at iteration %d", s.iteration)
		}

		const convergenceEps = 1e-7
		converged := s.iteration > 0 &&
			math.Abs(e-s.prevE) < s.cfg.Tolerance*0.5*(math.Abs(e)+math.Abs(s.prevE)+convergenceEps)
		s.logf("eigen: iteration %d trace=%.10g change=%.3g", s.iteration, e, e-s.prevE)

		if converged {
			vals, err := s.finisher.Resolve(s.y, s.a, s.x, s.g, s.u)
			if err != nil {
				return Result{}, err
			}
			return Result{Eigenvalues: vals, Iterations: s.iteration}, nil
		}

		// Project the raw gradient Y·U·YtAY·U out of the Y-tangent
		// component: G <- AY·U - Y·(U·YtAYU).
		s.s2.SetProduct(s.u, false, s.ytAYU, false)
		block.XpaYS(s.g, -1, s.y, s.s2)

		if s.k != nil {
			var kErr error
			s.tKZ = timer(s.cfg.Clock, func() {
				kErr = s.k(s.g, s.x, s.y, nil, s.ytY)
			})
			if kErr != nil {
				return Result{}, kErr
			}
		} else {
			s.x.CopyFrom(s.g)
			s.tKZ = 0
		}

		if s.cfg.Flags.has(ProjectPreconditioning) {
			block.XtY(s.s2, s.y, s.x)
			s.s3.SetProduct(s.u, false, s.s2, false)
			block.XpaYS(s.x, -1, s.y, s.s3)
		}

		s.buildDirection()

		dNorm := math.Sqrt(block.TraceXtY(s.d, s.d) / float64(s.p))
		if dNorm == 0 {
			vals, err := s.finisher.Resolve(s.y, s.a, s.x, s.g, s.u)
			if err != nil {
				return Result{}, err
			}
			return Result{Eigenvalues: vals, Iterations: s.iteration}, nil
		}

		wantExact := s.useLinmin
		if s.cfg.Flags.has(ForceExactLinmin) {
			wantExact = true
		} else if s.cfg.Flags.has(ForceApproxLinmin) {
			wantExact = false
		}

		theta, err := s.runLineSearch(wantExact, dNorm, e)
		if err != nil {
			return Result{}, err
		}

		if s.constraint != nil {
			if err := s.constraint(s.y); err != nil {
				return Result{}, err
			}
		}

		s.prevTheta = theta
		s.prevE = e
		s.iteration++
	}
}

// runLineSearch dispatches to the exact or Newton-approximate line
// search, falling back to an exact search within the same iteration
// if the Newton fit turns out unreliable. The exact path times its
// own linmin call as t_linmin; the driver's shared per-kernel timings
// from run() cover the rest of the adaptive cost model regardless of
// which path executes.
func (s *solver) runLineSearch(wantExact bool, dNorm, e float64) (float64, error) {
	var theta, improvement float64
	var err error

	if wantExact {
		theta, improvement, err = s.exactLineSearch(dNorm, e)
		if err != nil {
			return 0, err
		}
		s.scheduleNextLineSearch(improvement)
		return theta, nil
	}

	var applied bool
	theta, applied, err = s.newtonStep(dNorm, e)
	if err != nil {
		return 0, err
	}
	if applied {
		s.scheduleNextLineSearch(0)
		return theta, nil
	}

	theta, improvement, err = s.exactLineSearch(dNorm, e)
	if err != nil {
		return 0, err
	}
	s.scheduleNextLineSearch(improvement)
	return theta, nil
}

// exactLineSearch minimizes the trace functional exactly along D by
// Ridders' method, then commits the winning angle to Y.
func (s *solver) exactLineSearch(dNorm, e float64) (theta, improvement float64, err error) {
	if callErr := s.a(s.d, s.g, false, s.x); callErr != nil {
		return 0, 0, callErr
	}

	block.XtY(s.dtAD, s.d, s.g)
	block.XtX(s.dtD, s.d)

	block.XtY(s.s2, s.y, s.g)
	s.symYtAD.Symmetrize(s.s2)

	block.XtY(s.s2, s.y, s.d)
	s.symYtD.Symmetrize(s.s2)

	tf := &traceFunc{
		dNorm:   dNorm,
		ytAY:    s.s1,
		dtAD:    s.dtAD,
		symYtAD: s.symYtAD,
		ytY:     s.ytY,
		dtD:     s.dtD,
		symYtD:  s.symYtD,
		s1:      mat.NewSqMatrix(s.p),
		s2:      mat.NewSqMatrix(s.p),
		s3:      mat.NewSqMatrix(s.p),
	}

	_, dE := tf.eval(0, true)
	if dE == 0 {
		return 0, 0, nil
	}

	const probe = 1e-3
	_, dfProbe := tf.eval(probe, true)
	d2E := (dfProbe - dE) / probe

	eChange := math.Abs(e - s.prevE)
	guess := thetaGuard(dE, d2E, s.prevTheta, eChange, s.logf1)

	xmax := math.Pi
	if dE > 0 {
		xmax = -math.Pi
	}
	if guess == 0 || guess*dE >= 0 {
		guess = 0.5 * xmax
	}

	s.tLinmin = timer(s.cfg.Clock, func() {
		theta, improvement, err = linmin(0, dE, xmax, guess, s.cfg.Tolerance, tf.eval)
	})
	s.haveLinmin = true
	if err != nil {
		return 0, 0, err
	}

	c := math.Cos(theta)
	sn := math.Sin(theta) / dNorm
	block.AXpbY(c, s.y, sn, s.d)

	return theta, improvement, nil
}

func (s *solver) logf1(msg string) { s.logf("eigen: %s", msg) }
