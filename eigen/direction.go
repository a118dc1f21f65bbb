package eigen

import "github.com/mansfield-lab/blockpcg/block"

// buildDirection folds the freshly preconditioned gradient X into the
// conjugate search direction D. With no D workspace supplied to
// Solve, D aliases X and this is a no-op: the solver degenerates to
// steepest descent.
//
// The conjugacy coefficient's numerator, tr(GᵀX) minus (for
// Polak-Ribière) tr(prevGᵀX), is computed as a difference of two
// TraceXtY calls rather than by first materializing G−prevG into a
// scratch block — the solver is never given an n×p workspace to spare
// for that, only the four named blocks.
func (s *solver) buildDirection() {
	if !s.usingCG {
		return
	}

	traceGtX := block.TraceXtY(s.g, s.x)

	reset := s.prevTraceGtX == 0
	if s.cfg.Flags.has(ResetCG) && s.iteration > 0 && s.iteration%70 == 0 {
		reset = true
	}

	var gamma float64
	if !reset {
		numerator := traceGtX
		if s.usePolakRibiere {
			numerator -= block.TraceXtY(s.prevG, s.x)
		}
		gamma = numerator / s.prevTraceGtX
		if gamma < 0 {
			gamma = 0
		}
	}

	if s.usePolakRibiere {
		s.prevG.CopyFrom(s.g)
	}
	s.prevTraceGtX = traceGtX

	block.AXpbY(gamma, s.d, 1, s.x)
}
