package eigen

import (
	"math"

	"github.com/mansfield-lab/blockpcg/block"
)

// newtonStep attempts the Newton-approximate line search along D: a
// single trial shift by (the magnitude of) the previous iteration's
// accepted angle, followed by a quadratic fit to the trace
// functional's second derivative from the two energies measured on
// either side of the probe.
//
// e is the trace energy at the current (unshifted) Y; dNorm is
// sqrt(tr(DᵀD)/p). A false return with a nil error means the fit was
// unreliable, Y has already been restored to its pre-probe value, and
// the driver should fall back to an exact line search for this
// iteration.
func (s *solver) newtonStep(dNorm, e float64) (theta float64, applied bool, err error) {
	dE := 2 * block.TraceXtY(s.g, s.d) / dNorm

	t := math.Abs(s.prevTheta)
	if t == 0 {
		t = 0.5
	}
	if dE > 0 {
		t = -t
	}
	step := t / dNorm

	block.AXpbY(1, s.y, step, s.d)

	if callErr := s.a(s.y, s.g, false, s.x); callErr != nil {
		block.AXpbY(1, s.y, -step, s.d)
		return 0, false, callErr
	}

	block.XtX(s.s2, s.y)
	block.XtY(s.s3, s.y, s.g)
	if invErr := s.s2.Invert(); invErr != nil {
		block.AXpbY(1, s.y, -step, s.d)
		return 0, false, errf(Divergence, "singular Gram matrix in Newton probe: %v", invErr)
	}
	e2 := s.s3.TraceProduct(s.s2)

	d2E := (e2 - e - dE*t) / (0.5 * t * t)
	theta = -dE / d2E

	unreliable := d2E < 0 || -0.5*dE*theta > 20.0*math.Abs(e-s.prevE)
	if unreliable {
		s.logf("eigen: unreliable Newton fit, falling back to exact line search")
		block.AXpbY(1, s.y, -step, s.d)
		s.useLinmin = true
		return 0, false, nil
	}

	block.AXpbY(1, s.y, (theta-t)/dNorm, s.d)
	return theta, true, nil
}
