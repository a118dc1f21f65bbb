package eigen

import "math"

// thetaGuard applies the three numerical clamps the reference
// algorithm uses to keep the Newton-Raphson initial guess for the
// exact-linmin starting angle sane in the presence of indefinite or
// poorly-scaled curvature: a negative second derivative means the
// quadratic model found a maximum, not a minimum, so the guess is
// replaced by a signed step of the previous iteration's angle; an
// overly large predicted trace change is only logged, not clamped
// (the line search itself tames it); and a guess that would wrap
// more than half a turn is replaced the same way as the near-maximum
// case.
//
// dE and d2E are the first and second derivatives of the trace
// functional at θ=0 along the search direction; prevTheta is the
// previous iteration's accepted angle; eChange is |E - E_prev|.
func thetaGuard(dE, d2E, prevTheta, eChange float64, log func(string)) float64 {
	theta := -dE / d2E

	if d2E < 0 {
		log("near maximum in trace")
		theta = signedStep(dE, prevTheta)
	} else if -0.5*dE*theta > 2.0*eChange {
		log("large trace change predicted")
	}

	if math.Abs(theta) >= math.Pi {
		log("large theta")
		theta = signedStep(dE, prevTheta)
	}

	return theta
}

// signedStep returns a step of magnitude |prevTheta| directed downhill
// from the sign of dE: negative when dE > 0, positive otherwise.
func signedStep(dE, prevTheta float64) float64 {
	if dE > 0 {
		return -math.Abs(prevTheta)
	}
	return math.Abs(prevTheta)
}
