package eigen

import "math"

// lineFunc evaluates a scalar function of one variable (here, the
// trace functional along D) and its derivative when wantDeriv is
// true.
type lineFunc func(x float64, wantDeriv bool) (f, df float64)

// linmin minimizes f between xmin and xmax, with x0 an initial guess,
// to within a fractional tolerance in x. df_xmin must be the
// derivative of f at xmin.
//
// x0 must be downhill from xmin: if df_xmin < 0 then x0 > xmin, and
// the opposite if df_xmin > 0; xmax must be downhill from x0 the same
// way. The solver's only caller of linmin (the exact line search)
// always satisfies this by construction.
//
// df_xmin = 0 means xmin is already a stationary point: linmin
// returns it immediately with zero improvement rather than applying
// the downhill check.
//
// linmin brackets the minimum by expanding geometrically from xmin,
// then finds the root of f′ by Ridders' method. It returns the
// minimizing x and the fractional improvement in f relative to the
// first x0 evaluated.
func linmin(xmin, dfXmin, xmax, x0, tolerance float64, f lineFunc) (theta, improvement float64, err error) {
	if dfXmin == 0 {
		return xmin, 0, nil
	}
	if !(dfXmin*(x0-xmin) < 0.0) {
		return 0, 0, errf(BadInput, "bad initial guess: not downhill from xmin")
	}

	s := 1.0
	if xmax < xmin {
		s = -1.0
	}
	if !(x0*s < xmax*s && x0*s > xmin*s) {
		return 0, 0, errf(BadInput, "initial guess out of [xmin, xmax] range")
	}

	// Phase 1: bracket the minimum by expanding from xmin in
	// increasing steps until the derivative changes sign.
	var dfXmax float64
	bracketed := false
	for !bracketed {
		xmin2, dfXmin2 := xmin, dfXmin
		dx := (x0 - xmin) * 2.0

		var x, dfx float64
		foundSignChange := false
		for x = xmin + dx; x*s <= xmax*s; x += dx {
			_, dfx = f(x, true)
			if dfx*(x-xmin) > 0.0 {
				foundSignChange = true
				break
			}
			xmin2, dfXmin2 = x, dfx
		}

		if foundSignChange {
			xmin, dfXmin = xmin2, dfXmin2
			xmax, dfXmax = x, dfx
			bracketed = true
			break
		}

		x0 = 0.5 * (x0 + xmin)
		if !(math.Abs(x0-xmin) > tolerance*(math.Abs(x0)+tolerance)) {
			return 0, 0, errf(BracketFailure, "could not bracket a minimum within tolerance")
		}
	}

	if x0*s <= xmin*s || x0*s >= xmax*s {
		x0 = 0.5 * (xmin + xmax)
	}

	// The scan above can leave xmin > xmax when s == -1; Ridders'
	// method below assumes the canonical ordering.
	if xmin > xmax {
		xmin, xmax = xmax, xmin
		dfXmin, dfXmax = dfXmax, dfXmin
	}

	// Phase 2: Ridders' method on f′.
	var fStart float64
	haveStart := false
	xPrev := x0
	for {
		fX0, dfX0 := f(x0, true)
		if !haveStart {
			fStart = fX0
			haveStart = true
		}

		if dfX0 == 0 {
			break
		}
		if dfXmin == 0 {
			x0 = xmin
			break
		}
		if dfXmax == 0 {
			x0 = xmax
			break
		}

		sign := -1.0
		if dfXmin > dfXmax {
			sign = 1.0
		}
		x := x0 + (x0-xmin)*sign*dfX0/math.Sqrt(dfX0*dfX0-dfXmin*dfXmax)

		if math.Max(math.Abs(x-xPrev), math.Min(math.Abs(x-xmin), math.Abs(x-xmax))) <
			tolerance*(math.Abs(x)+tolerance) {
			x0 = x
			break
		}

		_, dfx := f(x, true)

		if dfx*dfX0 > 0 || (dfx-dfX0)*(x-x0) < 0 {
			if x < x0 {
				if dfXmin*dfx > 0 || (dfXmin-dfx)*(xmin-x) < 0 {
					xmin, dfXmin = x0, dfX0
				} else {
					xmax, dfXmax = x, dfx
				}
			} else if dfXmin*dfX0 > 0 || (dfXmin-dfX0)*(xmin-x0) < 0 {
				xmin, dfXmin = x, dfx
			} else {
				xmax, dfXmax = x0, dfX0
			}
		} else {
			if x < x0 {
				xmin, dfXmin = x, dfx
				xmax, dfXmax = x0, dfX0
			} else {
				xmin, dfXmin = x0, dfX0
				xmax, dfXmax = x, dfx
			}
		}

		x0 = 0.5 * (xmin + xmax)
		xPrev = x
	}

	fFinal, _ := f(x0, false)
	improvement = (fStart - fFinal) * 2.0 / (math.Abs(fStart) + math.Abs(fFinal) + tolerance)

	return x0, improvement, nil
}
