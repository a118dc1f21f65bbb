package eigen

import (
	"math"
	"testing"
)

func quadratic(center float64) lineFunc {
	return func(x float64, wantDeriv bool) (f, df float64) {
		f = (x - center) * (x - center)
		if wantDeriv {
			df = 2 * (x - center)
		}
		return f, df
	}
}

func TestLinminFindsQuadraticMinimum(t *testing.T) {
	f := quadratic(2)
	_, dfXmin := f(0, true)

	theta, improvement, err := linmin(0, dfXmin, 10, 1, 1e-9, f)
	if err != nil {
		t.Fatalf("linmin returned an error: %s", err.Error())
	}
	if math.Abs(theta-2) > 1e-5 {
		t.Errorf("expected theta close to 2, got %g", theta)
	}
	if improvement <= 0 {
		t.Errorf("expected positive improvement, got %g", improvement)
	}
}

func TestLinminBadInitialGuess(t *testing.T) {
	f := quadratic(2)
	_, dfXmin := f(0, true)

	// x0 = -1 is not downhill from xmin = 0 (df_xmin < 0 requires x0 > xmin).
	_, _, err := linmin(0, dfXmin, 10, -1, 1e-9, f)
	if err == nil {
		t.Fatalf("expected an error for an uphill initial guess")
	}
	if serr, ok := err.(*SolverError); !ok || serr.Kind != BadInput {
		t.Errorf("expected a BadInput SolverError, got %v", err)
	}
}

func TestLinminAlreadyAtMinimum(t *testing.T) {
	// df_xmin = 0 means xmin is itself already a stationary point:
	// linmin returns it immediately instead of applying the
	// strictly-downhill entry check.
	f := quadratic(0)
	theta, improvement, err := linmin(0, 0, 10, 5, 1e-9, f)
	if err != nil {
		t.Fatalf("unexpected error when df_xmin = 0: %v", err)
	}
	if theta != 0 {
		t.Errorf("expected theta = xmin (0), got %g", theta)
	}
	if improvement != 0 {
		t.Errorf("expected improvement = 0, got %g", improvement)
	}
}

func TestThetaGuardNearMaximum(t *testing.T) {
	var logged string
	theta := thetaGuard(1, -1, 0.3, 0, func(msg string) { logged = msg })
	if theta != -0.3 {
		t.Errorf("expected signed step -0.3, got %g", theta)
	}
	if logged == "" {
		t.Errorf("expected a diagnostic message to be logged")
	}
}

func TestThetaGuardLargeTheta(t *testing.T) {
	var logged string
	// dE=1e-6, d2E=1e-9 gives theta = -1000, which wraps past pi.
	theta := thetaGuard(1e-6, 1e-9, 0.4, 0, func(msg string) { logged = msg })
	if math.Abs(theta) != 0.4 {
		t.Errorf("expected signed step of magnitude 0.4, got %g", theta)
	}
	if logged == "" {
		t.Errorf("expected a diagnostic message to be logged")
	}
}

func TestThetaGuardOrdinaryCase(t *testing.T) {
	theta := thetaGuard(-1, 2, 0.1, 0, func(string) {})
	if math.Abs(theta-0.5) > 1e-12 {
		t.Errorf("expected theta = 0.5, got %g", theta)
	}
}
