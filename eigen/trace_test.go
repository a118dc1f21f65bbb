package eigen

import (
	"math"
	"testing"

	"github.com/mansfield-lab/blockpcg/mat"
)

func scalarSq(v float64) *mat.SqMatrix {
	m := mat.NewSqMatrix(1)
	m.Set(0, 0, v)
	return m
}

func TestTraceFuncEvalMatchesFiniteDifference(t *testing.T) {
	tf := &traceFunc{
		dNorm:   1,
		ytAY:    scalarSq(3),
		dtAD:    scalarSq(5),
		symYtAD: scalarSq(0.7),
		ytY:     scalarSq(1),
		dtD:     scalarSq(1),
		symYtD:  scalarSq(0),
		s1:      mat.NewSqMatrix(1),
		s2:      mat.NewSqMatrix(1),
		s3:      mat.NewSqMatrix(1),
	}

	f0, df0 := tf.eval(0, true)
	if math.Abs(f0-3) > 1e-12 {
		t.Errorf("expected f(0) = 3, got %g", f0)
	}

	const h = 1e-6
	fPlus, _ := tf.eval(h, false)
	fMinus, _ := tf.eval(-h, false)
	numeric := (fPlus - fMinus) / (2 * h)

	if math.Abs(df0-numeric) > 1e-5 {
		t.Errorf("analytic derivative %g does not match finite difference %g", df0, numeric)
	}
}

func TestTraceFuncEvalConstantWhenYAndDInterchangeable(t *testing.T) {
	// ytAY = dtAD = 2, symYtAD = 0, ytY = dtD = 1, symYtD = 0: f is
	// constant (Y and D are interchangeable under the metric), so its
	// derivative must vanish everywhere.
	tf := &traceFunc{
		dNorm:   1,
		ytAY:    scalarSq(2),
		dtAD:    scalarSq(2),
		symYtAD: scalarSq(0),
		ytY:     scalarSq(1),
		dtD:     scalarSq(1),
		symYtD:  scalarSq(0),
		s1:      mat.NewSqMatrix(1),
		s2:      mat.NewSqMatrix(1),
		s3:      mat.NewSqMatrix(1),
	}

	for _, theta := range []float64{0, 0.3, math.Pi / 4, 1.2} {
		f, df := tf.eval(theta, true)
		if math.Abs(f-2) > 1e-10 {
			t.Errorf("theta=%g: expected f = 2, got %g", theta, f)
		}
		if math.Abs(df) > 1e-10 {
			t.Errorf("theta=%g: expected df = 0, got %g", theta, df)
		}
	}
}
