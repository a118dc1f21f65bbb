package block

import (
	"math"
	"testing"

	"github.com/mansfield-lab/blockpcg/mat"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func identityBlock(n, p int) *EvectMatrix {
	x := New(n, p)
	for j := 0; j < p; j++ {
		x.Set(j, j, 1)
	}
	return x
}

func TestXtXIdentity(t *testing.T) {
	x := identityBlock(5, 3)
	g := mat.NewSqMatrix(3)
	XtX(g, x)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if !approxEqual(g.At(i, j), want, 1e-12) {
				t.Errorf("XtX(%d,%d) = %g, want %g", i, j, g.At(i, j), want)
			}
		}
	}
}

func TestXeYSAndXpaYS(t *testing.T) {
	y := New(4, 2)
	for i := 0; i < 4; i++ {
		y.Set(i, 0, float64(i+1))
		y.Set(i, 1, float64(2*i+1))
	}
	s := mat.NewSqMatrix(2)
	s.Set(0, 0, 1)
	s.Set(1, 1, 2)

	x := New(4, 2)
	XeYS(x, y, s, true)
	for i := 0; i < 4; i++ {
		if !approxEqual(x.At(i, 0), y.At(i, 0), 1e-12) {
			t.Errorf("XeYS col0 row %d = %g, want %g", i, x.At(i, 0), y.At(i, 0))
		}
		if !approxEqual(x.At(i, 1), 2*y.At(i, 1), 1e-12) {
			t.Errorf("XeYS col1 row %d = %g, want %g", i, x.At(i, 1), 2*y.At(i, 1))
		}
	}

	XpaYS(x, -1.0, y, s)
	for _, v := range x.Data {
		if !approxEqual(v, 0, 1e-9) {
			t.Errorf("XpaYS residual = %g, want 0", v)
		}
	}
}

func TestAXpbYAndTraceXtY(t *testing.T) {
	x := New(3, 1)
	y := New(3, 1)
	for i := 0; i < 3; i++ {
		x.Set(i, 0, 1)
		y.Set(i, 0, 2)
	}
	AXpbY(2.0, x, 3.0, y) // x = 2*1 + 3*2 = 8
	for _, v := range x.Data {
		if !approxEqual(v, 8, 1e-12) {
			t.Errorf("AXpbY = %g, want 8", v)
		}
	}

	trace := TraceXtY(x, y)
	want := 8.0 * 2.0 * 3.0 // sum over 3 rows of x_i*y_i
	if !approxEqual(trace, want, 1e-9) {
		t.Errorf("TraceXtY = %g, want %g", trace, want)
	}
}
