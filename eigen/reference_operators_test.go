package eigen

import (
	"math"
	"testing"

	"github.com/mansfield-lab/blockpcg/block"
)

func TestDiagonalOperator(t *testing.T) {
	diag := []float64{1, 2, 3}
	op := Diagonal(diag)

	y := block.New(3, 2)
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			y.Set(i, j, float64(i+1))
		}
	}
	out := block.New(3, 2)
	if err := op(y, out, true, block.New(3, 2)); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			want := diag[i] * float64(i+1)
			if math.Abs(out.At(i, j)-want) > 1e-12 {
				t.Errorf("out[%d][%d] = %g, want %g", i, j, out.At(i, j), want)
			}
		}
	}
}

func TestDiagonalOperatorDimensionMismatch(t *testing.T) {
	op := Diagonal([]float64{1, 2, 3})
	y := block.New(4, 1)
	err := op(y, block.New(4, 1), false, block.New(4, 1))
	if err == nil {
		t.Fatalf("expected a dimension-mismatch error")
	}
}

func TestDenseOperatorIdentity(t *testing.T) {
	n := 3
	id := make([]float64, n*n)
	for i := 0; i < n; i++ {
		id[i*n+i] = 1
	}
	op := Dense(n, id)

	y := block.New(n, 1)
	y.Data = []float64{1, 2, 3}
	out := block.New(n, 1)
	if err := op(y, out, false, block.New(n, 1)); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	for i, want := range y.Data {
		if out.Data[i] != want {
			t.Errorf("out[%d] = %g, want %g", i, out.Data[i], want)
		}
	}
}
