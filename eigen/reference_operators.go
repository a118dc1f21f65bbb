package eigen

import (
	"github.com/gonum/blas"
	"github.com/gonum/blas/blas64"

	"github.com/mansfield-lab/blockpcg/block"
)

// Diagonal returns an Operator representing multiplication by a real
// diagonal matrix: the simplest Hermitian operator, and the one the
// smallest end-to-end tests exercise.
func Diagonal(diag []float64) Operator {
	return func(yIn, yOut *block.EvectMatrix, isFirstCall bool, scratch *block.EvectMatrix) error {
		_ = isFirstCall
		_ = scratch
		if yIn.N != len(diag) {
			return errf(BadInput, "diagonal operator: length %d does not match block height %d", len(diag), yIn.N)
		}
		for i := 0; i < yIn.N; i++ {
			for j := 0; j < yIn.P; j++ {
				yOut.Set(i, j, diag[i]*yIn.At(i, j))
			}
		}
		return nil
	}
}

// Dense returns an Operator representing multiplication by a dense
// symmetric n×n matrix stored row-major, for SPD end-to-end tests.
// Callers are responsible for vals actually being symmetric; Dense
// does not check.
func Dense(n int, vals []float64) Operator {
	if len(vals) != n*n {
		panic("eigen: Dense: vals has wrong length")
	}
	a := blas64.General{Rows: n, Cols: n, Stride: n, Data: vals}

	return func(yIn, yOut *block.EvectMatrix, isFirstCall bool, scratch *block.EvectMatrix) error {
		_ = isFirstCall
		_ = scratch
		if yIn.N != n {
			return errf(BadInput, "dense operator: dimension %d does not match block height %d", n, yIn.N)
		}
		yInG := blas64.General{Rows: yIn.N, Cols: yIn.P, Stride: yIn.P, Data: yIn.Data}
		yOutG := blas64.General{Rows: yOut.N, Cols: yOut.P, Stride: yOut.P, Data: yOut.Data}
		blas64.Gemm(blas.NoTrans, blas.NoTrans, 1, a, yInG, 0, yOutG)
		return nil
	}
}
