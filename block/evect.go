/*Package block implements the tall-skinny n×p block kernel the solver
calls "EvectMatrix": the distributed-column vector operations that the
outer trace-minimization loop treats as an external collaborator.

n is the (large) number of rows and p is the (small) block width — the
number of eigenpairs being solved for simultaneously. A production
deployment would shard rows across workers and make XtX/XtY collective
reductions; this reference implementation keeps everything local and
routes the n×p-by-p×p products through github.com/gonum/blas/blas64,
and the purely elementwise combinations through github.com/gonum/floats,
the same way a hand-written Go iterative solver in this corpus
(gonum's own CG) leans on floats.Dot/floats.AddScaled instead of writing
its own loops.
*/
package block

import (
	"fmt"

	"github.com/gonum/blas"
	"github.com/gonum/blas/blas64"
	"github.com/gonum/floats"

	"github.com/mansfield-lab/blockpcg/mat"
)

// EvectMatrix is a logical n×p dense real matrix, stored row-major.
type EvectMatrix struct {
	N, P int
	Data []float64 // length N*P
}

// New allocates a zeroed n×p block.
func New(n, p int) *EvectMatrix {
	if n <= 0 || p <= 0 {
		panic("block: n and p must be positive")
	}
	return &EvectMatrix{N: n, P: p, Data: make([]float64, n*p)}
}

func (x *EvectMatrix) checkConform(y *EvectMatrix) {
	if x.N != y.N || x.P != y.P {
		panic(fmt.Sprintf("block: dimension mismatch (%d,%d) != (%d,%d)",
			x.N, x.P, y.N, y.P))
	}
}

func (x *EvectMatrix) general() blas64.General {
	return blas64.General{Rows: x.N, Cols: x.P, Stride: x.P, Data: x.Data}
}

func sqGeneral(s *mat.SqMatrix) blas64.General {
	p := s.P()
	return blas64.General{Rows: p, Cols: p, Stride: p, Data: s.Vals}
}

// At returns the (i,j) entry.
func (x *EvectMatrix) At(i, j int) float64 { return x.Data[i*x.P+j] }

// Set assigns the (i,j) entry.
func (x *EvectMatrix) Set(i, j int, v float64) { x.Data[i*x.P+j] = v }

// Clone returns an independent copy.
func (x *EvectMatrix) Clone() *EvectMatrix {
	out := New(x.N, x.P)
	copy(out.Data, x.Data)
	return out
}

// CopyFrom sets x = src. (evectmatrix_copy.)
func (x *EvectMatrix) CopyFrom(src *EvectMatrix) {
	x.checkConform(src)
	copy(x.Data, src.Data)
}

// Zero sets every entry to zero.
func (x *EvectMatrix) Zero() {
	for i := range x.Data {
		x.Data[i] = 0
	}
}

// Scale multiplies every entry by a.
func (x *EvectMatrix) Scale(a float64) {
	floats.Scale(a, x.Data)
}

// XtX sets dst = xᵀx, a p×p Gram matrix. (evectmatrix_XtX.)
func XtX(dst *mat.SqMatrix, x *EvectMatrix) {
	if dst.P() != x.P {
		panic("block: XtX dimension mismatch")
	}
	xg := x.general()
	blas64.Gemm(blas.Trans, blas.NoTrans, 1, xg, xg, 0, sqGeneral(dst))
}

// XtY sets dst = xᵀy. (evectmatrix_XtY.)
func XtY(dst *mat.SqMatrix, x, y *EvectMatrix) {
	x.checkConform(y)
	if dst.P() != x.P {
		panic("block: XtY dimension mismatch")
	}
	blas64.Gemm(blas.Trans, blas.NoTrans, 1, x.general(), y.general(), 0, sqGeneral(dst))
}

// XeYS sets x = y·s. isHermitian documents (but does not change the
// arithmetic of) the kernel contract's hint that s is Hermitian — real
// SqMatrix multiplication is the same either way. (evectmatrix_XeYS.)
func XeYS(x, y *EvectMatrix, s *mat.SqMatrix, isHermitian bool) {
	_ = isHermitian
	x.checkConform(y)
	if s.P() != x.P {
		panic("block: XeYS dimension mismatch")
	}
	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1, y.general(), sqGeneral(s), 0, x.general())
}

// XpaYS sets x = x + a·y·s. (evectmatrix_XpaYS.)
func XpaYS(x *EvectMatrix, a float64, y *EvectMatrix, s *mat.SqMatrix) {
	x.checkConform(y)
	if s.P() != x.P {
		panic("block: XpaYS dimension mismatch")
	}
	blas64.Gemm(blas.NoTrans, blas.NoTrans, a, y.general(), sqGeneral(s), 1, x.general())
}

// AXpbY sets x = a·x + b·y. (evectmatrix_aXpbY.)
func AXpbY(a float64, x *EvectMatrix, b float64, y *EvectMatrix) {
	x.checkConform(y)
	floats.Scale(a, x.Data)
	floats.AddScaled(x.Data, b, y.Data)
}

// TraceXtY returns tr(xᵀy). (evectmatrix_traceXtY.)
func TraceXtY(x, y *EvectMatrix) float64 {
	x.checkConform(y)
	return floats.Dot(x.Data, y.Data)
}
