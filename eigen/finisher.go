package eigen

import (
	"fmt"
	"math"
	"sort"

	"github.com/gonum/matrix/mat64"

	"github.com/mansfield-lab/blockpcg/block"
	"github.com/mansfield-lab/blockpcg/mat"
)

// DefaultFinisher resolves final eigenvalues from the converged
// subspace by diagonalizing the symmetric congruence transform of the
// reduced Rayleigh matrix: with A' = YᴴAY and U = (YᴴY)⁻¹, both
// symmetric, U^½·A'·U^½ is symmetric and shares A'·U's eigenvalues.
//
// Solve's own trace-minimization loop never needs this step — it only
// drives Y into the invariant subspace. A caller that wants an aligned
// eigenbasis rather than just eigenvalues should supply its own
// Finisher that also rotates Y by the eigenvectors this type discards.
type DefaultFinisher struct{}

// Resolve implements Finisher.
func (DefaultFinisher) Resolve(y *block.EvectMatrix, a Operator, work1, work2 *block.EvectMatrix, u *mat.SqMatrix) ([]float64, error) {
	p := y.P

	if err := a(y, work1, false, work2); err != nil {
		return nil, err
	}
	aPrime := mat.NewSqMatrix(p)
	block.XtY(aPrime, y, work1)

	uHalf, err := symSqrt(u)
	if err != nil {
		return nil, errf(Divergence, "could not take square root of Gram inverse: %v", err)
	}

	reduced := mat.NewSqMatrix(p)
	reduced.SetProduct(uHalf, false, aPrime, false)
	m := mat.NewSqMatrix(p)
	m.SetProduct(reduced, false, uHalf, false)
	m.Symmetrize(m.Clone())

	vals, _, err := eigSym(m)
	if err != nil {
		return nil, errf(Divergence, "could not diagonalize reduced Rayleigh matrix: %v", err)
	}
	sort.Float64s(vals)
	return vals, nil
}

// symSqrt returns the symmetric positive-definite square root of m via
// its eigendecomposition, clamping away any negative eigenvalues that
// roundoff produced from what should be a positive-definite matrix.
func symSqrt(m *mat.SqMatrix) (*mat.SqMatrix, error) {
	p := m.P()
	vals, vecs, err := eigSym(m)
	if err != nil {
		return nil, err
	}
	d := mat.NewSqMatrix(p)
	for i, v := range vals {
		if v < 0 {
			v = 0
		}
		d.Set(i, i, math.Sqrt(v))
	}
	tmp := mat.NewSqMatrix(p)
	tmp.SetProduct(vecs, false, d, false)
	out := mat.NewSqMatrix(p)
	out.SetProduct(tmp, false, vecs, true)
	return out, nil
}

// eigSym diagonalizes a symmetric SqMatrix via mat64.EigenSym,
// returning its eigenvalues and the matching eigenvectors as the
// columns of a SqMatrix.
func eigSym(m *mat.SqMatrix) ([]float64, *mat.SqMatrix, error) {
	p := m.P()
	sym := mat64.NewSymDense(p, append([]float64(nil), m.Vals...))

	var es mat64.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, nil, fmt.Errorf("mat64: EigenSym factorization failed")
	}
	vals := es.Values(nil)

	var vv mat64.Dense
	vv.EigenvectorsSym(&es)
	vecs := mat.NewSqMatrix(p)
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			vecs.Set(i, j, vv.At(i, j))
		}
	}
	return vals, vecs, nil
}
