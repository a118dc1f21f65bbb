/*Package mat implements the small p×p dense matrix kernel used by the
block eigensolver: Gram matrices, Rayleigh-quotient blocks, and the
handful of algebraic combinations the outer trace-minimization loop
needs along the way.

p is always small relative to n (the block eigensolver never asks for
more than a few dozen eigenpairs at once), so SqMatrix keeps its data
dense and row-major and leans on github.com/gonum/matrix/mat64 for the
one operation that's worth not hand-rolling: inversion.
*/
package mat

import (
	"fmt"
	"math"

	"github.com/gonum/matrix/mat64"
)

// SqMatrix is a p×p dense real matrix. The solver treats it as the
// "small matrix" of the eigensolver's data model: Gram matrices,
// Rayleigh blocks, and their algebraic combinations.
//
// Hermitian, in this real-only rendering, means symmetric; adjoint
// flags passed to the product routines below are transpose flags.
type SqMatrix struct {
	p    int
	Vals []float64 // row-major, length p*p
}

// NewSqMatrix allocates a zeroed p×p matrix.
func NewSqMatrix(p int) *SqMatrix {
	if p <= 0 {
		panic("mat: p must be positive")
	}
	return &SqMatrix{p: p, Vals: make([]float64, p*p)}
}

// P returns the matrix's dimension.
func (m *SqMatrix) P() int { return m.p }

// At returns the (i,j) entry.
func (m *SqMatrix) At(i, j int) float64 { return m.Vals[i*m.p+j] }

// Set assigns the (i,j) entry.
func (m *SqMatrix) Set(i, j int, v float64) { m.Vals[i*m.p+j] = v }

// Clone returns an independent copy.
func (m *SqMatrix) Clone() *SqMatrix {
	out := NewSqMatrix(m.p)
	copy(out.Vals, m.Vals)
	return out
}

func (m *SqMatrix) checkConform(other *SqMatrix) {
	if m.p != other.p {
		panic(fmt.Sprintf("mat: dimension mismatch %d != %d", m.p, other.p))
	}
}

// CopyFrom sets m = src.
func (m *SqMatrix) CopyFrom(src *SqMatrix) {
	m.checkConform(src)
	copy(m.Vals, src.Vals)
}

// Zero sets every entry to zero.
func (m *SqMatrix) Zero() {
	for i := range m.Vals {
		m.Vals[i] = 0
	}
}

// Identity sets m to the p×p identity matrix.
func (m *SqMatrix) Identity() {
	m.Zero()
	for i := 0; i < m.p; i++ {
		m.Set(i, i, 1)
	}
}

// Scale multiplies every entry by a.
func (m *SqMatrix) Scale(a float64) {
	for i := range m.Vals {
		m.Vals[i] *= a
	}
}

// ScaleAdd sets m = a*m + b*other. (sqmatrix_aApbB in the reference kernel.)
func (m *SqMatrix) ScaleAdd(a float64, b float64, other *SqMatrix) {
	m.checkConform(other)
	for i := range m.Vals {
		m.Vals[i] = a*m.Vals[i] + b*other.Vals[i]
	}
}

// AddScaled sets m = m + a*other. (sqmatrix_ApaB.)
func (m *SqMatrix) AddScaled(a float64, other *SqMatrix) {
	m.checkConform(other)
	for i := range m.Vals {
		m.Vals[i] += a * other.Vals[i]
	}
}

// product computes op(b)*op(c) into a fresh row-major buffer.
func product(b *SqMatrix, adjB bool, c *SqMatrix, adjC bool) []float64 {
	p := b.p
	out := make([]float64, p*p)
	get := func(m *SqMatrix, adj bool, i, j int) float64 {
		if adj {
			return m.At(j, i)
		}
		return m.At(i, j)
	}
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			var sum float64
			for k := 0; k < p; k++ {
				sum += get(b, adjB, i, k) * get(c, adjC, k, j)
			}
			out[i*p+j] = sum
		}
	}
	return out
}

// SetProduct sets m = op(b)*op(c), where op is transpose when the
// matching adjoint flag is true. (sqmatrix_AeBC.)
func (m *SqMatrix) SetProduct(b *SqMatrix, adjB bool, c *SqMatrix, adjC bool) {
	m.checkConform(b)
	m.checkConform(c)
	copy(m.Vals, product(b, adjB, c, adjC))
}

// AddScaledProduct sets m = m + a*op(b)*op(c). (sqmatrix_ApaBC.)
func (m *SqMatrix) AddScaledProduct(a float64, b *SqMatrix, adjB bool, c *SqMatrix, adjC bool) {
	m.checkConform(b)
	m.checkConform(c)
	prod := product(b, adjB, c, adjC)
	for i := range m.Vals {
		m.Vals[i] += a * prod[i]
	}
}

// Symmetrize sets m = (src + srcᵀ)/2. (sqmatrix_symmetrize.)
func (m *SqMatrix) Symmetrize(src *SqMatrix) {
	m.checkConform(src)
	p := m.p
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			m.Set(i, j, 0.5*(src.At(i, j)+src.At(j, i)))
		}
	}
}

// Trace returns tr(m).
func (m *SqMatrix) Trace() float64 {
	var t float64
	for i := 0; i < m.p; i++ {
		t += m.At(i, i)
	}
	return t
}

// TraceProduct returns tr(mᵀ·other). (sqmatrix_traceAtB.)
func (m *SqMatrix) TraceProduct(other *SqMatrix) float64 {
	m.checkConform(other)
	var t float64
	for i := 0; i < m.p; i++ {
		for j := 0; j < m.p; j++ {
			t += m.At(i, j) * other.At(i, j)
		}
	}
	return t
}

// dense returns a mat64.Dense view sharing no memory with m (mat64
// mutates in place, and callers of Invert still need m's pre-inversion
// values for CHECK-style diagnostics upstream).
func (m *SqMatrix) dense() *mat64.Dense {
	vals := make([]float64, len(m.Vals))
	copy(vals, m.Vals)
	return mat64.NewDense(m.p, m.p, vals)
}

// Invert replaces m with its own inverse.
//
// The reference algorithm only ever inverts Gram matrices YᴴY, which
// are Hermitian positive-definite whenever Y has full column rank, so
// the Cholesky path is tried first (it is both faster and numerically
// better conditioned than a general LU-based inverse); a matrix that
// fails Cholesky is inverted the general way instead.
func (m *SqMatrix) Invert() error {
	p := m.p
	sym := mat64.NewSymDense(p, append([]float64(nil), m.Vals...))

	var chol mat64.Cholesky
	if ok := chol.Factorize(sym); ok {
		id := mat64.NewDense(p, p, nil)
		for i := 0; i < p; i++ {
			id.Set(i, i, 1)
		}
		var inv mat64.Dense
		if err := inv.SolveCholesky(&chol, id); err == nil {
			for i := 0; i < p; i++ {
				for j := 0; j < p; j++ {
					m.Set(i, j, inv.At(i, j))
				}
			}
			return nil
		}
	}

	var inv mat64.Dense
	if err := inv.Inverse(m.dense()); err != nil {
		return fmt.Errorf("mat: singular matrix: %w", err)
	}
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			m.Set(i, j, inv.At(i, j))
		}
	}
	return nil
}

// BadNum reports whether x is NaN or infinite. (BADNUM in the
// reference kernel; used as the driver's health check on every trace.)
func BadNum(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}
