package eigen

import "math"

import "github.com/mansfield-lab/blockpcg/mat"

// traceFunc evaluates the Rayleigh trace functional along the
// cos/sin curve Y(θ) = cosθ·Y + (sinθ/‖D‖)·D, and optionally its
// derivative, from the p×p blocks the driver precomputes once per
// exact line search. It creates no p×p matrices of its own: S1, S2, S3
// are scratch buffers owned by the driver and reused across every
// evaluation. The Invert and SetProduct kernels it calls do allocate
// temporary buffers internally on each evaluation.
type traceFunc struct {
	dNorm float64

	ytAY, dtAD, symYtAD *mat.SqMatrix
	ytY, dtD, symYtD    *mat.SqMatrix

	s1, s2, s3 *mat.SqMatrix
}

// eval returns f(θ), and f′(θ) when wantDeriv is true (df is 0
// otherwise).
func (t *traceFunc) eval(theta float64, wantDeriv bool) (f, df float64) {
	c := math.Cos(theta)
	s := math.Sin(theta) / t.dNorm

	// M1 = c²·YtY + s²·DtD + 2sc·symYtD, inverted in place.
	t.s1.CopyFrom(t.ytY)
	t.s1.ScaleAdd(c*c, s*s, t.dtD)
	t.s1.AddScaled(2*s*c, t.symYtD)
	t.s1.Invert()

	// M2 = c²·YtAY + s²·DtAD + 2sc·symYtAD.
	t.s2.CopyFrom(t.ytAY)
	t.s2.ScaleAdd(c*c, s*s, t.dtAD)
	t.s2.AddScaled(2*s*c, t.symYtAD)

	f = t.s2.TraceProduct(t.s1) // tr(M2ᵀ M1⁻¹) == tr(M2 M1⁻¹), both symmetric

	if !wantDeriv {
		return f, 0
	}

	c2 := math.Cos(2 * theta)
	s2_ := math.Sin(2 * theta)
	invDNorm2 := 1 / (t.dNorm * t.dNorm)

	// M3 = -½s2·(YtAY - DtAD/dNorm²) + (c2/dNorm)·symYtAD.
	t.s3.CopyFrom(t.ytAY)
	t.s3.AddScaled(-invDNorm2, t.dtAD)
	t.s3.ScaleAdd(-0.5*s2_, c2/t.dNorm, t.symYtAD)

	df = t.s1.TraceProduct(t.s3)

	// S2 <- M1⁻¹ · M2 · M1⁻¹ (both symmetric, so no extra transposes
	// are needed beyond what SetProduct already encodes).
	t.s3.SetProduct(t.s1, false, t.s2, true)
	t.s2.SetProduct(t.s3, false, t.s1, true)

	// M3 (rescaled, with YtY/DtD/symYtD in place of YtAY/DtAD/symYtAD).
	t.s3.CopyFrom(t.ytY)
	t.s3.AddScaled(-invDNorm2, t.dtD)
	t.s3.ScaleAdd(-0.5*s2_, c2/t.dNorm, t.symYtD)

	df -= t.s2.TraceProduct(t.s3)
	df *= 2

	return f, df
}
