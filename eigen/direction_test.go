package eigen

import (
	"math"
	"testing"

	"github.com/mansfield-lab/blockpcg/block"
)

func newTestSolver(n, p int, usingCG, usePR bool) *solver {
	s := &solver{
		cfg: newConfig(nil),
		p:   p,
		g:   block.New(n, p),
		x:   block.New(n, p),
	}
	s.usingCG = usingCG
	if usingCG {
		s.d = block.New(n, p)
	} else {
		s.d = s.x
	}
	s.usePolakRibiere = usePR
	if usePR {
		s.prevG = block.New(n, p)
	} else {
		s.prevG = s.g
	}
	return s
}

func TestBuildDirectionNoCGAliasesX(t *testing.T) {
	s := newTestSolver(6, 1, false, false)
	for i := range s.x.Data {
		s.x.Data[i] = float64(i + 1)
	}
	s.buildDirection()
	if s.d != s.x {
		t.Fatalf("expected D to alias X when CG workspace is absent")
	}
}

func TestBuildDirectionFirstIterationIsSteepestDescent(t *testing.T) {
	s := newTestSolver(6, 1, true, true)
	for i := range s.g.Data {
		s.g.Data[i] = float64(i + 1)
		s.x.Data[i] = float64(i + 1)
	}

	s.buildDirection()

	for i := range s.d.Data {
		if s.d.Data[i] != s.x.Data[i] {
			t.Errorf("expected D = X on the first iteration, got D[%d]=%g X[%d]=%g",
				i, s.d.Data[i], i, s.x.Data[i])
		}
	}
	if s.prevTraceGtX != block.TraceXtY(s.g, s.x) {
		t.Errorf("expected prevTraceGtX to be recorded")
	}
}

func TestBuildDirectionResetEveryIntervalWhenFlagged(t *testing.T) {
	s := newTestSolver(6, 1, true, true)
	s.cfg.Flags = ResetCG
	s.iteration = 70
	s.prevTraceGtX = 1 // nonzero, so only the periodic reset should trigger

	for i := range s.g.Data {
		s.g.Data[i] = float64(i + 1)
		s.x.Data[i] = float64(i + 1)
	}
	// Seed D with something a non-reset update would show through.
	for i := range s.d.Data {
		s.d.Data[i] = 1000
	}

	s.buildDirection()

	for i := range s.d.Data {
		if s.d.Data[i] != s.x.Data[i] {
			t.Errorf("expected a reset to steepest descent at iteration 70, got D[%d]=%g", i, s.d.Data[i])
		}
	}
}

func TestBuildDirectionGammaNeverNegative(t *testing.T) {
	s := newTestSolver(4, 1, true, true)
	s.prevTraceGtX = 1
	s.prevG.Data = []float64{10, 10, 10, 10}
	s.g.Data = []float64{1, 1, 1, 1}
	s.x.Data = []float64{1, 1, 1, 1}
	s.d.Data = []float64{1, 1, 1, 1}

	s.buildDirection()

	// traceGtX = 4, traceXtY(prevG, x) = 40, numerator = 4-40 = -36 < 0,
	// so gamma must be clamped to 0 and D must equal X exactly.
	for i := range s.d.Data {
		if math.Abs(s.d.Data[i]-s.x.Data[i]) > 1e-12 {
			t.Errorf("expected gamma clamped to 0 (D = X), got D[%d]=%g", i, s.d.Data[i])
		}
	}
}
