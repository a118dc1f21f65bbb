package eigen

import "testing"

func newSchedulerSolver() *solver {
	return &solver{cfg: newConfig(nil), useLinmin: true}
}

func TestScheduleNextLineSearchSwitchesWhenExactIsExpensive(t *testing.T) {
	s := newSchedulerSolver()
	s.tAZ, s.tZtW, s.tZS, s.tZtZ = 0.01, 0.01, 0.01, 0.01
	s.tLinmin = 1.0
	s.haveLinmin = true

	s.scheduleNextLineSearch(0.02)

	if s.useLinmin {
		t.Errorf("expected the scheduler to switch to the approximate search")
	}
}

func TestScheduleNextLineSearchStaysExactWhenImprovementIsLarge(t *testing.T) {
	s := newSchedulerSolver()
	s.tAZ, s.tZtW, s.tZS, s.tZtZ = 0.01, 0.01, 0.01, 0.01
	s.tLinmin = 1.0
	s.haveLinmin = true

	s.scheduleNextLineSearch(0.5)

	if !s.useLinmin {
		t.Errorf("expected the scheduler to stay with the exact search when improvement is large")
	}
}

func TestScheduleNextLineSearchRespectsForcedFlags(t *testing.T) {
	s := newSchedulerSolver()
	s.cfg.Flags = ForceExactLinmin
	s.tAZ, s.tZtW, s.tZS, s.tZtZ = 0.01, 0.01, 0.01, 0.01
	s.tLinmin = 1.0
	s.haveLinmin = true

	s.scheduleNextLineSearch(0.01)

	if !s.useLinmin {
		t.Errorf("expected ForceExactLinmin to prevent the scheduler from switching")
	}
}

func TestScheduleNextLineSearchWaitsForFirstLinminMeasurement(t *testing.T) {
	s := newSchedulerSolver()
	s.tAZ, s.tZtW, s.tZS, s.tZtZ = 0.01, 0.01, 0.01, 0.01

	s.scheduleNextLineSearch(0.02)

	if !s.useLinmin {
		t.Errorf("expected the scheduler not to switch before t_linmin has ever been measured")
	}
}

func TestModelledCostsAddsProjectPreconditioningToBothPaths(t *testing.T) {
	s := newSchedulerSolver()
	s.tAZ, s.tKZ, s.tZtW, s.tZS, s.tZtZ, s.tLinmin = 1, 1, 1, 1, 1, 1

	tExactBase, tApproxBase := s.modelledCosts()

	s.cfg.Flags = ProjectPreconditioning
	tExact, tApprox := s.modelledCosts()

	if tExact != tExactBase+2 || tApprox != tApproxBase+2 {
		t.Errorf("expected ProjectPreconditioning to add t_ZtW+t_ZS to both paths, got tExact=%g tApprox=%g", tExact, tApprox)
	}
}
