package eigen

// modelledCosts estimates this iteration's total cost under the exact
// and under the Newton-approximate line search from the per-kernel
// timings run() and exactLineSearch measured. Only one of the two
// paths actually executes per iteration, so the untaken path's cost
// is modelled from the kernels both paths share: both paths are charged
// two operator applications, while the exact search forms twice as many
// XᵀY products (4·t_ZtW against 2·t_ZtW) for its trace-functional
// matrices; only the exact search pays the linmin root-find itself.
func (s *solver) modelledCosts() (tExact, tApprox float64) {
	tExact = 2*s.tAZ + s.tKZ + 4*s.tZtW + 2*s.tZS + 2*s.tZtZ + s.tLinmin
	tApprox = 2*s.tAZ + s.tKZ + 2*s.tZtW + 2*s.tZS + 2*s.tZtZ
	if s.cfg.Flags.has(ProjectPreconditioning) {
		tExact += s.tZtW + s.tZS
		tApprox += s.tZtW + s.tZS
	}
	return tExact, tApprox
}

// scheduleNextLineSearch decides, after a line search reported the
// given fractional improvement, whether later iterations should
// switch to the cheaper Newton-approximate search instead. It only
// ever downgrades from exact to approximate; a Newton step that later
// turns out unreliable forces an exact search again regardless of
// what this function decided (see newtonStep).
func (s *solver) scheduleNextLineSearch(improvement float64) {
	if s.cfg.Flags.has(ForceExactLinmin) || s.cfg.Flags.has(ForceApproxLinmin) {
		return
	}
	if !s.haveLinmin {
		return
	}
	tExact, tApprox := s.modelledCosts()
	if improvement > 0 && improvement <= 0.05 && tExact > 2.0*tApprox {
		s.logf("eigen: switching to approximate line search (t_exact=%.3g t_approx=%.3g improvement=%.3g)",
			tExact, tApprox, improvement)
		s.useLinmin = false
	}
}
