package config

import "github.com/mansfield-lab/blockpcg/eigen"

// SolverSettings holds the on-disk/CLI-configurable knobs of a Solve
// call: the convergence tolerance, the iteration cap, and the named
// flag bits.
type SolverSettings struct {
	Tolerance     float64
	MaxIterations int64

	Verbose                bool
	ProjectPreconditioning bool
	ResetCG                bool
	ForceExactLinmin       bool
	ForceApproxLinmin      bool
}

// LoadSolverConfig reads a "[blockpcg]" config file in the declarative
// format ReadConfig understands into a SolverSettings.
func LoadSolverConfig(fname string) (SolverSettings, error) {
	var s SolverSettings
	vars := NewConfigVars("blockpcg")
	vars.Float(&s.Tolerance, "Tolerance", 1e-7)
	vars.Int((*int64)(&s.MaxIterations), "MaxIterations", 10000)
	vars.Bool(&s.Verbose, "Verbose", false)
	vars.Bool(&s.ProjectPreconditioning, "ProjectPreconditioning", false)
	vars.Bool(&s.ResetCG, "ResetCG", false)
	vars.Bool(&s.ForceExactLinmin, "ForceExactLinmin", false)
	vars.Bool(&s.ForceApproxLinmin, "ForceApproxLinmin", false)

	if err := ReadConfig(fname, vars); err != nil {
		return SolverSettings{}, err
	}
	return s, nil
}

// Flags packs the boolean settings into an eigen.Flags bitmask.
func (s SolverSettings) Flags() eigen.Flags {
	var f eigen.Flags
	if s.Verbose {
		f |= eigen.Verbose
	}
	if s.ProjectPreconditioning {
		f |= eigen.ProjectPreconditioning
	}
	if s.ResetCG {
		f |= eigen.ResetCG
	}
	if s.ForceExactLinmin {
		f |= eigen.ForceExactLinmin
	}
	if s.ForceApproxLinmin {
		f |= eigen.ForceApproxLinmin
	}
	return f
}

// Options returns the eigen.Option values corresponding to these
// settings, ready to pass straight to eigen.Solve.
func (s SolverSettings) Options() []eigen.Option {
	return []eigen.Option{
		eigen.WithTolerance(s.Tolerance),
		eigen.WithMaxIterations(int(s.MaxIterations)),
		eigen.WithFlags(s.Flags()),
	}
}
