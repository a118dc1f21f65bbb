package eigen

// Flags is the bitmask of recognized solver options.
type Flags int

const (
	// Verbose turns on per-iteration diagnostic output.
	Verbose Flags = 1 << iota
	// ProjectPreconditioning applies (I − Y U Yᴴ) to the preconditioned
	// gradient before it feeds the direction builder.
	ProjectPreconditioning
	// ResetCG periodically forgets the CG search direction every 70
	// iterations, falling back to steepest descent for one step.
	ResetCG
	// ForceExactLinmin pins the line search to the exact (Ridders)
	// method, overriding the adaptive scheduler.
	ForceExactLinmin
	// ForceApproxLinmin pins the line search to the Newton-approximate
	// method, overriding the adaptive scheduler.
	ForceApproxLinmin
)

func (f Flags) has(bit Flags) bool { return f&bit != 0 }

// Option configures a Config, following the functional-option idiom
// used elsewhere for numerical routines (math/calc.DerivOption).
type Option func(*Config)

// Config holds the tuning parameters for one Solve call, beyond the
// operator bundle and workspace.
type Config struct {
	Tolerance     float64
	MaxIterations int
	Flags         Flags
	Clock         clockSource
}

// WithTolerance sets the fractional convergence tolerance on the
// Rayleigh trace (default 1e-7 if unset).
func WithTolerance(tol float64) Option {
	return func(c *Config) { c.Tolerance = tol }
}

// WithMaxIterations overrides the default hard iteration cap of 10000.
func WithMaxIterations(n int) Option {
	return func(c *Config) { c.MaxIterations = n }
}

// WithFlags sets the solver's flag bitmask.
func WithFlags(f Flags) Option {
	return func(c *Config) { c.Flags = f }
}

// WithClock overrides the clock used to time kernel calls for the
// adaptive scheduler (default clock.System); tests use this to supply
// a clock.Fake and drive the scheduler deterministically.
func WithClock(c clockSource) Option {
	return func(cfg *Config) { cfg.Clock = c }
}

func newConfig(opts []Option) *Config {
	c := &Config{
		Tolerance:     1e-7,
		MaxIterations: maxIterationsDefault,
		Clock:         defaultClock{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

const maxIterationsDefault = 10000
