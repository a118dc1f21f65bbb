package eigen

import "github.com/mansfield-lab/blockpcg/clock"

// clockSource is the subset of clock.Clock the solver needs. It is
// defined locally (rather than importing clock.Clock by name into the
// public API) so that callers can pass any clock.Clock implementation
// without this package re-exporting the clock package's types.
type clockSource interface {
	Now() clock.Snapshot
}

type defaultClock struct{}

func (defaultClock) Now() clock.Snapshot { return clock.System{}.Now() }

// timer measures a single kernel call and returns its elapsed seconds.
func timer(c clockSource, op func()) float64 {
	start := c.Now()
	op()
	return start.Since().Seconds()
}
