// Package logging holds the solver's package-global diagnostic mode, so
// that callers don't need to thread a verbosity flag through every
// function in the eigensolver. A call site also consults its own
// caller-supplied Verbose flag before formatting, matching the way
// shellfish's cmd package checks both logging.Mode and a mode-local
// config flag.
package logging

import (
	"fmt"
	"log"
	"runtime"
)

type Flag int

const (
	Nil Flag = iota
	Performance
	Verbose
	Debug
)

var (
	Mode Flag = Nil
)

// MemString returns a string containing various statistics on the
// current memory usage of the process.
func MemString() string {
	ms := runtime.MemStats{}
	runtime.ReadMemStats(&ms)
	return fmt.Sprintf(
		"Alloc - %d MB; Sys - %d MB Integrated - %d MB",
		ms.Alloc>>20, ms.Sys>>20, ms.TotalAlloc>>20,
	)
}

// Progressf logs a line if verbose is set or Mode is Verbose/Debug. It
// is the solver driver's per-iteration feedback hook: cheap to call
// unconditionally, since the format string is only built when
// something will actually print.
func Progressf(verbose bool, format string, args ...interface{}) {
	if verbose || Mode == Verbose || Mode == Debug {
		log.Printf(format, args...)
	}
}
