// Package validate provides the precondition checks shared by every kernel
// operation, along with the error taxonomy those checks report against.
//
// Each kernel entry point calls the relevant guards before computing anything
// and aborts at the first violation; nothing is retried or logged internally.
// Callers classify failures with errors.Is against the sentinel values below.
package validate

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the kernel's failure taxonomy.
var (
	// ErrInvalidInput marks non-finite, wrong-length, or otherwise
	// malformed arguments.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDomain marks a value violating a mathematical precondition, such
	// as a rate at or below -100% or a non-positive face value.
	ErrDomain = errors.New("domain error")

	// ErrEconomicConsistency marks a value that is computable but
	// economically nonsensical per a modeled invariant.
	ErrEconomicConsistency = errors.New("economic consistency violation")

	// ErrNoSignChange marks a cash-flow sequence lacking the sign change a
	// real internal rate of return requires.
	ErrNoSignChange = errors.New("cash flows contain no sign change")

	// ErrNoConvergence marks a root search that exhausted every phase
	// without reaching tolerance.
	ErrNoConvergence = errors.New("root search did not converge")
)

// ErrProbabilityMass marks scenario probabilities outside [0,1] or not
// summing to one. It is a kind of economic consistency violation, so
// errors.Is(err, ErrEconomicConsistency) also holds.
var ErrProbabilityMass = fmt.Errorf("probability mass error: %w", ErrEconomicConsistency)
