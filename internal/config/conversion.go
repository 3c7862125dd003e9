package config

import (
	"github.com/iwvelando/valuation-kernel/pkg/bond"
	"github.com/iwvelando/valuation-kernel/pkg/irr"
)

// SolverConfig converts the book-level root-finder knobs into the kernel's
// per-call config. Zero-valued knobs stay zero here; the solver fills them
// from its defaults.
func (r RootFinder) SolverConfig() irr.Config {
	return irr.Config{
		InitialGuess:  r.InitialGuess,
		MaxIterations: r.MaxIterations,
		Tolerance:     r.Tolerance,
		GridMin:       r.GridMin,
		GridMax:       r.GridMax,
		GridPoints:    r.GridPoints,
	}
}

// Spec converts a configured bond into the kernel's pricing spec.
func (b Bond) Spec() bond.Spec {
	return bond.Spec{
		Face:       b.Face,
		CouponRate: b.CouponRate,
		Yield:      b.Yield,
		Years:      b.Years,
		Frequency:  b.Frequency,
	}
}
