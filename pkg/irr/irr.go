// Package irr finds the internal rate of return of a cash-flow sequence: the
// rate at which the sequence's net present value is zero.
//
// The solver runs as an explicit phase machine. A Newton-Raphson phase using
// the closed-form NPV derivative converges quickly on well-behaved inputs; if
// it stalls (flat or non-finite derivative, iteration budget) the solver
// falls back to scanning a fixed grid of rates for a sign-change bracket and
// bisecting inside it, which guarantees termination whenever a root exists in
// the scanned range. When several roots exist the bracketing scan runs low to
// high and keeps the first bracket, so the lowest root in range wins.
package irr

import (
	"fmt"
	"math"

	"github.com/iwvelando/valuation-kernel/pkg/constants"
	"github.com/iwvelando/valuation-kernel/pkg/discount"
	"github.com/iwvelando/valuation-kernel/pkg/mathutil"
	"github.com/iwvelando/valuation-kernel/pkg/validate"
)

// Config carries every per-call knob for the solver. Zero-valued fields are
// filled from the package defaults, so Config{} behaves like DefaultConfig()
// and the effective parameters are always explicit in the call.
type Config struct {
	// InitialGuess seeds the Newton-Raphson phase.
	InitialGuess float64

	// MaxIterations bounds the Newton-Raphson phase and, separately, the
	// bisection phase.
	MaxIterations int

	// Tolerance is the convergence criterion on |NPV|.
	Tolerance float64

	// GridMin and GridMax delimit the fallback bracketing grid.
	GridMin float64
	GridMax float64

	// GridPoints is the number of rates evaluated across the grid.
	GridPoints int
}

// DefaultConfig returns the solver defaults: guess 0.10, 200 iterations per
// phase, NPV tolerance 1e-8, grid -0.9..2.0 at 300 points.
func DefaultConfig() Config {
	return Config{
		InitialGuess:  constants.DefaultIRRGuess,
		MaxIterations: constants.DefaultIRRMaxIterations,
		Tolerance:     constants.DefaultIRRTolerance,
		GridMin:       constants.DefaultGridMin,
		GridMax:       constants.DefaultGridMax,
		GridPoints:    constants.DefaultGridPoints,
	}
}

// normalized fills zero-valued knobs from the defaults.
func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.InitialGuess == 0 {
		c.InitialGuess = def.InitialGuess
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = def.MaxIterations
	}
	if c.Tolerance == 0 {
		c.Tolerance = def.Tolerance
	}
	if c.GridMin == 0 {
		c.GridMin = def.GridMin
	}
	if c.GridMax == 0 {
		c.GridMax = def.GridMax
	}
	if c.GridPoints == 0 {
		c.GridPoints = def.GridPoints
	}
	return c
}

// validate checks the normalized knobs.
func (c Config) validate() error {
	if err := validate.RateFloor("initial guess", c.InitialGuess); err != nil {
		return err
	}
	if err := validate.PositiveInt("max iterations", c.MaxIterations); err != nil {
		return err
	}
	if err := validate.Positive("tolerance", c.Tolerance); err != nil {
		return err
	}
	if err := validate.RateFloor("grid minimum", c.GridMin); err != nil {
		return err
	}
	if c.GridMax <= c.GridMin {
		return fmt.Errorf("%w: grid maximum %v must exceed grid minimum %v", validate.ErrDomain, c.GridMax, c.GridMin)
	}
	if c.GridPoints < 2 {
		return fmt.Errorf("%w: grid points must be >= 2, got %d", validate.ErrDomain, c.GridPoints)
	}
	return nil
}

// Phase identifies which stage of the solver produced a result.
type Phase int

const (
	// PhaseNewton is the Newton-Raphson stage.
	PhaseNewton Phase = iota

	// PhaseBracketing is the grid scan that locates a sign-change bracket.
	PhaseBracketing

	// PhaseBisection is the bisection stage inside a located bracket.
	PhaseBisection
)

func (p Phase) String() string {
	switch p {
	case PhaseNewton:
		return "newton"
	case PhaseBracketing:
		return "bracketing"
	case PhaseBisection:
		return "bisection"
	default:
		return "unknown"
	}
}

// Result reports the converged rate and how the solver got there.
type Result struct {
	// Rate is the internal rate of return, or the best midpoint found when
	// the solver ran out of budget (Converged false in that case).
	Rate float64

	// Iterations is the step count within the phase that produced Rate.
	Iterations int

	// Phase is the stage that produced Rate.
	Phase Phase

	// Converged reports whether |NPV(Rate)| met the configured tolerance.
	Converged bool
}

// Solve finds a rate at which the net present value of cashFlows is zero,
// within cfg.Tolerance. The sequence must have at least two elements and
// contain both a strictly positive and a strictly negative value.
func Solve(cashFlows []float64, cfg Config) (Result, error) {
	if err := validate.MinLength("cash flows", len(cashFlows), 2); err != nil {
		return Result{}, err
	}
	if err := validate.FiniteSeries("cash flows", cashFlows); err != nil {
		return Result{}, err
	}
	if err := validate.SignChange(cashFlows); err != nil {
		return Result{}, err
	}

	cfg = cfg.normalized()
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}

	if res, ok := newton(cashFlows, cfg); ok {
		return res, nil
	}
	return bracketAndBisect(cashFlows, cfg)
}

// npvAt evaluates NPV at a rate already known to be above the rate floor.
func npvAt(rate float64, cashFlows []float64) float64 {
	npv, err := discount.NetPresentValue(rate, cashFlows)
	if err != nil {
		// Unreachable after Solve's validation; surface as non-finite so
		// the caller abandons the current phase.
		return math.NaN()
	}
	return npv
}

// newton runs the Newton-Raphson phase. The second return value is false
// when the phase is abandoned: flat or non-finite derivative, a non-finite
// iterate, or the iteration budget.
func newton(cashFlows []float64, cfg Config) (Result, bool) {
	rate := cfg.InitialGuess
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		f := npvAt(rate, cashFlows)
		if !mathutil.IsFinite(f) {
			return Result{}, false
		}
		if math.Abs(f) < cfg.Tolerance {
			return Result{Rate: rate, Iterations: iter, Phase: PhaseNewton, Converged: true}, true
		}

		deriv, err := discount.NetPresentValueDerivative(rate, cashFlows)
		if err != nil || deriv == 0 || !mathutil.IsFinite(deriv) {
			return Result{}, false
		}

		next := rate - f/deriv
		if !mathutil.IsFinite(next) {
			return Result{}, false
		}
		// Never step to or past -100%: reflect toward the midpoint of the
		// current rate and the floor instead.
		if next <= constants.RateFloor {
			next = (rate + constants.RateFloor) / 2
		}
		rate = next
	}
	return Result{}, false
}

// bracketAndBisect scans the configured grid low to high for the first
// adjacent sign change, then bisects inside that bracket.
func bracketAndBisect(cashFlows []float64, cfg Config) (Result, error) {
	step := (cfg.GridMax - cfg.GridMin) / float64(cfg.GridPoints-1)

	lo, fLo := cfg.GridMin, npvAt(cfg.GridMin, cashFlows)
	if math.Abs(fLo) < cfg.Tolerance {
		return Result{Rate: lo, Phase: PhaseBracketing, Converged: true}, nil
	}

	foundBracket := false
	var hi, fHi float64
	for i := 1; i < cfg.GridPoints; i++ {
		hi = cfg.GridMin + step*float64(i)
		fHi = npvAt(hi, cashFlows)
		if math.Abs(fHi) < cfg.Tolerance {
			return Result{Rate: hi, Phase: PhaseBracketing, Converged: true}, nil
		}
		if mathutil.IsFinite(fLo) && mathutil.IsFinite(fHi) && !mathutil.SameSign(fLo, fHi) {
			foundBracket = true
			break
		}
		lo, fLo = hi, fHi
	}
	if !foundBracket {
		return Result{}, fmt.Errorf("%w: no sign change in grid [%v, %v] over %d points",
			validate.ErrNoConvergence, cfg.GridMin, cfg.GridMax, cfg.GridPoints)
	}

	best := Result{Rate: (lo + hi) / 2, Phase: PhaseBisection}
	bestAbs := math.Inf(1)
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		mid := (lo + hi) / 2
		fMid := npvAt(mid, cashFlows)

		if abs := math.Abs(fMid); abs < bestAbs {
			bestAbs = abs
			best.Rate = mid
			best.Iterations = iter + 1
		}
		if math.Abs(fMid) < cfg.Tolerance {
			return Result{Rate: mid, Iterations: iter + 1, Phase: PhaseBisection, Converged: true}, nil
		}

		if mathutil.SameSign(fMid, fLo) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}

	// Budget exhausted: report the best midpoint seen alongside the error so
	// callers can still inspect how close the search got.
	return best, fmt.Errorf("%w: |NPV| %v after %d bisection iterations (best rate %v)",
		validate.ErrNoConvergence, bestAbs, cfg.MaxIterations, best.Rate)
}
