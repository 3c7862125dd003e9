package validate

import (
	"fmt"

	"github.com/iwvelando/valuation-kernel/pkg/constants"
	"github.com/iwvelando/valuation-kernel/pkg/mathutil"
)

// Finite fails with ErrInvalidInput when value is NaN or infinite.
func Finite(name string, value float64) error {
	if !mathutil.IsFinite(value) {
		return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidInput, name, value)
	}
	return nil
}

// FiniteSeries fails with ErrInvalidInput when any element is NaN or infinite.
func FiniteSeries(name string, values []float64) error {
	for i, value := range values {
		if !mathutil.IsFinite(value) {
			return fmt.Errorf("%w: %s[%d] must be finite, got %v", ErrInvalidInput, name, i, value)
		}
	}
	return nil
}

// NonEmpty fails with ErrDomain when length is zero.
func NonEmpty(name string, length int) error {
	if length == 0 {
		return fmt.Errorf("%w: %s must be non-empty", ErrDomain, name)
	}
	return nil
}

// MinLength fails with ErrDomain when length is below min.
func MinLength(name string, length, min int) error {
	if length < min {
		return fmt.Errorf("%w: %s must have at least %d elements, got %d", ErrDomain, name, min, length)
	}
	return nil
}

// RateFloor fails with ErrDomain when rate is at or below -100%, where
// compounding is undefined. NaN rates fail the comparison and are rejected
// separately as non-finite.
func RateFloor(name string, rate float64) error {
	if err := Finite(name, rate); err != nil {
		return err
	}
	if rate <= constants.RateFloor {
		return fmt.Errorf("%w: %s must be > %v, got %v", ErrDomain, name, constants.RateFloor, rate)
	}
	return nil
}

// Positive fails with ErrDomain when value is not strictly positive.
func Positive(name string, value float64) error {
	if err := Finite(name, value); err != nil {
		return err
	}
	if value <= 0 {
		return fmt.Errorf("%w: %s must be > 0, got %v", ErrDomain, name, value)
	}
	return nil
}

// PositiveInt fails with ErrDomain when value is not strictly positive.
func PositiveInt(name string, value int) error {
	if value <= 0 {
		return fmt.Errorf("%w: %s must be > 0, got %d", ErrDomain, name, value)
	}
	return nil
}

// NonNegative fails with ErrDomain when value is negative.
func NonNegative(name string, value float64) error {
	if err := Finite(name, value); err != nil {
		return err
	}
	if value < 0 {
		return fmt.Errorf("%w: %s must be >= 0, got %v", ErrDomain, name, value)
	}
	return nil
}

// Probability fails with ErrProbabilityMass when p lies outside [0,1].
func Probability(name string, p float64) error {
	if err := Finite(name, p); err != nil {
		return err
	}
	if p < 0 || p > 1 {
		return fmt.Errorf("%w: %s must be within [0,1], got %v", ErrProbabilityMass, name, p)
	}
	return nil
}

// ProbabilityMass fails with ErrProbabilityMass when sum is not 1 within
// tolerance.
func ProbabilityMass(sum, tolerance float64) error {
	if !mathutil.WithinTolerance(sum, 1.0, tolerance) {
		return fmt.Errorf("%w: probabilities must sum to 1 within %v, got %v", ErrProbabilityMass, tolerance, sum)
	}
	return nil
}

// RateAboveGrowth enforces the perpetuity invariant: the discount rate must
// strictly exceed the growth rate or the terminal value diverges.
func RateAboveGrowth(rate, growth float64) error {
	if rate <= growth {
		return fmt.Errorf("%w: discount rate %v must exceed growth rate %v", ErrEconomicConsistency, rate, growth)
	}
	return nil
}

// SignChange fails with ErrNoSignChange unless cashFlows contains at least
// one strictly positive and one strictly negative element, a necessary
// condition for an internal rate of return to exist.
func SignChange(cashFlows []float64) error {
	var hasPositive, hasNegative bool
	for _, cf := range cashFlows {
		if cf > 0 {
			hasPositive = true
		}
		if cf < 0 {
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return fmt.Errorf("%w: need at least one positive and one negative cash flow", ErrNoSignChange)
	}
	return nil
}
