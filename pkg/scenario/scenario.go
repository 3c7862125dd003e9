// Package scenario combines independently computed valuations into a single
// probability-weighted expected value.
package scenario

import (
	"github.com/iwvelando/valuation-kernel/pkg/constants"
	"github.com/iwvelando/valuation-kernel/pkg/validate"
)

// Scenario is one discrete, mutually exclusive outcome.
type Scenario struct {
	Label       string
	Probability float64
	Value       float64
}

// Set is an ordered collection of scenarios whose probabilities must sum to 1.
type Set []Scenario

// ExpectedValue returns the probability-weighted average of the set's values
// using the default probability-mass tolerance of 1e-6.
func ExpectedValue(set Set) (float64, error) {
	return ExpectedValueWithTolerance(set, constants.ProbabilityTolerance)
}

// ExpectedValueWithTolerance validates the set and returns Σ p_i * v_i. Every
// probability must lie in [0,1], every value must be finite, and the
// probabilities must sum to 1 within the given tolerance. The result always
// lies between the minimum and maximum scenario values.
func ExpectedValueWithTolerance(set Set, tolerance float64) (float64, error) {
	if err := validate.NonEmpty("scenario set", len(set)); err != nil {
		return 0, err
	}
	if err := validate.Positive("probability tolerance", tolerance); err != nil {
		return 0, err
	}

	mass := 0.0
	for _, s := range set {
		name := s.Label
		if name == "" {
			name = "scenario"
		}
		if err := validate.Probability(name+" probability", s.Probability); err != nil {
			return 0, err
		}
		if err := validate.Finite(name+" value", s.Value); err != nil {
			return 0, err
		}
		mass += s.Probability
	}
	if err := validate.ProbabilityMass(mass, tolerance); err != nil {
		return 0, err
	}

	expected := 0.0
	for _, s := range set {
		expected += s.Probability * s.Value
	}
	return expected, nil
}
