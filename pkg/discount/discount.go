// Package discount provides the compounding and present-value primitives the
// rest of the valuation kernel is built on.
//
// All functions are pure; cash-flow slices are discounted exactly at the
// positions given, so a caller including an initial outlay at position 0
// leaves it undiscounted and a caller starting at position 1 does not.
package discount

import (
	"math"

	"github.com/iwvelando/valuation-kernel/pkg/validate"
)

// Factor returns the discount factor 1/(1+rate)^periods.
func Factor(rate, periods float64) (float64, error) {
	if err := validate.RateFloor("rate", rate); err != nil {
		return 0, err
	}
	if err := validate.NonNegative("periods", periods); err != nil {
		return 0, err
	}
	return 1.0 / math.Pow(1.0+rate, periods), nil
}

// PresentValue discounts a single future amount back over the given number
// of periods at a constant per-period rate.
func PresentValue(futureAmount, rate, periods float64) (float64, error) {
	if err := validate.Finite("amount", futureAmount); err != nil {
		return 0, err
	}
	factor, err := Factor(rate, periods)
	if err != nil {
		return 0, err
	}
	return futureAmount * factor, nil
}

// Compound grows a single present amount forward over the given number of
// periods at a constant per-period rate. It is the inverse of PresentValue.
func Compound(presentAmount, rate, periods float64) (float64, error) {
	if err := validate.Finite("amount", presentAmount); err != nil {
		return 0, err
	}
	if err := validate.RateFloor("rate", rate); err != nil {
		return 0, err
	}
	if err := validate.NonNegative("periods", periods); err != nil {
		return 0, err
	}
	return presentAmount * math.Pow(1.0+rate, periods), nil
}

// NetPresentValue sums the cash flows discounted at their slice positions:
//
//	NPV = Σ cashFlows[t] / (1+rate)^t
//
// Position 0 is an undiscounted initial outlay when the caller includes one.
func NetPresentValue(rate float64, cashFlows []float64) (float64, error) {
	if err := validate.RateFloor("rate", rate); err != nil {
		return 0, err
	}
	if err := validate.NonEmpty("cash flows", len(cashFlows)); err != nil {
		return 0, err
	}
	if err := validate.FiniteSeries("cash flows", cashFlows); err != nil {
		return 0, err
	}

	npv := 0.0
	for t, cf := range cashFlows {
		npv += cf / math.Pow(1.0+rate, float64(t))
	}
	return npv, nil
}

// NetPresentValueDerivative returns dNPV/drate in closed form:
//
//	dNPV/dr = Σ -t * cashFlows[t] / (1+rate)^(t+1)
//
// The t=0 term is constant in rate and contributes nothing.
func NetPresentValueDerivative(rate float64, cashFlows []float64) (float64, error) {
	if err := validate.RateFloor("rate", rate); err != nil {
		return 0, err
	}
	if err := validate.NonEmpty("cash flows", len(cashFlows)); err != nil {
		return 0, err
	}
	if err := validate.FiniteSeries("cash flows", cashFlows); err != nil {
		return 0, err
	}

	deriv := 0.0
	for t, cf := range cashFlows {
		if t == 0 {
			continue
		}
		deriv += -float64(t) * cf / math.Pow(1.0+rate, float64(t)+1.0)
	}
	return deriv, nil
}
