package config

import (
	"fmt"
	"math"

	"github.com/iwvelando/valuation-kernel/pkg/constants"
	"github.com/iwvelando/valuation-kernel/pkg/mathutil"
)

// Validator inspects a loaded configuration for economic smells before the
// engine runs. It produces human-readable warnings, not errors: the kernel's
// own guards reject anything truly invalid, while these catch the mistakes
// that produce a valid but misleading valuation (rates entered as percents,
// stray probability mass, horizons too short for an IRR).
type Validator struct {
	Conf *Configuration
}

// ValidateAll validates the entire configuration and returns warnings
func (v *Validator) ValidateAll() []string {
	var warnings []string

	if v.Conf == nil {
		return []string{"no configuration loaded"}
	}

	if len(v.Conf.Scenarios) == 0 && len(v.Conf.Bonds) == 0 {
		warnings = append(warnings, "configuration contains no scenarios and no bonds; nothing to value")
	}

	mass := 0.0
	for _, scenario := range v.Conf.Scenarios {
		warnings = append(warnings, validateScenario(scenario)...)
		mass += scenario.Probability
	}
	if len(v.Conf.Scenarios) > 0 && !mathutil.WithinTolerance(mass, 1.0, constants.ProbabilityTolerance) {
		warnings = append(warnings, fmt.Sprintf("scenario probabilities sum to %.6f, not 1; aggregation will fail", mass))
	}

	for _, b := range v.Conf.Bonds {
		warnings = append(warnings, validateBond(b)...)
	}

	return warnings
}

func validateScenario(scenario Scenario) []string {
	var warnings []string

	if len(scenario.CashFlows) < 2 {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' has fewer than 2 cash flows; no IRR will be computed", scenario.Name))
	}

	if scenario.DiscountRate > 1.0 {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' discount rate %.2f exceeds 100%%; was a percentage entered instead of a decimal?", scenario.Name, scenario.DiscountRate))
	}

	if scenario.TerminalGrowth != nil && scenario.DiscountRate <= *scenario.TerminalGrowth {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' discount rate %.4f does not exceed terminal growth %.4f; the terminal value will be rejected", scenario.Name, scenario.DiscountRate, *scenario.TerminalGrowth))
	}

	hasPositive, hasNegative := false, false
	for _, cf := range scenario.CashFlows {
		if cf > 0 {
			hasPositive = true
		}
		if cf < 0 {
			hasNegative = true
		}
		if math.IsNaN(cf) || math.IsInf(cf, 0) {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' contains a non-finite cash flow; valuation will fail", scenario.Name))
			break
		}
	}
	if len(scenario.CashFlows) >= 2 && (!hasPositive || !hasNegative) {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' cash flows never change sign; no IRR will be computed", scenario.Name))
	}

	return warnings
}

func validateBond(b Bond) []string {
	var warnings []string

	if b.CouponRate > 1.0 {
		warnings = append(warnings, fmt.Sprintf("Bond '%s' coupon rate %.2f exceeds 100%%; was a percentage entered instead of a decimal?", b.Name, b.CouponRate))
	}
	if b.Yield > 1.0 {
		warnings = append(warnings, fmt.Sprintf("Bond '%s' yield %.2f exceeds 100%%; was a percentage entered instead of a decimal?", b.Name, b.Yield))
	}

	return warnings
}
