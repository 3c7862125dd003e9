// Package dcf assembles explicit-period present value and a discounted
// terminal value into a single discounted-cash-flow valuation.
package dcf

import (
	"github.com/iwvelando/valuation-kernel/pkg/discount"
	"github.com/iwvelando/valuation-kernel/pkg/validate"
)

// Input encapsulates the inputs for a discounted-cash-flow valuation.
type Input struct {
	// CashFlows are the explicit-period projections, discounted at their
	// slice positions (position 0 is an undiscounted initial outlay).
	CashFlows []float64

	// Rate is the per-period discount rate in decimal form.
	Rate float64

	// TerminalValue, when non-nil, is a lump sum occurring at the end of
	// the explicit horizon. It is discounted over len(CashFlows) periods;
	// the horizon is taken from the series itself, never from the caller,
	// so the terminal value cannot be discounted over a mismatched span.
	TerminalValue *float64
}

// Result holds the valuation outputs.
type Result struct {
	// PVExplicit is the present value of the explicit-period cash flows.
	PVExplicit float64

	// PVTerminal is the discounted terminal value, zero when none was given.
	PVTerminal float64

	// Value is PVExplicit + PVTerminal.
	Value float64
}

// Value computes the discounted-cash-flow valuation for the given input.
func Value(in Input) (Result, error) {
	pvExplicit, err := discount.NetPresentValue(in.Rate, in.CashFlows)
	if err != nil {
		return Result{}, err
	}

	pvTerminal := 0.0
	if in.TerminalValue != nil {
		horizon := float64(len(in.CashFlows))
		pvTerminal, err = discount.PresentValue(*in.TerminalValue, in.Rate, horizon)
		if err != nil {
			return Result{}, err
		}
	}

	return Result{
		PVExplicit: pvExplicit,
		PVTerminal: pvTerminal,
		Value:      pvExplicit + pvTerminal,
	}, nil
}

// GordonTerminalValue capitalizes the final explicit-period cash flow into a
// perpetuity growing at the given rate:
//
//	TV = finalCashFlow * (1 + growth) / (rate - growth)
//
// The result occurs at the end of the explicit horizon and is NOT discounted
// here; pass it to Value as Input.TerminalValue to discount it consistently.
// Fails when rate does not strictly exceed growth, since the perpetuity
// diverges at or below that boundary.
func GordonTerminalValue(finalCashFlow, rate, growth float64) (float64, error) {
	if err := validate.Finite("final cash flow", finalCashFlow); err != nil {
		return 0, err
	}
	if err := validate.RateFloor("rate", rate); err != nil {
		return 0, err
	}
	if err := validate.Finite("growth", growth); err != nil {
		return 0, err
	}
	if err := validate.RateAboveGrowth(rate, growth); err != nil {
		return 0, err
	}
	return finalCashFlow * (1.0 + growth) / (rate - growth), nil
}
