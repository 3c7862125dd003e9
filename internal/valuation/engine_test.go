package valuation

import (
	"math"
	"testing"

	"github.com/iwvelando/valuation-kernel/internal/config"
	"go.uber.org/zap"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestRunScenariosAndAggregation(t *testing.T) {
	conf := config.Configuration{
		Scenarios: []config.Scenario{
			{
				Name:         "Bull",
				Probability:  0.3,
				DiscountRate: 0.10,
				CashFlows:    []float64{-500, 200, 220, 240},
			},
			{
				Name:         "Base",
				Probability:  0.5,
				DiscountRate: 0.10,
				CashFlows:    []float64{-500, 150, 160, 170},
			},
			{
				Name:         "Bear",
				Probability:  0.2,
				DiscountRate: 0.10,
				CashFlows:    []float64{-500, 100, 100, 100},
			},
		},
	}

	engine := NewEngine(zap.NewNop())
	report, err := engine.Run(conf)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(report.Scenarios) != 3 {
		t.Fatalf("Run() produced %d scenario reports, want 3", len(report.Scenarios))
	}

	// Expected value must equal the hand-computed probability weighting.
	want := 0.0
	for _, sc := range report.Scenarios {
		want += sc.Probability * sc.Value
	}
	if math.Abs(report.ExpectedValue-want) > 1e-9 {
		t.Errorf("Run() expected value = %v, want %v", report.ExpectedValue, want)
	}

	// Every scenario here has a sign change, so every report carries an IRR.
	for _, sc := range report.Scenarios {
		if sc.IRR == nil {
			t.Errorf("scenario %s missing IRR: %+v", sc.Name, sc)
		}
	}
}

func TestRunTerminalValue(t *testing.T) {
	withTV := config.Configuration{
		Scenarios: []config.Scenario{
			{
				Name:           "Growing",
				Probability:    1.0,
				DiscountRate:   0.10,
				TerminalGrowth: floatPtr(0.02),
				CashFlows:      []float64{-500, 150, 160, 170},
			},
		},
	}

	engine := NewEngine(nil)
	report, err := engine.Run(withTV)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Scenarios[0].PVTerminal <= 0 {
		t.Errorf("Run() PVTerminal = %v, want > 0 with terminal growth set", report.Scenarios[0].PVTerminal)
	}
	if report.Scenarios[0].Value <= report.Scenarios[0].PVExplicit {
		t.Errorf("Run() value %v should exceed explicit PV %v when a terminal value is added",
			report.Scenarios[0].Value, report.Scenarios[0].PVExplicit)
	}
}

func TestRunTerminalGrowthAboveRateFails(t *testing.T) {
	conf := config.Configuration{
		Scenarios: []config.Scenario{
			{
				Name:           "Impossible",
				Probability:    1.0,
				DiscountRate:   0.02,
				TerminalGrowth: floatPtr(0.05),
				CashFlows:      []float64{-500, 150, 160, 170},
			},
		},
	}

	engine := NewEngine(nil)
	if _, err := engine.Run(conf); err == nil {
		t.Errorf("Run() expected economic consistency error but got none")
	}
}

func TestRunSkipsIRRWithoutSignChange(t *testing.T) {
	conf := config.Configuration{
		Scenarios: []config.Scenario{
			{
				Name:         "AllInflows",
				Probability:  1.0,
				DiscountRate: 0.08,
				CashFlows:    []float64{100, 110, 120},
			},
		},
	}

	engine := NewEngine(nil)
	report, err := engine.Run(conf)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	sc := report.Scenarios[0]
	if sc.IRR != nil {
		t.Errorf("Run() IRR = %v, want nil for sign-change-free flows", *sc.IRR)
	}
	if sc.IRRNote == "" {
		t.Errorf("Run() IRRNote empty, want an explanation for the missing IRR")
	}
	if sc.Value <= 0 {
		t.Errorf("Run() value = %v, want positive DCF value despite missing IRR", sc.Value)
	}
}

func TestRunBadProbabilityMassFails(t *testing.T) {
	conf := config.Configuration{
		Scenarios: []config.Scenario{
			{Name: "A", Probability: 0.5, DiscountRate: 0.10, CashFlows: []float64{-100, 60, 60}},
			{Name: "B", Probability: 0.4, DiscountRate: 0.10, CashFlows: []float64{-100, 60, 60}},
		},
	}

	engine := NewEngine(nil)
	if _, err := engine.Run(conf); err == nil {
		t.Errorf("Run() expected probability mass error but got none")
	}
}

func TestRunBonds(t *testing.T) {
	conf := config.Configuration{
		Bonds: []config.Bond{
			{Name: "Par", Face: 1000, CouponRate: 0.06, Yield: 0.06, Years: 5, Frequency: 2},
		},
	}

	engine := NewEngine(nil)
	report, err := engine.Run(conf)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(report.Bonds) != 1 {
		t.Fatalf("Run() produced %d bond reports, want 1", len(report.Bonds))
	}
	b := report.Bonds[0]
	if math.Abs(b.Price-1000.0) > 0.01 {
		t.Errorf("Run() bond price = %v, want 1000 +/- 0.01", b.Price)
	}
	if b.MacaulayDuration <= 0 || b.MacaulayDuration >= 5 {
		t.Errorf("Run() Macaulay duration = %v, want in (0, 5)", b.MacaulayDuration)
	}
	if b.ModifiedDuration >= b.MacaulayDuration {
		t.Errorf("Run() modified duration %v should be below Macaulay %v", b.ModifiedDuration, b.MacaulayDuration)
	}
	if report.ExpectedValue != 0 {
		t.Errorf("Run() expected value = %v, want 0 with no scenarios", report.ExpectedValue)
	}
}

func TestRunBadBondFails(t *testing.T) {
	conf := config.Configuration{
		Bonds: []config.Bond{
			{Name: "Broken", Face: -1000, CouponRate: 0.06, Yield: 0.06, Years: 5, Frequency: 2},
		},
	}

	engine := NewEngine(nil)
	if _, err := engine.Run(conf); err == nil {
		t.Errorf("Run() expected domain error but got none")
	}
}

func TestRunRootFinderConfigPassedThrough(t *testing.T) {
	conf := config.Configuration{
		RootFinder: config.RootFinder{Tolerance: 1e-10},
		Scenarios: []config.Scenario{
			{Name: "Only", Probability: 1.0, DiscountRate: 0.10, CashFlows: []float64{-500, 120, 150, 180, 210, 240}},
		},
	}

	engine := NewEngine(nil)
	report, err := engine.Run(conf)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Scenarios[0].IRR == nil {
		t.Fatalf("Run() missing IRR")
	}
	if report.Scenarios[0].IRRPhase == "" {
		t.Errorf("Run() missing IRR phase")
	}
}
