// Package valuation orchestrates the kernel over a loaded configuration:
// each scenario is valued with the DCF valuator and the IRR solver, each
// configured bond is priced, and the scenario values are rolled up into a
// probability-weighted expected value.
package valuation

import (
	"errors"
	"fmt"

	"github.com/iwvelando/valuation-kernel/internal/config"
	"github.com/iwvelando/valuation-kernel/pkg/bond"
	"github.com/iwvelando/valuation-kernel/pkg/dcf"
	"github.com/iwvelando/valuation-kernel/pkg/irr"
	"github.com/iwvelando/valuation-kernel/pkg/scenario"
	"github.com/iwvelando/valuation-kernel/pkg/validate"
	"go.uber.org/zap"
)

// Engine runs valuations. It holds no cross-call state beyond its logger.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an engine with the given logger. If logger is nil, it
// will use a no-op logger to prevent panics.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// ScenarioReport is the valuation of a single scenario.
type ScenarioReport struct {
	Name        string
	Probability float64
	PVExplicit  float64
	PVTerminal  float64
	Value       float64

	// IRR is nil when the scenario's cash flows admit no internal rate of
	// return (no sign change or too few flows) or the solver ran out of
	// budget; see IRRNote in that case.
	IRR      *float64
	IRRPhase string
	IRRNote  string
}

// BondReport is the pricing of a single configured bond.
type BondReport struct {
	Name             string
	Price            float64
	MacaulayDuration float64
	ModifiedDuration float64
}

// Report is the full output of a run.
type Report struct {
	Scenarios []ScenarioReport
	Bonds     []BondReport

	// ExpectedValue is the probability-weighted roll-up of the scenario
	// values; zero when the book has no scenarios.
	ExpectedValue float64
}

// Run values every scenario and bond in the configuration.
func (e *Engine) Run(conf config.Configuration) (Report, error) {
	var report Report

	solverCfg := conf.RootFinder.SolverConfig()

	for _, sc := range conf.Scenarios {
		scReport, err := e.runScenario(sc, solverCfg)
		if err != nil {
			return Report{}, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		report.Scenarios = append(report.Scenarios, scReport)
	}

	for _, b := range conf.Bonds {
		bondReport, err := e.runBond(b)
		if err != nil {
			return Report{}, fmt.Errorf("bond %s: %w", b.Name, err)
		}
		report.Bonds = append(report.Bonds, bondReport)
	}

	if len(report.Scenarios) > 0 {
		set := make(scenario.Set, 0, len(report.Scenarios))
		for _, sc := range report.Scenarios {
			set = append(set, scenario.Scenario{
				Label:       sc.Name,
				Probability: sc.Probability,
				Value:       sc.Value,
			})
		}
		expected, err := scenario.ExpectedValue(set)
		if err != nil {
			return Report{}, fmt.Errorf("scenario aggregation: %w", err)
		}
		report.ExpectedValue = expected
		e.logger.Info("aggregated scenarios",
			zap.String("op", "valuation.Run"),
			zap.Int("scenarios", len(set)),
			zap.Float64("expectedValue", expected),
		)
	}

	return report, nil
}

func (e *Engine) runScenario(sc config.Scenario, solverCfg irr.Config) (ScenarioReport, error) {
	input := dcf.Input{
		CashFlows: sc.CashFlows,
		Rate:      sc.DiscountRate,
	}

	if sc.TerminalGrowth != nil {
		if len(sc.CashFlows) == 0 {
			return ScenarioReport{}, fmt.Errorf("%w: terminal growth set but no cash flows given", validate.ErrInvalidInput)
		}
		finalCF := sc.CashFlows[len(sc.CashFlows)-1]
		tv, err := dcf.GordonTerminalValue(finalCF, sc.DiscountRate, *sc.TerminalGrowth)
		if err != nil {
			return ScenarioReport{}, err
		}
		input.TerminalValue = &tv
	}

	result, err := dcf.Value(input)
	if err != nil {
		return ScenarioReport{}, err
	}

	report := ScenarioReport{
		Name:        sc.Name,
		Probability: sc.Probability,
		PVExplicit:  result.PVExplicit,
		PVTerminal:  result.PVTerminal,
		Value:       result.Value,
	}

	if len(sc.CashFlows) < 2 {
		report.IRRNote = "fewer than 2 cash flows, no IRR"
		return report, nil
	}

	solved, err := irr.Solve(sc.CashFlows, solverCfg)
	switch {
	case err == nil:
		rate := solved.Rate
		report.IRR = &rate
		report.IRRPhase = solved.Phase.String()
		e.logger.Debug("solved IRR",
			zap.String("op", "valuation.runScenario"),
			zap.String("scenario", sc.Name),
			zap.Float64("irr", rate),
			zap.String("phase", solved.Phase.String()),
			zap.Int("iterations", solved.Iterations),
		)
	case errors.Is(err, validate.ErrNoSignChange):
		// Not every projection admits an IRR; the DCF value stands alone.
		report.IRRNote = err.Error()
		e.logger.Debug("skipping IRR",
			zap.String("op", "valuation.runScenario"),
			zap.String("scenario", sc.Name),
			zap.Error(err),
		)
	case errors.Is(err, validate.ErrNoConvergence):
		report.IRRNote = err.Error()
		e.logger.Warn("IRR search did not converge",
			zap.String("op", "valuation.runScenario"),
			zap.String("scenario", sc.Name),
			zap.Error(err),
		)
	default:
		return ScenarioReport{}, err
	}

	return report, nil
}

func (e *Engine) runBond(b config.Bond) (BondReport, error) {
	spec := b.Spec()

	price, err := bond.Price(spec)
	if err != nil {
		return BondReport{}, err
	}
	mac, err := bond.MacaulayDuration(spec)
	if err != nil {
		return BondReport{}, err
	}
	mod, err := bond.ModifiedDuration(spec)
	if err != nil {
		return BondReport{}, err
	}

	e.logger.Debug("priced bond",
		zap.String("op", "valuation.runBond"),
		zap.String("bond", b.Name),
		zap.Float64("price", price),
		zap.Float64("macaulayDuration", mac),
	)

	return BondReport{
		Name:             b.Name,
		Price:            price,
		MacaulayDuration: mac,
		ModifiedDuration: mod,
	}, nil
}
