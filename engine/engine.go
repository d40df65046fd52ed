// Package engine bundles the calculator's computations behind one value
// that carries the configured precision, solver settings and display
// rounding. An Engine is immutable and safe for concurrent use.
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fincalc/amort"
	"github.com/meenmo/fincalc/bond"
	"github.com/meenmo/fincalc/breakeven"
	"github.com/meenmo/fincalc/capital"
	"github.com/meenmo/fincalc/cashflow"
	"github.com/meenmo/fincalc/config"
	"github.com/meenmo/fincalc/depreciation"
	"github.com/meenmo/fincalc/num"
	"github.com/meenmo/fincalc/solver"
	"github.com/meenmo/fincalc/tvm"
)

// Engine evaluates calculator functions under a fixed configuration.
type Engine struct {
	ctx      num.Context
	settings solver.Settings
	display  int32
}

// New validates cfg and builds an Engine from it.
func New(cfg config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctx, err := cfg.Context()
	if err != nil {
		return nil, err
	}
	return &Engine{ctx: ctx, settings: cfg.SolverSettings(), display: cfg.DisplayPlaces}, nil
}

// Default returns an Engine with config.Default.
func Default() *Engine {
	e, err := New(config.Default())
	if err != nil {
		panic(fmt.Sprintf("engine: default configuration is invalid: %v", err))
	}
	return e
}

// Context returns the arithmetic context.
func (e *Engine) Context() num.Context { return e.ctx }

// Settings returns the solver settings.
func (e *Engine) Settings() solver.Settings { return e.settings }

// Format rounds v half away from zero to the display places.
func (e *Engine) Format(v decimal.Decimal) string {
	return e.ctx.Format(v, e.display)
}

// SolveTVM solves the TVM equation for target.
func (e *Engine) SolveTVM(p tvm.Params, target tvm.Target) (decimal.Decimal, error) {
	return tvm.Solve(e.ctx, p, target, e.settings)
}

// EffectiveRate converts a nominal annual percentage to the effective one.
func (e *Engine) EffectiveRate(nominalPercent decimal.Decimal, periodsPerYear int) (decimal.Decimal, error) {
	nominal, err := e.ctx.Div(nominalPercent, num.Hundred)
	if err != nil {
		return decimal.Zero, err
	}
	eff, err := tvm.NominalToEffective(e.ctx, nominal, periodsPerYear)
	if err != nil {
		return decimal.Zero, err
	}
	return eff.Mul(num.Hundred), nil
}

// NominalRate converts an effective annual percentage to the nominal one.
func (e *Engine) NominalRate(effectivePercent decimal.Decimal, periodsPerYear int) (decimal.Decimal, error) {
	effective, err := e.ctx.Div(effectivePercent, num.Hundred)
	if err != nil {
		return decimal.Zero, err
	}
	nom, err := tvm.EffectiveToNominal(e.ctx, effective, periodsPerYear)
	if err != nil {
		return decimal.Zero, err
	}
	return nom.Mul(num.Hundred), nil
}

// ComputeNPV discounts entries at the periodic rate (a fraction).
func (e *Engine) ComputeNPV(entries []cashflow.Entry, rate decimal.Decimal) (decimal.Decimal, error) {
	return cashflow.NPV(e.ctx, entries, rate)
}

// ComputeNFV compounds NPV to the last period.
func (e *Engine) ComputeNFV(entries []cashflow.Entry, rate decimal.Decimal) (decimal.Decimal, error) {
	return cashflow.NFV(e.ctx, entries, rate)
}

// ComputeIRR returns the periodic internal rate of return as a percentage.
func (e *Engine) ComputeIRR(entries []cashflow.Entry) (decimal.Decimal, error) {
	irr, err := cashflow.IRR(e.ctx, entries, e.settings)
	if err != nil {
		return decimal.Zero, err
	}
	return irr.Mul(num.Hundred), nil
}

// AmortizationSchedule returns rows start through end of an n-period loan.
func (e *Engine) AmortizationSchedule(n int, rate, principal, payment decimal.Decimal, start, end int) ([]amort.Row, error) {
	return amort.Schedule(e.ctx, n, rate, principal, payment, start, end)
}

// BondPrice prices p at p.YieldRate.
func (e *Engine) BondPrice(p bond.Params) (decimal.Decimal, error) {
	return bond.Price(e.ctx, p)
}

// BondYield returns the annual yield at which p prices to price.
func (e *Engine) BondYield(p bond.Params, price decimal.Decimal) (decimal.Decimal, error) {
	return bond.Yield(e.ctx, p, price, e.settings)
}

// BondAccrued returns the interest accrued since the last coupon date.
func (e *Engine) BondAccrued(p bond.Params) (decimal.Decimal, error) {
	return bond.Accrued(e.ctx, p)
}

// BondSchedule lists the payments after settlement.
func (e *Engine) BondSchedule(p bond.Params) ([]bond.Cashflow, error) {
	return bond.Schedule(e.ctx, p)
}

// Depreciation computes one period of method.
func (e *Engine) Depreciation(method depreciation.Method, p depreciation.Params) (depreciation.Result, error) {
	return depreciation.Compute(e.ctx, method, p)
}

// BreakEven runs a break-even analysis.
func (e *Engine) BreakEven(p breakeven.Params) (breakeven.Result, error) {
	return breakeven.Analyze(e.ctx, p)
}

// CapitalAccumulation projects and evaluates a capital accumulation plan.
func (e *Engine) CapitalAccumulation(p capital.Params) (capital.Analysis, error) {
	return capital.Analyze(e.ctx, p, e.settings)
}
