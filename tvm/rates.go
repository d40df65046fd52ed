package tvm

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fincalc/num"
)

// NominalToEffective converts a nominal annual rate compounded
// periodsPerYear times into the effective annual rate:
//
//	EFF = (1 + NOM/P)^P − 1
//
// Both rates are fractions.
func NominalToEffective(ctx num.Context, nominal decimal.Decimal, periodsPerYear int) (decimal.Decimal, error) {
	if periodsPerYear <= 0 {
		return decimal.Zero, fmt.Errorf("NominalToEffective: periods per year %d must be positive: %w", periodsPerYear, num.ErrInvalidInput)
	}
	periodic, err := ctx.Div(nominal, num.FromInt(periodsPerYear))
	if err != nil {
		return decimal.Zero, fmt.Errorf("NominalToEffective: %w", err)
	}
	g, err := ctx.PowInt(num.One.Add(periodic), int64(periodsPerYear))
	if err != nil {
		return decimal.Zero, fmt.Errorf("NominalToEffective: %w", err)
	}
	return g.Sub(num.One), nil
}

// EffectiveToNominal is the inverse of NominalToEffective:
//
//	NOM = ((1 + EFF)^(1/P) − 1)·P
func EffectiveToNominal(ctx num.Context, effective decimal.Decimal, periodsPerYear int) (decimal.Decimal, error) {
	if periodsPerYear <= 0 {
		return decimal.Zero, fmt.Errorf("EffectiveToNominal: periods per year %d must be positive: %w", periodsPerYear, num.ErrInvalidInput)
	}
	inv, err := ctx.Div(num.One, num.FromInt(periodsPerYear))
	if err != nil {
		return decimal.Zero, fmt.Errorf("EffectiveToNominal: %w", err)
	}
	g, err := ctx.Pow(num.One.Add(effective), inv)
	if err != nil {
		return decimal.Zero, fmt.Errorf("EffectiveToNominal: %w", err)
	}
	return ctx.Mul(g.Sub(num.One), num.FromInt(periodsPerYear)), nil
}

// PeriodicRate converts an annual percentage (I/YR) into the periodic
// fraction the solver works with: I/YR / 100 / P/YR.
func PeriodicRate(ctx num.Context, annualPercent decimal.Decimal, periodsPerYear int) (decimal.Decimal, error) {
	if periodsPerYear <= 0 {
		return decimal.Zero, fmt.Errorf("PeriodicRate: periods per year %d must be positive: %w", periodsPerYear, num.ErrInvalidInput)
	}
	return ctx.Div(annualPercent, num.Hundred.Mul(num.FromInt(periodsPerYear)))
}

// AnnualPercent converts a periodic fraction back to I/YR.
func AnnualPercent(periodic decimal.Decimal, periodsPerYear int) decimal.Decimal {
	return periodic.Mul(num.FromInt(periodsPerYear)).Mul(num.Hundred)
}

// TotalPeriods returns years × P/YR (the xP/YR key).
func TotalPeriods(years decimal.Decimal, periodsPerYear int) decimal.Decimal {
	return years.Mul(num.FromInt(periodsPerYear))
}
