// Package breakeven finds the sales volume at which contribution covers
// fixed cost.
package breakeven

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fincalc/num"
)

// assumedSalesMultiple scales break-even sales into the reference sales level
// used for margin of safety when none is given.
var assumedSalesMultiple = decimal.New(15, -1)

// Params are per-unit price and variable cost plus the period's fixed cost.
type Params struct {
	FixedCost    decimal.Decimal `json:"fixed_cost"`
	VariableCost decimal.Decimal `json:"variable_cost"`
	Price        decimal.Decimal `json:"price"`
	// ExpectedSales is the sales level margin of safety is measured against.
	// Zero means 1.5 × break-even sales.
	ExpectedSales decimal.Decimal `json:"expected_sales"`
}

// Result of a break-even analysis. Ratios are fractions.
type Result struct {
	Units              decimal.Decimal `json:"units"`
	Sales              decimal.Decimal `json:"sales"`
	ContributionMargin decimal.Decimal `json:"contribution_margin"`
	MarginOfSafety     decimal.Decimal `json:"margin_of_safety"`
}

// Analyze computes
//
//	units  = fixed / (price − variable)
//	sales  = units × price
//	margin = (price − variable) / price
//	safety = (expected − sales) / expected
//
// A zero contribution or zero price reports num.ErrDivisionByZero.
func Analyze(ctx num.Context, p Params) (Result, error) {
	contribution := p.Price.Sub(p.VariableCost)
	units, err := ctx.Div(p.FixedCost, contribution)
	if err != nil {
		return Result{}, fmt.Errorf("Analyze: contribution per unit is zero: %w", err)
	}
	margin, err := ctx.Div(contribution, p.Price)
	if err != nil {
		return Result{}, fmt.Errorf("Analyze: price is zero: %w", err)
	}
	sales := ctx.Mul(units, p.Price)

	expected := p.ExpectedSales
	if expected.IsZero() {
		expected = sales.Mul(assumedSalesMultiple)
	}
	safety := decimal.Zero
	if !expected.IsZero() {
		safety, err = ctx.Div(expected.Sub(sales), expected)
		if err != nil {
			return Result{}, fmt.Errorf("Analyze: %w", err)
		}
	}

	return Result{Units: units, Sales: sales, ContributionMargin: margin, MarginOfSafety: safety}, nil
}
