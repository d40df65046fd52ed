// Package cashflow evaluates an uneven series of periodic cash flows: net
// present value, net future value and internal rate of return.
//
// Flows are given as grouped entries (an amount repeated Count times) and
// expanded into one amount per period. Index 0 is the initial flow at time
// zero and is never discounted.
package cashflow

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fincalc/num"
	"github.com/meenmo/fincalc/solver"
)

// MaxPeriods bounds the expanded length of a cash-flow series.
const MaxPeriods = 1_000_000

// Entry is an amount that repeats for Count consecutive periods.
// A zero Count is read as 1 so that JSON input may omit it.
type Entry struct {
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count,omitempty"`
}

// Expand flattens entries into one amount per period.
func Expand(entries []Entry) ([]decimal.Decimal, error) {
	total := 0
	for i, e := range entries {
		if e.Count < 0 {
			return nil, fmt.Errorf("Expand: entry %d has negative count %d: %w", i, e.Count, num.ErrInvalidInput)
		}
		total += max(e.Count, 1)
		if total > MaxPeriods {
			return nil, fmt.Errorf("Expand: more than %d periods: %w", MaxPeriods, num.ErrInvalidInput)
		}
	}

	flows := make([]decimal.Decimal, 0, total)
	for _, e := range entries {
		for range max(e.Count, 1) {
			flows = append(flows, e.Amount)
		}
	}
	return flows, nil
}

// NPV returns Σ cf[i] / (1+rate)^i over the expanded entries.
//
// Rates at or below −1 have no financial meaning; the sum is still
// evaluated where the discount base is non-zero.
func NPV(ctx num.Context, entries []Entry, rate decimal.Decimal) (decimal.Decimal, error) {
	flows, err := Expand(entries)
	if err != nil {
		return decimal.Zero, err
	}
	v, err := presentValue(ctx, flows, rate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("NPV: %w", err)
	}
	return v, nil
}

// NFV returns NPV compounded to the last period: NPV·(1+rate)^(n−1).
func NFV(ctx num.Context, entries []Entry, rate decimal.Decimal) (decimal.Decimal, error) {
	flows, err := Expand(entries)
	if err != nil {
		return decimal.Zero, err
	}
	if len(flows) == 0 {
		return decimal.Zero, nil
	}
	v, err := presentValue(ctx, flows, rate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("NFV: %w", err)
	}
	g, err := ctx.PowInt(num.One.Add(rate), int64(len(flows)-1))
	if err != nil {
		return decimal.Zero, fmt.Errorf("NFV: %w", err)
	}
	return ctx.Mul(v, g), nil
}

// IRR returns the periodic rate at which NPV is zero, as a fraction.
//
// The root is found with solver.Newton from s.Guess. A series whose flows
// change sign more than once may have several roots; the one reached from
// the guess is returned.
func IRR(ctx num.Context, entries []Entry, s solver.Settings) (decimal.Decimal, error) {
	flows, err := Expand(entries)
	if err != nil {
		return decimal.Zero, err
	}
	if len(flows) < 2 {
		return decimal.Zero, fmt.Errorf("IRR: need at least 2 periods, got %d: %w", len(flows), num.ErrInvalidInput)
	}

	npv := func(r decimal.Decimal) (decimal.Decimal, error) {
		return presentValue(ctx, flows, r)
	}
	res, err := solver.Newton(ctx, npv, s.WithFloor(num.One.Neg()))
	if err != nil {
		return decimal.Zero, fmt.Errorf("IRR: %w", err)
	}
	return res.Root, nil
}

// presentValue discounts flows with a running factor (1+rate)^i.
func presentValue(ctx num.Context, flows []decimal.Decimal, rate decimal.Decimal) (decimal.Decimal, error) {
	base := num.One.Add(rate)
	factor := num.One
	total := decimal.Zero
	for i, cf := range flows {
		if i > 0 {
			factor = ctx.Mul(factor, base)
		}
		if cf.IsZero() {
			continue
		}
		pv, err := ctx.Div(cf, factor)
		if err != nil {
			return decimal.Zero, fmt.Errorf("discount factor at period %d: %w", i, err)
		}
		total = total.Add(pv)
	}
	return total, nil
}
