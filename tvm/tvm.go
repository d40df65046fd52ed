// Package tvm solves the time-value-of-money equation
//
//	PV·(1+r)^N + PMT·b·((1+r)^N − 1)/r + FV = 0
//
// for any one of N, r, PV, PMT, FV, where b = 1+r when payments fall at the
// start of each period and 1 otherwise. With r = 0 the equation degrades to
// PV + PMT·N + FV = 0.
//
// Cash paid out is negative and cash received is positive. The solver does
// not infer direction; inconsistent signs surface as num.ErrDomain (N) or
// num.ErrConvergence (rate).
package tvm

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fincalc/num"
	"github.com/meenmo/fincalc/solver"
)

// Target selects the unknown of a solve.
type Target int

const (
	TargetN Target = iota
	TargetRate
	TargetPV
	TargetPMT
	TargetFV
)

func (t Target) String() string {
	switch t {
	case TargetN:
		return "N"
	case TargetRate:
		return "RATE"
	case TargetPV:
		return "PV"
	case TargetPMT:
		return "PMT"
	case TargetFV:
		return "FV"
	default:
		return fmt.Sprintf("Target(%d)", int(t))
	}
}

// ParseTarget accepts N, RATE (also I, I/YR), PV, PMT and FV, case-insensitively.
func ParseTarget(s string) (Target, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "N":
		return TargetN, nil
	case "RATE", "I", "I/YR", "I_YR":
		return TargetRate, nil
	case "PV":
		return TargetPV, nil
	case "PMT":
		return TargetPMT, nil
	case "FV":
		return TargetFV, nil
	default:
		return 0, fmt.Errorf("ParseTarget: unknown solve-for %q: %w", s, num.ErrInvalidInput)
	}
}

// Params are the five TVM variables. The one selected by the Target is
// ignored on input.
type Params struct {
	N    decimal.Decimal
	Rate decimal.Decimal // periodic, as a fraction (0.005 = 0.5%)
	PV   decimal.Decimal
	PMT  decimal.Decimal
	FV   decimal.Decimal
	// Begin places payments at the start of each period (annuity due).
	Begin bool
}

// Solve returns the value of target that satisfies the TVM equation with the
// other four variables of p. s drives the iterative rate solve and is unused
// for the closed-form targets.
func Solve(ctx num.Context, p Params, target Target, s solver.Settings) (decimal.Decimal, error) {
	switch target {
	case TargetN:
		return Periods(ctx, p)
	case TargetRate:
		return Rate(ctx, p, s)
	case TargetPV:
		return PresentValue(ctx, p)
	case TargetPMT:
		return Payment(ctx, p)
	case TargetFV:
		return FutureValue(ctx, p)
	default:
		return decimal.Zero, fmt.Errorf("Solve: unknown target %s: %w", target, num.ErrInvalidInput)
	}
}

// beginFactor returns 1+r in begin mode, else 1.
func beginFactor(p Params) decimal.Decimal {
	if p.Begin {
		return num.One.Add(p.Rate)
	}
	return num.One
}

// growth returns (1+r)^N.
func growth(ctx num.Context, p Params) (decimal.Decimal, error) {
	g, err := ctx.Pow(num.One.Add(p.Rate), p.N)
	if err != nil {
		return decimal.Zero, err
	}
	return g, nil
}

// annuity returns PMT·b·((1+r)^N − 1)/r for r != 0.
func annuity(ctx num.Context, p Params, g decimal.Decimal) (decimal.Decimal, error) {
	scaled := ctx.Mul(ctx.Mul(p.PMT, beginFactor(p)), g.Sub(num.One))
	return ctx.Div(scaled, p.Rate)
}

// PresentValue solves for PV.
func PresentValue(ctx num.Context, p Params) (decimal.Decimal, error) {
	if p.Rate.IsZero() {
		return ctx.Mul(p.PMT, p.N).Add(p.FV).Neg(), nil
	}
	g, err := growth(ctx, p)
	if err != nil {
		return decimal.Zero, fmt.Errorf("PresentValue: %w", err)
	}
	a, err := annuity(ctx, p, g)
	if err != nil {
		return decimal.Zero, fmt.Errorf("PresentValue: %w", err)
	}
	pv, err := ctx.Div(p.FV.Add(a), g)
	if err != nil {
		return decimal.Zero, fmt.Errorf("PresentValue: (1+rate)^N is zero: %w", err)
	}
	return pv.Neg(), nil
}

// FutureValue solves for FV.
func FutureValue(ctx num.Context, p Params) (decimal.Decimal, error) {
	if p.Rate.IsZero() {
		return p.PV.Add(ctx.Mul(p.PMT, p.N)).Neg(), nil
	}
	g, err := growth(ctx, p)
	if err != nil {
		return decimal.Zero, fmt.Errorf("FutureValue: %w", err)
	}
	a, err := annuity(ctx, p, g)
	if err != nil {
		return decimal.Zero, fmt.Errorf("FutureValue: %w", err)
	}
	return ctx.Mul(p.PV, g).Add(a).Neg(), nil
}

// Payment solves for PMT.
func Payment(ctx num.Context, p Params) (decimal.Decimal, error) {
	if p.Rate.IsZero() {
		pmt, err := ctx.Div(p.PV.Add(p.FV), p.N)
		if err != nil {
			return decimal.Zero, fmt.Errorf("Payment: N is zero: %w", err)
		}
		return pmt.Neg(), nil
	}
	g, err := growth(ctx, p)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Payment: %w", err)
	}
	numerator := ctx.Mul(ctx.Mul(p.PV, g).Add(p.FV), p.Rate)
	denominator := ctx.Mul(beginFactor(p), g.Sub(num.One))
	pmt, err := ctx.Div(numerator, denominator)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Payment: annuity factor is zero: %w", err)
	}
	return pmt.Neg(), nil
}

// Periods solves for N by isolating (1+r)^N:
//
//	(1+r)^N = (PMT·b/r − FV) / (PMT·b/r + PV)
//
// and taking ln(ratio)/ln(1+r). A non-positive ratio has no real solution.
func Periods(ctx num.Context, p Params) (decimal.Decimal, error) {
	if p.Rate.IsZero() {
		n, err := ctx.Div(p.PV.Add(p.FV), p.PMT)
		if err != nil {
			return decimal.Zero, fmt.Errorf("Periods: PMT is zero at zero rate: %w", err)
		}
		return n.Neg(), nil
	}
	if p.Rate.LessThanOrEqual(num.One.Neg()) {
		return decimal.Zero, fmt.Errorf("Periods: rate %s <= -1: %w", p.Rate, num.ErrDomain)
	}

	a, err := ctx.Div(ctx.Mul(p.PMT, beginFactor(p)), p.Rate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Periods: %w", err)
	}
	ratio, err := ctx.Div(a.Sub(p.FV), a.Add(p.PV))
	if err != nil {
		return decimal.Zero, fmt.Errorf("Periods: PV offsets the payment stream: %w", err)
	}
	if ratio.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("Periods: (1+rate)^N = %s has no real solution: %w", ratio, num.ErrDomain)
	}

	lnRatio, err := ctx.Ln(ratio)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Periods: %w", err)
	}
	lnBase, err := ctx.Ln(num.One.Add(p.Rate))
	if err != nil {
		return decimal.Zero, fmt.Errorf("Periods: %w", err)
	}
	n, err := ctx.Div(lnRatio, lnBase)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Periods: %w", err)
	}
	return n, nil
}

// Rate solves for the periodic rate by Newton-Raphson on
// PV(rate) − PV, starting from s.Guess. Iterates stay above −1, where
// (1+rate)^N stops being defined for fractional N.
func Rate(ctx num.Context, p Params, s solver.Settings) (decimal.Decimal, error) {
	target := p.PV
	residual := func(r decimal.Decimal) (decimal.Decimal, error) {
		q := p
		q.Rate = r
		pv, err := PresentValue(ctx, q)
		if err != nil {
			return decimal.Zero, err
		}
		return pv.Sub(target), nil
	}

	res, err := solver.Newton(ctx, residual, s.WithFloor(num.One.Neg()))
	if err != nil {
		return decimal.Zero, fmt.Errorf("Rate: %w", err)
	}
	return res.Root, nil
}
