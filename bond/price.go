package bond

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fincalc/num"
	"github.com/meenmo/fincalc/solver"
	"github.com/meenmo/fincalc/utils"
)

// Periods returns the remaining life in coupon periods: the day-count year
// fraction from settlement to maturity times Frequency. It is usually
// fractional.
func Periods(ctx num.Context, p Params) (decimal.Decimal, error) {
	if err := p.Validate(); err != nil {
		return decimal.Zero, err
	}
	years, err := utils.YearFraction(ctx, p.Settlement, p.Maturity, p.DayCount)
	if err != nil {
		return decimal.Zero, err
	}
	return ctx.Mul(years, num.FromInt(p.Frequency)), nil
}

// Price discounts the bond at YieldRate:
//
//	price = Σ_{i=1..⌊n⌋} c/(1+y)^i + R/(1+y)^n
//
// where n = Periods, c the coupon per period, y = YieldRate/Frequency and R
// the redemption value. Coupons are counted over whole periods only, so the
// result is a price without separate accrued interest.
func Price(ctx num.Context, p Params) (decimal.Decimal, error) {
	n, err := Periods(ctx, p)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Price: %w", err)
	}
	price, err := priceAt(ctx, p, n, p.YieldRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Price: %w", err)
	}
	return price, nil
}

// Yield solves for the annual yield at which Price equals price.
// The iteration starts from the coupon rate whatever s.Guess says.
func Yield(ctx num.Context, p Params, price decimal.Decimal, s solver.Settings) (decimal.Decimal, error) {
	n, err := Periods(ctx, p)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Yield: %w", err)
	}
	residual := func(y decimal.Decimal) (decimal.Decimal, error) {
		v, err := priceAt(ctx, p, n, y)
		if err != nil {
			return decimal.Zero, err
		}
		return v.Sub(price), nil
	}

	// the periodic yield must stay above −1
	floor := num.FromInt(-p.Frequency)
	res, err := solver.Newton(ctx, residual, s.WithGuess(p.CouponRate).WithFloor(floor))
	if err != nil {
		return decimal.Zero, fmt.Errorf("Yield: %w", err)
	}
	return res.Root, nil
}

func priceAt(ctx num.Context, p Params, n, annualYield decimal.Decimal) (decimal.Decimal, error) {
	coupon, err := couponPerPeriod(ctx, p)
	if err != nil {
		return decimal.Zero, err
	}
	y, err := ctx.Div(annualYield, num.FromInt(p.Frequency))
	if err != nil {
		return decimal.Zero, err
	}
	base := num.One.Add(y)

	price := decimal.Zero
	factor := num.One
	whole := n.IntPart()
	for i := int64(1); i <= whole; i++ {
		factor = ctx.Mul(factor, base)
		pv, err := ctx.Div(coupon, factor)
		if err != nil {
			return decimal.Zero, fmt.Errorf("discount factor at period %d: %w", i, err)
		}
		price = price.Add(pv)
	}

	g, err := ctx.Pow(base, n)
	if err != nil {
		return decimal.Zero, err
	}
	redemption, err := ctx.Div(p.Redemption, g)
	if err != nil {
		return decimal.Zero, fmt.Errorf("discount factor at maturity: %w", err)
	}
	return price.Add(redemption), nil
}
