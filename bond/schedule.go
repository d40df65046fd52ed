package bond

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fincalc/num"
	"github.com/meenmo/fincalc/utils"
)

// couponDates returns the last coupon date on or before settlement and every
// coupon date after it, ascending. Dates step back from maturity by
// 12/Frequency months with EDATE clamping, each offset taken from maturity
// itself so that month-end clamping does not drift.
func couponDates(p Params) (prev time.Time, upcoming []time.Time, err error) {
	if err := p.Validate(); err != nil {
		return time.Time{}, nil, err
	}
	if !p.MonthlyCoupons() {
		return time.Time{}, nil, fmt.Errorf("bond: frequency %d does not divide 12 months: %w", p.Frequency, num.ErrInvalidInput)
	}
	step := 12 / p.Frequency
	settle := utils.CivilDate(p.Settlement)
	maturity := utils.CivilDate(p.Maturity)

	for k := 0; ; k++ {
		d := utils.AddMonth(maturity, -k*step)
		if !d.After(settle) {
			prev = d
			break
		}
		upcoming = append(upcoming, d)
	}
	for i, j := 0, len(upcoming)-1; i < j; i, j = i+1, j-1 {
		upcoming[i], upcoming[j] = upcoming[j], upcoming[i]
	}
	return prev, upcoming, nil
}

// Schedule lists the payments after settlement, the last one carrying the
// redemption value.
func Schedule(ctx num.Context, p Params) ([]Cashflow, error) {
	_, dates, err := couponDates(p)
	if err != nil {
		return nil, fmt.Errorf("Schedule: %w", err)
	}
	coupon, err := couponPerPeriod(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("Schedule: %w", err)
	}

	cfs := make([]Cashflow, len(dates))
	for i, d := range dates {
		cfs[i] = Cashflow{Date: d, Coupon: coupon, Principal: decimal.Zero}
	}
	cfs[len(cfs)-1].Principal = p.Redemption
	return cfs, nil
}

// Accrued returns the coupon earned since the last coupon date:
//
//	coupon × days(prev, settlement) / days(prev, next)
//
// counted in actual days.
func Accrued(ctx num.Context, p Params) (decimal.Decimal, error) {
	prev, dates, err := couponDates(p)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Accrued: %w", err)
	}
	coupon, err := couponPerPeriod(ctx, p)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Accrued: %w", err)
	}
	next := dates[0]
	elapsed := num.FromInt(utils.Days(prev, p.Settlement))
	v, err := ctx.Div(ctx.Mul(coupon, elapsed), num.FromInt(utils.Days(prev, next)))
	if err != nil {
		return decimal.Zero, fmt.Errorf("Accrued: %w", err)
	}
	return v, nil
}
