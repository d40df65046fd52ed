// Package bond prices fixed-coupon bonds from a yield, solves the yield
// implied by a price, and lays out the coupon schedule.
//
// Rates are annual fractions (0.05 = 5%) compounded Frequency times a year.
// Remaining life is measured with the Params day count, ACT/365F when empty.
package bond

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fincalc/num"
	"github.com/meenmo/fincalc/utils"
)

// Params describe a bond position for pricing.
type Params struct {
	Settlement time.Time
	Maturity   time.Time
	// CouponRate is the annual coupon as a fraction of Redemption.
	CouponRate decimal.Decimal
	// YieldRate is the annual yield to maturity. Ignored by Yield.
	YieldRate  decimal.Decimal
	Redemption decimal.Decimal
	// Frequency is coupons per year (1 = annual, 2 = semi-annual).
	Frequency int
	// DayCount is a utils convention; empty means ACT/365F.
	DayCount string
}

// Validate reports parameters no bond calculation accepts.
func (p Params) Validate() error {
	if p.Settlement.IsZero() || p.Maturity.IsZero() {
		return fmt.Errorf("bond: settlement and maturity dates are required: %w", num.ErrInvalidInput)
	}
	if !utils.CivilDate(p.Settlement).Before(utils.CivilDate(p.Maturity)) {
		return fmt.Errorf("bond: settlement %s is not before maturity %s: %w",
			p.Settlement.Format(utils.DateLayout), p.Maturity.Format(utils.DateLayout), num.ErrInvalidInput)
	}
	if p.Frequency <= 0 {
		return fmt.Errorf("bond: frequency %d must be positive: %w", p.Frequency, num.ErrInvalidInput)
	}
	return nil
}

// MonthlyCoupons reports whether coupons fall a whole number of months
// apart, which Schedule and Accrued require. Price and Yield do not.
func (p Params) MonthlyCoupons() bool {
	return p.Frequency > 0 && 12%p.Frequency == 0
}

// Cashflow is a single dated bond payment.
type Cashflow struct {
	Date      time.Time
	Coupon    decimal.Decimal
	Principal decimal.Decimal
}

// Amount is coupon plus principal.
func (c Cashflow) Amount() decimal.Decimal {
	return c.Coupon.Add(c.Principal)
}

// couponPerPeriod returns CouponRate × Redemption / Frequency.
func couponPerPeriod(ctx num.Context, p Params) (decimal.Decimal, error) {
	return ctx.Div(ctx.Mul(p.CouponRate, p.Redemption), num.FromInt(p.Frequency))
}
