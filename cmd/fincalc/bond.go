package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/meenmo/fincalc/bond"
	"github.com/meenmo/fincalc/num"
	"github.com/meenmo/fincalc/utils"
)

type bondInput struct {
	taskID
	Settlement string `json:"settlement"`
	Maturity   string `json:"maturity"`
	// Coupon and Yield are annual percentages.
	Coupon     decimal.Decimal  `json:"coupon"`
	Yield      decimal.Decimal  `json:"yield"`
	Price      decimal.Decimal  `json:"price"`
	Redemption *decimal.Decimal `json:"redemption"`
	Frequency  int              `json:"frequency"`
	DayCount   string           `json:"day_count"`
}

var defaultRedemption = decimal.NewFromInt(100)

const defaultFrequency = 2

func (in bondInput) params(ctx num.Context) (bond.Params, error) {
	settlement, err := utils.ParseDate(in.Settlement)
	if err != nil {
		return bond.Params{}, fmt.Errorf("settlement: %w", err)
	}
	maturity, err := utils.ParseDate(in.Maturity)
	if err != nil {
		return bond.Params{}, fmt.Errorf("maturity: %w", err)
	}
	coupon, err := ctx.Div(in.Coupon, num.Hundred)
	if err != nil {
		return bond.Params{}, err
	}
	yield, err := ctx.Div(in.Yield, num.Hundred)
	if err != nil {
		return bond.Params{}, err
	}
	p := bond.Params{
		Settlement: settlement,
		Maturity:   maturity,
		CouponRate: coupon,
		YieldRate:  yield,
		Redemption: defaultRedemption,
		Frequency:  in.Frequency,
		DayCount:   in.DayCount,
	}
	if in.Redemption != nil {
		p.Redemption = *in.Redemption
	}
	if p.Frequency == 0 {
		p.Frequency = defaultFrequency
	}
	return p, p.Validate()
}

type bondPriceOutput struct {
	Price   string `json:"price"`
	// Accrued is omitted when coupons are not a whole number of months apart.
	Accrued *string `json:"accrued,omitempty"`
}

func (a *app) bondPriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bond-price",
		Short: "Price a bond from its yield",
		Long: `Input fields: settlement and maturity (YYYY-MM-DD), coupon and yield (annual
percent), redemption (default 100), frequency (coupons per year, default 2)
and day_count (ACT/360, ACT/365F, 30/360 or 30E/360).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(a, "bond-price", a.priceBond)
		},
	}
}

func (a *app) priceBond(in bondInput) (any, error) {
	p, err := in.params(a.engine.Context())
	if err != nil {
		return nil, err
	}
	price, err := a.engine.BondPrice(p)
	if err != nil {
		return nil, err
	}
	out := bondPriceOutput{Price: a.engine.Format(price)}
	if p.MonthlyCoupons() {
		accrued, err := a.engine.BondAccrued(p)
		if err != nil {
			return nil, err
		}
		s := a.engine.Format(accrued)
		out.Accrued = &s
	}
	return out, nil
}

type bondYieldOutput struct {
	Yield string `json:"yield"`
}

func (a *app) bondYieldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bond-yield",
		Short: "Yield to maturity of a bond from its price",
		Long: `Input fields: settlement and maturity (YYYY-MM-DD), coupon (annual percent),
price, redemption (default 100), frequency (default 2) and day_count.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(a, "bond-yield", a.yieldBond)
		},
	}
}

func (a *app) yieldBond(in bondInput) (any, error) {
	p, err := in.params(a.engine.Context())
	if err != nil {
		return nil, err
	}
	y, err := a.engine.BondYield(p, in.Price)
	if err != nil {
		return nil, err
	}
	return bondYieldOutput{Yield: a.engine.Format(y.Mul(num.Hundred))}, nil
}
