package main

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/meenmo/fincalc/cashflow"
	"github.com/meenmo/fincalc/num"
)

type cashflowInput struct {
	taskID
	Cashflows []cashflow.Entry `json:"cashflows"`
	// Rate is the periodic discount rate in percent (I%YR / P/YR).
	Rate decimal.Decimal `json:"rate"`
}

type valueOutput struct {
	Value string `json:"value"`
}

func (a *app) npvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "npv",
		Short: "Net present value of grouped cash flows",
		Long:  `Input fields: cashflows ([{amount, count}], CF0 first) and rate (periodic percent).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(a, "npv", func(in cashflowInput) (any, error) {
				return a.discounted(in, a.engine.ComputeNPV)
			})
		},
	}
}

func (a *app) nfvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nfv",
		Short: "Net future value of grouped cash flows",
		Long:  `Input fields: cashflows ([{amount, count}], CF0 first) and rate (periodic percent).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(a, "nfv", func(in cashflowInput) (any, error) {
				return a.discounted(in, a.engine.ComputeNFV)
			})
		},
	}
}

func (a *app) discounted(in cashflowInput, eval func([]cashflow.Entry, decimal.Decimal) (decimal.Decimal, error)) (any, error) {
	rate, err := a.engine.Context().Div(in.Rate, num.Hundred)
	if err != nil {
		return nil, err
	}
	v, err := eval(in.Cashflows, rate)
	if err != nil {
		return nil, err
	}
	return valueOutput{Value: a.engine.Format(v)}, nil
}

type irrInput struct {
	taskID
	Cashflows []cashflow.Entry `json:"cashflows"`
}

type irrOutput struct {
	IRR string `json:"irr"`
}

func (a *app) irrCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "irr",
		Short: "Periodic internal rate of return of grouped cash flows, in percent",
		Long:  `Input fields: cashflows ([{amount, count}], CF0 first).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(a, "irr", func(in irrInput) (any, error) {
				irr, err := a.engine.ComputeIRR(in.Cashflows)
				if err != nil {
					return nil, err
				}
				return irrOutput{IRR: a.engine.Format(irr)}, nil
			})
		},
	}
}
