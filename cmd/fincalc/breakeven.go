package main

import (
	"github.com/spf13/cobra"

	"github.com/meenmo/fincalc/breakeven"
	"github.com/meenmo/fincalc/num"
)

type breakevenInput struct {
	taskID
	breakeven.Params
}

type breakevenOutput struct {
	Units string `json:"units"`
	Sales string `json:"sales"`
	// Ratios in percent.
	ContributionMargin string `json:"contribution_margin"`
	MarginOfSafety     string `json:"margin_of_safety"`
}

func (a *app) breakevenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "breakeven",
		Short: "Break-even units and sales, contribution margin and margin of safety",
		Long:  `Input fields: fixed_cost, variable_cost, price and optionally expected_sales.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(a, "breakeven", func(in breakevenInput) (any, error) {
				r, err := a.engine.BreakEven(in.Params)
				if err != nil {
					return nil, err
				}
				return breakevenOutput{
					Units:              a.engine.Format(r.Units),
					Sales:              a.engine.Format(r.Sales),
					ContributionMargin: a.engine.Format(r.ContributionMargin.Mul(num.Hundred)),
					MarginOfSafety:     a.engine.Format(r.MarginOfSafety.Mul(num.Hundred)),
				}, nil
			})
		},
	}
}
