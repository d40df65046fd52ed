package main

import (
	"github.com/spf13/cobra"

	"github.com/meenmo/fincalc/depreciation"
)

type depreciationInput struct {
	taskID
	Method string `json:"method"`
	depreciation.Params
}

type depreciationOutput struct {
	Method      string `json:"method"`
	Period      int    `json:"period"`
	Amount      string `json:"amount"`
	Accumulated string `json:"accumulated"`
	BookValue   string `json:"book_value"`
}

func (a *app) depreciationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "depreciation",
		Short: "Depreciation charge for one period (SL, DB or SOYD)",
		Long: `Input fields: method (SL, DB or SOYD), cost, salvage, life, period and, for
DB, factor (default 2).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(a, "depreciation", func(in depreciationInput) (any, error) {
				method, err := depreciation.ParseMethod(in.Method)
				if err != nil {
					return nil, err
				}
				r, err := a.engine.Depreciation(method, in.Params)
				if err != nil {
					return nil, err
				}
				return depreciationOutput{
					Method:      string(method),
					Period:      in.Period,
					Amount:      a.engine.Format(r.Amount),
					Accumulated: a.engine.Format(r.Accumulated),
					BookValue:   a.engine.Format(r.BookValue),
				}, nil
			})
		},
	}
}
