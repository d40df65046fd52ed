package main

import (
	"github.com/spf13/cobra"

	"github.com/meenmo/fincalc/capital"
)

type capitalInput struct {
	taskID
	capital.Params
}

type capitalYear struct {
	Year         int    `json:"year"`
	Reinvestment string `json:"reinvestment"`
	Safety       string `json:"safety"`
	Accumulated  string `json:"accumulated"`
	Total        string `json:"total"`
}

type capitalOutput struct {
	Years         []capitalYear `json:"years"`
	IRR           string        `json:"irr"`
	Payback       string        `json:"payback,omitempty"`
	ROI           string        `json:"roi"`
	AnnualizedROI string        `json:"annualized_roi"`
}

func (a *app) capitalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capital",
		Short: "Project a capital accumulation plan and its IRR, payback and ROI",
		Long:  `Input fields: investment, reinvest_percent, safety_percent and years (default 10).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(a, "capital", func(in capitalInput) (any, error) {
				an, err := a.engine.CapitalAccumulation(in.Params)
				if err != nil {
					return nil, err
				}
				out := capitalOutput{
					Years:         make([]capitalYear, 0, len(an.Years)),
					IRR:           a.engine.Format(an.IRR),
					ROI:           a.engine.Format(an.ROI),
					AnnualizedROI: a.engine.Format(an.AnnualizedROI),
				}
				if an.Payback != nil {
					out.Payback = a.engine.Format(*an.Payback)
				}
				for _, y := range an.Years {
					out.Years = append(out.Years, capitalYear{
						Year:         y.Year,
						Reinvestment: a.engine.Format(y.Reinvestment),
						Safety:       a.engine.Format(y.Safety),
						Accumulated:  a.engine.Format(y.Accumulated),
						Total:        a.engine.Format(y.Total),
					})
				}
				return out, nil
			})
		},
	}
}
