package main

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/meenmo/fincalc/amort"
	"github.com/meenmo/fincalc/num"
)

type amortInput struct {
	taskID
	N int `json:"n"`
	// Rate is the periodic interest rate in percent.
	Rate      decimal.Decimal `json:"rate"`
	Principal decimal.Decimal `json:"principal"`
	Payment   decimal.Decimal `json:"payment"`
	// Start and End select the printed periods; zero means 1 and n.
	Start int `json:"start"`
	End   int `json:"end"`
}

type amortRow struct {
	Period              int    `json:"period"`
	Interest            string `json:"interest"`
	Principal           string `json:"principal"`
	Balance             string `json:"balance"`
	CumulativeInterest  string `json:"cumulative_interest"`
	CumulativePrincipal string `json:"cumulative_principal"`
}

type amortSummary struct {
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Interest  string `json:"interest"`
	Principal string `json:"principal"`
	Balance   string `json:"balance"`
}

type amortOutput struct {
	Rows    []amortRow   `json:"rows"`
	Summary amortSummary `json:"summary"`
}

func (a *app) amortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "amort",
		Short: "Amortization schedule of a level-payment loan",
		Long: `Input fields: n, rate (periodic percent), principal, payment and the
optional period range start..end (default 1..n). Principal and payment share
a sign.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(a, "amort", a.amortize)
		},
	}
}

func (a *app) amortize(in amortInput) (any, error) {
	start, end := in.Start, in.End
	if start == 0 {
		start = 1
	}
	if end == 0 {
		end = in.N
	}
	rate, err := a.engine.Context().Div(in.Rate, num.Hundred)
	if err != nil {
		return nil, err
	}
	rows, err := a.engine.AmortizationSchedule(in.N, rate, in.Principal, in.Payment, start, end)
	if err != nil {
		return nil, err
	}

	out := amortOutput{Rows: make([]amortRow, 0, len(rows))}
	for _, r := range rows {
		out.Rows = append(out.Rows, amortRow{
			Period:              r.Period,
			Interest:            a.engine.Format(r.Interest),
			Principal:           a.engine.Format(r.Principal),
			Balance:             a.engine.Format(r.Balance),
			CumulativeInterest:  a.engine.Format(r.CumulativeInterest),
			CumulativePrincipal: a.engine.Format(r.CumulativePrincipal),
		})
	}
	s := amort.Summarize(rows)
	out.Summary = amortSummary{
		Start:     s.Start,
		End:       s.End,
		Interest:  a.engine.Format(s.Interest),
		Principal: a.engine.Format(s.Principal),
		Balance:   a.engine.Format(s.Balance),
	}
	return out, nil
}
