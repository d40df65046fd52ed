package main

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/meenmo/fincalc/tvm"
)

type tvmInput struct {
	taskID
	SolveFor string          `json:"solve_for"`
	N        decimal.Decimal `json:"n"`
	IYR      decimal.Decimal `json:"i_yr"`
	PYR      int             `json:"p_yr"`
	PV       decimal.Decimal `json:"pv"`
	PMT      decimal.Decimal `json:"pmt"`
	FV       decimal.Decimal `json:"fv"`
	Begin    bool            `json:"begin"`
}

type tvmOutput struct {
	SolveFor string `json:"solve_for"`
	N        string `json:"n"`
	IYR      string `json:"i_yr"`
	PV       string `json:"pv"`
	PMT      string `json:"pmt"`
	FV       string `json:"fv"`
}

const defaultPeriodsPerYear = 12

func (a *app) tvmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tvm",
		Short: "Solve the time-value-of-money equation for N, I/YR, PV, PMT or FV",
		Long: `Input fields: solve_for (N, I/YR, PV, PMT or FV), n, i_yr (annual percent),
p_yr (payments per year, default 12), pv, pmt, fv, begin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(a, "tvm", a.solveTVM)
		},
	}
}

func (a *app) solveTVM(in tvmInput) (any, error) {
	target, err := tvm.ParseTarget(in.SolveFor)
	if err != nil {
		return nil, err
	}
	pyr := in.PYR
	if pyr == 0 {
		pyr = defaultPeriodsPerYear
	}
	ctx := a.engine.Context()

	p := tvm.Params{N: in.N, PV: in.PV, PMT: in.PMT, FV: in.FV, Begin: in.Begin}
	if target != tvm.TargetRate {
		if p.Rate, err = tvm.PeriodicRate(ctx, in.IYR, pyr); err != nil {
			return nil, err
		}
	}

	v, err := a.engine.SolveTVM(p, target)
	if err != nil {
		return nil, err
	}
	iyr := in.IYR
	switch target {
	case tvm.TargetN:
		p.N = v
	case tvm.TargetRate:
		iyr = tvm.AnnualPercent(v, pyr)
	case tvm.TargetPV:
		p.PV = v
	case tvm.TargetPMT:
		p.PMT = v
	case tvm.TargetFV:
		p.FV = v
	}

	return tvmOutput{
		SolveFor: target.String(),
		N:        a.engine.Format(p.N),
		IYR:      a.engine.Format(iyr),
		PV:       a.engine.Format(p.PV),
		PMT:      a.engine.Format(p.PMT),
		FV:       a.engine.Format(p.FV),
	}, nil
}
