package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/meenmo/fincalc/num"
)

type convertInput struct {
	taskID
	// Exactly one of Nominal and Effective is set, in annual percent.
	Nominal   *decimal.Decimal `json:"nominal"`
	Effective *decimal.Decimal `json:"effective"`
	PYR       int              `json:"p_yr"`
}

type convertOutput struct {
	Nominal   string `json:"nominal"`
	Effective string `json:"effective"`
}

func (a *app) convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert",
		Short: "Convert between nominal and effective annual rates",
		Long:  `Input fields: nominal or effective (annual percent) and p_yr (compounding periods per year, default 12).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(a, "convert", a.convertRate)
		},
	}
}

func (a *app) convertRate(in convertInput) (any, error) {
	pyr := in.PYR
	if pyr == 0 {
		pyr = defaultPeriodsPerYear
	}
	switch {
	case in.Nominal != nil && in.Effective == nil:
		eff, err := a.engine.EffectiveRate(*in.Nominal, pyr)
		if err != nil {
			return nil, err
		}
		return convertOutput{Nominal: a.engine.Format(*in.Nominal), Effective: a.engine.Format(eff)}, nil
	case in.Effective != nil && in.Nominal == nil:
		nom, err := a.engine.NominalRate(*in.Effective, pyr)
		if err != nil {
			return nil, err
		}
		return convertOutput{Nominal: a.engine.Format(nom), Effective: a.engine.Format(*in.Effective)}, nil
	default:
		return nil, fmt.Errorf("convert: give exactly one of nominal and effective: %w", num.ErrInvalidInput)
	}
}
