package main

import (
	"fmt"
	"log"

	"github.com/meenmo/fincalc/engine"
	"github.com/meenmo/fincalc/num"
	"github.com/meenmo/fincalc/tvm"
)

func main() {
	e := engine.Default()
	ctx := e.Context()

	rate, err := tvm.PeriodicRate(ctx, num.MustParse("6"), 12)
	if err != nil {
		log.Fatal(err)
	}
	loan := tvm.Params{
		N:    tvm.TotalPeriods(num.MustParse("30"), 12),
		Rate: rate,
		PV:   num.MustParse("-200000"),
	}

	pmt, err := e.SolveTVM(loan, tvm.TargetPMT)
	if err != nil {
		log.Fatal(err)
	}

	rows, err := e.AmortizationSchedule(360, rate, loan.PV.Neg(), pmt, 1, 360)
	if err != nil {
		log.Fatal(err)
	}
	last := rows[len(rows)-1]

	fmt.Printf("Payment: %s\n", e.Format(pmt))
	fmt.Printf("Total interest: %s\n", e.Format(last.CumulativeInterest))
	fmt.Printf("Final balance: %s\n", e.Format(last.Balance))
}
