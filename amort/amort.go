// Package amort builds loan amortization schedules.
package amort

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fincalc/num"
)

// Row is one period of a schedule. Cumulative totals run from period 1
// regardless of where the emitted range starts.
type Row struct {
	Period              int             `json:"period"`
	Interest            decimal.Decimal `json:"interest"`
	Principal           decimal.Decimal `json:"principal"`
	Balance             decimal.Decimal `json:"balance"`
	CumulativeInterest  decimal.Decimal `json:"cumulative_interest"`
	CumulativePrincipal decimal.Decimal `json:"cumulative_principal"`
}

// Schedule amortizes principal over n periods at the periodic rate with a
// level payment and returns the rows for periods start through end.
//
// Each period charges balance × rate of interest and applies the rest of the
// payment to principal. Principal and payment share a sign: a positive loan
// repaid with a positive payment yields a declining balance.
func Schedule(ctx num.Context, n int, rate, principal, payment decimal.Decimal, start, end int) ([]Row, error) {
	if n < 1 {
		return nil, fmt.Errorf("Schedule: number of periods %d must be positive: %w", n, num.ErrInvalidInput)
	}
	if start < 1 || start > end || end > n {
		return nil, fmt.Errorf("Schedule: range [%d, %d] outside [1, %d]: %w", start, end, n, num.ErrInvalidInput)
	}

	rows := make([]Row, 0, end-start+1)
	balance := principal
	var cumInterest, cumPrincipal decimal.Decimal
	for period := 1; period <= end; period++ {
		interest := ctx.Mul(balance, rate)
		applied := payment.Sub(interest)
		balance = balance.Sub(applied)
		cumInterest = cumInterest.Add(interest)
		cumPrincipal = cumPrincipal.Add(applied)

		if period < start {
			continue
		}
		rows = append(rows, Row{
			Period:              period,
			Interest:            interest,
			Principal:           applied,
			Balance:             balance,
			CumulativeInterest:  cumInterest,
			CumulativePrincipal: cumPrincipal,
		})
	}
	return rows, nil
}

// Summary totals a contiguous range of rows.
type Summary struct {
	Start     int             `json:"start"`
	End       int             `json:"end"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Balance   decimal.Decimal `json:"balance"`
}

// Summarize returns the interest and principal paid over rows and the
// balance after the last one. An empty slice gives the zero Summary.
func Summarize(rows []Row) Summary {
	if len(rows) == 0 {
		return Summary{}
	}
	s := Summary{Start: rows[0].Period, End: rows[len(rows)-1].Period}
	for _, r := range rows {
		s.Interest = s.Interest.Add(r.Interest)
		s.Principal = s.Principal.Add(r.Principal)
	}
	s.Balance = rows[len(rows)-1].Balance
	return s
}
