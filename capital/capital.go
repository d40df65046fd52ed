// Package capital projects capital accumulation for a real-estate style
// investment that reinvests part of each year's value and pays out a safety
// (cash) amount, and evaluates the projection.
package capital

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fincalc/cashflow"
	"github.com/meenmo/fincalc/num"
	"github.com/meenmo/fincalc/solver"
)

// DefaultYears is the projection horizon used when Params.Years is zero.
const DefaultYears = 10

// Params of a projection. Percentages are given as percent (10 = 10%).
type Params struct {
	ReinvestPercent decimal.Decimal `json:"reinvest_percent"`
	SafetyPercent   decimal.Decimal `json:"safety_percent"`
	Investment      decimal.Decimal `json:"investment"`
	Years           int             `json:"years"`
}

// Year is one row of a projection. Year 0 holds the initial investment.
type Year struct {
	Year         int             `json:"year"`
	Investment   decimal.Decimal `json:"investment"`
	Reinvestment decimal.Decimal `json:"reinvestment"`
	Safety       decimal.Decimal `json:"safety"`
	Accumulated  decimal.Decimal `json:"accumulated"`
	Total        decimal.Decimal `json:"total"`
}

// Accumulate projects Years years. Each year reinvests and pays out fixed
// shares of the previous year's total; the total is the investment plus all
// reinvestment so far.
func Accumulate(ctx num.Context, p Params) ([]Year, error) {
	years := p.Years
	if years == 0 {
		years = DefaultYears
	}
	if years < 1 {
		return nil, fmt.Errorf("Accumulate: years %d must be positive: %w", p.Years, num.ErrInvalidInput)
	}
	if !p.Investment.IsPositive() {
		return nil, fmt.Errorf("Accumulate: investment %s must be positive: %w", p.Investment, num.ErrInvalidInput)
	}
	reinvest, err := ctx.Div(p.ReinvestPercent, num.Hundred)
	if err != nil {
		return nil, err
	}
	safety, err := ctx.Div(p.SafetyPercent, num.Hundred)
	if err != nil {
		return nil, err
	}

	rows := make([]Year, 0, years+1)
	rows = append(rows, Year{Investment: p.Investment, Total: p.Investment})
	for y := 1; y <= years; y++ {
		prev := rows[y-1]
		r := ctx.Mul(prev.Total, reinvest)
		accumulated := prev.Accumulated.Add(r)
		rows = append(rows, Year{
			Year:         y,
			Investment:   p.Investment,
			Reinvestment: r,
			Safety:       ctx.Mul(prev.Total, safety),
			Accumulated:  accumulated,
			Total:        p.Investment.Add(accumulated),
		})
	}
	return rows, nil
}

// Analysis evaluates a projection. IRR and the ROI figures are percentages.
type Analysis struct {
	Years []Year          `json:"years"`
	IRR   decimal.Decimal `json:"irr"`
	// Payback is the fractional year at which cumulative safety amounts
	// recover the investment; nil when they never do within the horizon.
	Payback       *decimal.Decimal `json:"payback,omitempty"`
	ROI           decimal.Decimal  `json:"roi"`
	AnnualizedROI decimal.Decimal  `json:"annualized_roi"`
}

// Analyze projects p and derives IRR, payback period, total ROI and
// annualized ROI.
//
// The IRR series is −investment, then each year's safety amount, with the
// final year's total added to the last flow.
func Analyze(ctx num.Context, p Params, s solver.Settings) (Analysis, error) {
	rows, err := Accumulate(ctx, p)
	if err != nil {
		return Analysis{}, err
	}
	last := rows[len(rows)-1]

	entries := make([]cashflow.Entry, 0, len(rows))
	entries = append(entries, cashflow.Entry{Amount: p.Investment.Neg()})
	for _, r := range rows[1:] {
		entries = append(entries, cashflow.Entry{Amount: r.Safety})
	}
	entries[len(entries)-1].Amount = entries[len(entries)-1].Amount.Add(last.Total)

	irr, err := cashflow.IRR(ctx, entries, s)
	if err != nil {
		return Analysis{}, fmt.Errorf("Analyze: %w", err)
	}

	ratio, err := ctx.Div(last.Total, p.Investment)
	if err != nil {
		return Analysis{}, fmt.Errorf("Analyze: %w", err)
	}
	root, err := ctx.Div(num.One, num.FromInt(last.Year))
	if err != nil {
		return Analysis{}, fmt.Errorf("Analyze: %w", err)
	}
	growth, err := ctx.Pow(ratio, root)
	if err != nil {
		return Analysis{}, fmt.Errorf("Analyze: annualized ROI: %w", err)
	}

	return Analysis{
		Years:         rows,
		IRR:           irr.Mul(num.Hundred),
		Payback:       payback(ctx, p.Investment, rows),
		ROI:           ratio.Sub(num.One).Mul(num.Hundred),
		AnnualizedROI: growth.Sub(num.One).Mul(num.Hundred),
	}, nil
}

// payback interpolates linearly within the year the cumulative safety
// amounts turn non-negative.
func payback(ctx num.Context, investment decimal.Decimal, rows []Year) *decimal.Decimal {
	cumulative := investment.Neg()
	for i := 1; i < len(rows); i++ {
		before := cumulative
		cumulative = cumulative.Add(rows[i].Safety)
		if cumulative.Sign() < 0 {
			continue
		}
		fraction, err := ctx.Div(before.Abs(), rows[i].Safety)
		if err != nil {
			return nil
		}
		v := num.FromInt(i - 1).Add(fraction)
		return &v
	}
	return nil
}
