// Package depreciation computes the charge for one period of an asset's life
// under the straight-line, declining-balance and sum-of-years'-digits methods.
package depreciation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fincalc/num"
)

// Method selects a depreciation schedule.
type Method string

const (
	StraightLine     Method = "SL"
	DecliningBalance Method = "DB"
	SumOfYearsDigits Method = "SOYD"
)

// DefaultFactor is the declining-balance factor used when Params.Factor is
// zero (double declining balance).
var DefaultFactor = decimal.NewFromInt(2)

// ParseMethod accepts SL, DB and SOYD (also SYD), case-insensitively.
func ParseMethod(s string) (Method, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SL":
		return StraightLine, nil
	case "DB", "DDB":
		return DecliningBalance, nil
	case "SOYD", "SYD":
		return SumOfYearsDigits, nil
	default:
		return "", fmt.Errorf("ParseMethod: unknown depreciation method %q: %w", s, num.ErrInvalidInput)
	}
}

// Params describe the asset and the period asked for.
type Params struct {
	Cost    decimal.Decimal `json:"cost"`
	Salvage decimal.Decimal `json:"salvage"`
	Life    int             `json:"life"`
	Period  int             `json:"period"`
	// Factor is the declining-balance multiple; zero means DefaultFactor.
	Factor decimal.Decimal `json:"factor"`
}

func (p Params) validate() error {
	if p.Life <= 0 {
		return fmt.Errorf("depreciation: life %d must be positive: %w", p.Life, num.ErrInvalidInput)
	}
	if p.Period < 1 || p.Period > p.Life {
		return fmt.Errorf("depreciation: period %d outside [1, %d]: %w", p.Period, p.Life, num.ErrInvalidInput)
	}
	if p.Cost.LessThan(p.Salvage) {
		return fmt.Errorf("depreciation: cost %s below salvage %s: %w", p.Cost, p.Salvage, num.ErrInvalidInput)
	}
	if p.Factor.IsNegative() {
		return fmt.Errorf("depreciation: factor %s must be positive: %w", p.Factor, num.ErrInvalidInput)
	}
	return nil
}

// Result is the charge for Params.Period, the total charged through it and
// the book value left after it.
type Result struct {
	Amount      decimal.Decimal `json:"amount"`
	Accumulated decimal.Decimal `json:"accumulated"`
	BookValue   decimal.Decimal `json:"book_value"`
}

// Compute returns the depreciation for p.Period under method.
func Compute(ctx num.Context, method Method, p Params) (Result, error) {
	if err := p.validate(); err != nil {
		return Result{}, err
	}
	switch method {
	case StraightLine:
		return straightLine(ctx, p)
	case DecliningBalance:
		return decliningBalance(ctx, p)
	case SumOfYearsDigits:
		return sumOfYearsDigits(ctx, p)
	default:
		return Result{}, fmt.Errorf("Compute: unknown depreciation method %q: %w", method, num.ErrInvalidInput)
	}
}

func straightLine(ctx num.Context, p Params) (Result, error) {
	base := p.Cost.Sub(p.Salvage)
	life := num.FromInt(p.Life)
	amount, err := ctx.Div(base, life)
	if err != nil {
		return Result{}, err
	}
	accumulated, err := ctx.Div(base.Mul(num.FromInt(p.Period)), life)
	if err != nil {
		return Result{}, err
	}
	return Result{Amount: amount, Accumulated: accumulated, BookValue: p.Cost.Sub(accumulated)}, nil
}

// decliningBalance charges factor/life of the opening book value each
// period, never taking book value below salvage. Periods after the one that
// reaches salvage charge nothing.
func decliningBalance(ctx num.Context, p Params) (Result, error) {
	factor := p.Factor
	if factor.IsZero() {
		factor = DefaultFactor
	}
	rate, err := ctx.Div(factor, num.FromInt(p.Life))
	if err != nil {
		return Result{}, err
	}

	book := p.Cost
	var amount decimal.Decimal
	for period := 1; period <= p.Period; period++ {
		if book.LessThanOrEqual(p.Salvage) {
			amount = decimal.Zero
			continue
		}
		amount = ctx.Mul(book, rate)
		if book.Sub(amount).LessThan(p.Salvage) {
			amount = book.Sub(p.Salvage)
		}
		book = book.Sub(amount)
	}
	return Result{Amount: amount, Accumulated: p.Cost.Sub(book), BookValue: book}, nil
}

// sumOfYearsDigits weights period k by (life − k + 1) / (life(life+1)/2).
func sumOfYearsDigits(ctx num.Context, p Params) (Result, error) {
	base := p.Cost.Sub(p.Salvage)
	digits := num.FromInt(p.Life * (p.Life + 1) / 2)

	remaining := p.Life - p.Period + 1
	amount, err := ctx.Div(base.Mul(num.FromInt(remaining)), digits)
	if err != nil {
		return Result{}, err
	}

	// Σ_{k=1..p} (life − k + 1)
	used := 0
	for k := 1; k <= p.Period; k++ {
		used += p.Life - k + 1
	}
	accumulated, err := ctx.Div(base.Mul(num.FromInt(used)), digits)
	if err != nil {
		return Result{}, err
	}
	return Result{Amount: amount, Accumulated: accumulated, BookValue: p.Cost.Sub(accumulated)}, nil
}
