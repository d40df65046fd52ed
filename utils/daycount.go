package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fincalc/num"
)

// Day count conventions understood by YearFraction.
const (
	Act360  = "ACT/360"
	Act365F = "ACT/365F"
	Thirty  = "30/360"
	Thirty0 = "30E/360"
)

// YearFraction computes the year fraction between two dates using the given
// day count convention. An empty convention means ACT/365F.
func YearFraction(ctx num.Context, start, end time.Time, convention string) (decimal.Decimal, error) {
	switch strings.ToUpper(strings.TrimSpace(convention)) {
	case Act360:
		return ctx.Div(num.FromInt(Days(start, end)), num.FromInt(360))
	case Act365F, "ACT/365", "":
		return ctx.Div(num.FromInt(Days(start, end)), num.FromInt(365))
	case Thirty0, Thirty:
		// 30E/360: D1 and D2 are capped at 30.
		d1 := start.Day()
		if d1 > 30 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 > 30 {
			d2 = 30
		}
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return ctx.Div(num.FromInt(360*(y2-y1)+30*(m2-m1)+(d2-d1)), num.FromInt(360))
	default:
		return decimal.Zero, fmt.Errorf("YearFraction: unsupported day count %q: %w", convention, num.ErrInvalidInput)
	}
}
