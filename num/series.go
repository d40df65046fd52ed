package num

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// lnAt returns ln(x) for x > 0 with w fractional digits.
//
// x is scaled by powers of two into [0.5, 2], then
//
//	ln(x) = k·ln 2 + 2·atanh((x-1)/(x+1))
//
// where |(x-1)/(x+1)| <= 1/3, so each series term shrinks by at least 9×.
func lnAt(x decimal.Decimal, w int32) decimal.Decimal {
	var k int64
	for x.GreaterThan(two) {
		x = x.DivRound(two, w)
		k++
	}
	for x.LessThan(half) {
		x = x.Mul(two)
		k--
	}
	r := atanh2(x.Sub(One).DivRound(x.Add(One), w), w)
	if k != 0 {
		ln2 := atanh2(One.DivRound(decimal.NewFromInt(3), w), w)
		r = r.Add(ln2.Mul(decimal.NewFromInt(k)))
	}
	return r.Round(w)
}

// atanh2 returns 2·atanh(z) = 2·Σ z^(2n+1)/(2n+1) for |z| < 1.
func atanh2(z decimal.Decimal, w int32) decimal.Decimal {
	z2 := z.Mul(z).Round(w)
	term := z
	sum := z
	for n := int64(3); ; n += 2 {
		term = term.Mul(z2).Round(w)
		if term.IsZero() {
			break
		}
		sum = sum.Add(term.DivRound(decimal.NewFromInt(n), w))
	}
	return sum.Mul(two)
}

// expAt returns e^x with w fractional digits. Negative arguments are
// computed as 1/e^|x| to keep relative precision in tiny results.
func (c Context) expAt(x decimal.Decimal, w int32) (decimal.Decimal, error) {
	limit := decimal.NewFromInt(maxExpArgument)
	if x.GreaterThan(limit) {
		return decimal.Zero, fmt.Errorf("Exp: argument %s exceeds %s: %w", x, limit, ErrDomain)
	}
	if x.IsNegative() {
		if x.LessThan(limit.Neg()) {
			// e^-1000 is below 10^-434, smaller than any allowed scale.
			return decimal.Zero, nil
		}
		e, err := c.expAt(x.Neg(), w)
		if err != nil {
			return decimal.Zero, err
		}
		return One.DivRound(e, w), nil
	}

	// e^x = (e^(x/2^k))^(2^k) with x/2^k <= 1/2.
	r := x
	k := 0
	for r.GreaterThan(half) {
		r = r.DivRound(two, w)
		k++
	}
	sum := One
	term := One
	for i := int64(1); ; i++ {
		term = term.Mul(r).DivRound(decimal.NewFromInt(i), w)
		if term.IsZero() {
			break
		}
		sum = sum.Add(term)
	}
	for ; k > 0; k-- {
		sum = sum.Mul(sum).Round(w)
	}
	return sum, nil
}
