// Package num is the decimal arithmetic substrate shared by every engine
// package. Values are shopspring decimals; precision is carried by an
// immutable Context passed explicitly into each computation, so concurrent
// callers never observe each other's settings.
package num

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MinScale is the smallest working precision accepted by NewContext.
	// Scales count digits after the decimal point, not significant digits:
	// a value below 1e-12 keeps fewer than MinScale significant digits.
	MinScale int32 = 12
	// MaxScale bounds the working precision.
	MaxScale int32 = 100
	// DefaultScale is the working precision of the zero Context.
	DefaultScale int32 = 28

	// guardDigits are carried by series evaluations beyond the working scale.
	guardDigits int32 = 10

	// maxIntExponent is the largest exponent PowInt is asked to square out;
	// larger integral exponents go through exp/ln.
	maxIntExponent int64 = 1_000_000
	// maxExpArgument bounds Exp; e^1000 already has 435 integer digits.
	maxExpArgument int64 = 1000
)

var (
	// One is the decimal 1.
	One = decimal.NewFromInt(1)
	// Hundred converts between fractions and percentages.
	Hundred = decimal.NewFromInt(100)

	two  = decimal.NewFromInt(2)
	half = decimal.New(5, -1)
)

// Context fixes the working precision: the number of digits kept after the
// decimal point by every division, rounded product, logarithm, and
// exponential. The zero Context uses DefaultScale.
type Context struct {
	scale int32
}

// NewContext returns a Context with the given working precision.
func NewContext(scale int32) (Context, error) {
	if scale < MinScale || scale > MaxScale {
		return Context{}, fmt.Errorf("NewContext: scale %d outside [%d, %d]: %w", scale, MinScale, MaxScale, ErrInvalidInput)
	}
	return Context{scale: scale}, nil
}

// DefaultContext returns a Context with DefaultScale.
func DefaultContext() Context {
	return Context{scale: DefaultScale}
}

// Scale returns the working precision in fractional digits.
func (c Context) Scale() int32 {
	if c.scale == 0 {
		return DefaultScale
	}
	return c.scale
}

func (c Context) work() int32 {
	return c.Scale() + guardDigits
}

// Add returns a + b exactly.
func (c Context) Add(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b)
}

// Sub returns a - b exactly.
func (c Context) Sub(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b)
}

// Mul returns a × b rounded to the working precision.
func (c Context) Mul(a, b decimal.Decimal) decimal.Decimal {
	return a.Mul(b).Round(c.Scale())
}

// Div returns a / b rounded half away from zero to the working precision.
func (c Context) Div(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Zero, fmt.Errorf("Div: %s / 0: %w", a, ErrDivisionByZero)
	}
	return a.DivRound(b, c.Scale()), nil
}

// PowInt returns x^n for an integral exponent by repeated squaring.
// Negative exponents divide, so 0^-n reports ErrDivisionByZero.
func (c Context) PowInt(x decimal.Decimal, n int64) (decimal.Decimal, error) {
	if n < 0 {
		p, err := c.PowInt(x, -n)
		if err != nil {
			return decimal.Zero, err
		}
		return c.Div(One, p)
	}
	w := c.work()
	result := One
	base := x
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(w)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base).Round(w)
		}
	}
	return result.Round(c.Scale()), nil
}

// Pow returns x^y. Integral exponents are exact up to rounding and accept a
// negative base; non-integral exponents use exp(y·ln x) and require x > 0.
func (c Context) Pow(x, y decimal.Decimal) (decimal.Decimal, error) {
	if y.IsInteger() && y.Abs().LessThanOrEqual(decimal.NewFromInt(maxIntExponent)) {
		return c.PowInt(x, y.IntPart())
	}
	if x.Sign() <= 0 {
		if x.IsZero() && y.IsPositive() {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("Pow: %s^%s has no real value: %w", x, y, ErrDomain)
	}
	w := c.work()
	l := lnAt(x, w)
	e, err := c.expAt(l.Mul(y).Round(w), w)
	if err != nil {
		return decimal.Zero, fmt.Errorf("Pow: %s^%s: %w", x, y, err)
	}
	return e.Round(c.Scale()), nil
}

// Ln returns the natural logarithm of x.
func (c Context) Ln(x decimal.Decimal) (decimal.Decimal, error) {
	if x.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("Ln: %s is not positive: %w", x, ErrDomain)
	}
	return lnAt(x, c.work()).Round(c.Scale()), nil
}

// Exp returns e^x.
func (c Context) Exp(x decimal.Decimal) (decimal.Decimal, error) {
	e, err := c.expAt(x, c.work())
	if err != nil {
		return decimal.Zero, err
	}
	return e.Round(c.Scale()), nil
}

// Sqrt returns the non-negative square root of x.
func (c Context) Sqrt(x decimal.Decimal) (decimal.Decimal, error) {
	if x.IsNegative() {
		return decimal.Zero, fmt.Errorf("Sqrt: %s is negative: %w", x, ErrDomain)
	}
	if x.IsZero() {
		return decimal.Zero, nil
	}
	w := c.work()
	ulp := decimal.New(1, -w)
	g := decimal.Max(x, One)
	for i := 0; i < 1000; i++ {
		next := g.Add(x.DivRound(g, w)).DivRound(two, w)
		done := next.Sub(g).Abs().LessThanOrEqual(ulp)
		g = next
		if done {
			break
		}
	}
	return g.Round(c.Scale()), nil
}

// Round rounds x half away from zero to places fractional digits.
func (c Context) Round(x decimal.Decimal, places int32) decimal.Decimal {
	return x.Round(places)
}

// Format renders x with exactly places fractional digits, rounding half
// away from zero.
func (c Context) Format(x decimal.Decimal, places int32) string {
	return x.StringFixed(places)
}

// Parse reads a plain decimal literal such as "-200000" or "0.005".
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("Parse: %q: %v: %w", s, err, ErrInvalidInput)
	}
	return d, nil
}

// MustParse is Parse for literals known to be valid; it panics otherwise.
func MustParse(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromInt converts an integer.
func FromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
