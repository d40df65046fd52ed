// Package solver holds the Newton-Raphson root finder shared by the TVM rate,
// IRR, and bond yield solves.
package solver

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fincalc/num"
)

var half = decimal.New(5, -1)

// Func is a residual function whose root is wanted.
type Func func(x decimal.Decimal) (decimal.Decimal, error)

// Settings are the iteration parameters of Newton.
type Settings struct {
	// Guess is the starting point.
	Guess decimal.Decimal
	// Step is the half-width h of the central difference
	// f'(x) ≈ (f(x+h) - f(x-h)) / 2h.
	Step decimal.Decimal
	// Tolerance bounds |f(x)| at convergence.
	Tolerance decimal.Decimal
	// MinDerivative is the smallest |f'(x)| accepted before the Newton step
	// is considered undefined.
	MinDerivative decimal.Decimal
	// MaxIterations caps the number of Newton steps.
	MaxIterations int
	// Damping limits each step to max(Damping·|x|, Step). Zero disables it.
	Damping decimal.Decimal

	floor    decimal.Decimal
	hasFloor bool
}

// DefaultSettings returns guess 0.1, step 1e-4, tolerance 1e-7,
// derivative floor 1e-15, 100 iterations and damping 0.5.
func DefaultSettings() Settings {
	return Settings{
		Guess:         decimal.New(1, -1),
		Step:          decimal.New(1, -4),
		Tolerance:     decimal.New(1, -7),
		MinDerivative: decimal.New(1, -15),
		MaxIterations: 100,
		Damping:       decimal.New(5, -1),
	}
}

// WithGuess returns a copy of s starting from guess.
func (s Settings) WithGuess(guess decimal.Decimal) Settings {
	s.Guess = guess
	return s
}

// WithFloor returns a copy of s whose iterates stay strictly above floor.
// A step that would cross it lands halfway between the current iterate and
// the floor instead.
func (s Settings) WithFloor(floor decimal.Decimal) Settings {
	s.floor = floor
	s.hasFloor = true
	return s
}

// Validate reports settings Newton cannot run with.
func (s Settings) Validate() error {
	if s.MaxIterations < 1 {
		return fmt.Errorf("solver: MaxIterations must be positive: %w", num.ErrInvalidInput)
	}
	if !s.Step.IsPositive() {
		return fmt.Errorf("solver: Step must be positive: %w", num.ErrInvalidInput)
	}
	if !s.Tolerance.IsPositive() {
		return fmt.Errorf("solver: Tolerance must be positive: %w", num.ErrInvalidInput)
	}
	if s.MinDerivative.IsNegative() {
		return fmt.Errorf("solver: MinDerivative must not be negative: %w", num.ErrInvalidInput)
	}
	if s.Damping.IsNegative() {
		return fmt.Errorf("solver: Damping must not be negative: %w", num.ErrInvalidInput)
	}
	if s.hasFloor && s.Guess.LessThanOrEqual(s.floor) {
		return fmt.Errorf("solver: Guess %s is not above floor %s: %w", s.Guess, s.floor, num.ErrInvalidInput)
	}
	return nil
}

// Result is a converged root.
type Result struct {
	Root decimal.Decimal
	// Iterations is the number of residual checks performed, including the
	// one that met the tolerance.
	Iterations int
}

// Newton finds x with |f(x)| < Tolerance starting from s.Guess.
//
// Each step is x − f(x)/f'(x) with f' from a central difference, limited in
// size by Damping and kept above the floor when one is set. Long annuities
// make PV(rate) steep near the guess, and an undamped first step from 0.1
// lands below −1.
//
// There is no bracketing: functions with several roots converge to whichever
// the iteration reaches first, and functions without a reachable root fail
// with num.ErrConvergence. A residual that cannot be evaluated (for example a
// discount base of zero) also fails with num.ErrConvergence, wrapping the
// underlying error.
func Newton(ctx num.Context, f Func, s Settings) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}

	x := s.Guess
	twoStep := s.Step.Add(s.Step)

	for iter := 0; iter < s.MaxIterations; iter++ {
		fx, err := f(x)
		if err != nil {
			return Result{}, fmt.Errorf("solver: residual at %s: %w: %w", x, num.ErrConvergence, err)
		}
		if fx.Abs().LessThan(s.Tolerance) {
			return Result{Root: x, Iterations: iter + 1}, nil
		}

		up, err := f(x.Add(s.Step))
		if err != nil {
			return Result{}, fmt.Errorf("solver: residual at %s: %w: %w", x.Add(s.Step), num.ErrConvergence, err)
		}
		down, err := f(x.Sub(s.Step))
		if err != nil {
			return Result{}, fmt.Errorf("solver: residual at %s: %w: %w", x.Sub(s.Step), num.ErrConvergence, err)
		}

		deriv, err := ctx.Div(up.Sub(down), twoStep)
		if err != nil {
			return Result{}, err
		}
		if deriv.Abs().LessThanOrEqual(s.MinDerivative) {
			return Result{}, fmt.Errorf("solver: derivative vanished at %s after %d iterations: %w", x, iter+1, num.ErrConvergence)
		}

		delta, err := ctx.Div(fx, deriv)
		if err != nil {
			return Result{}, err
		}
		if s.Damping.IsPositive() {
			limit := decimal.Max(ctx.Mul(s.Damping, x.Abs()), s.Step)
			if delta.Abs().GreaterThan(limit) {
				delta = limit.Mul(decimal.NewFromInt(int64(delta.Sign())))
			}
		}
		next := x.Sub(delta)
		if s.hasFloor && next.LessThanOrEqual(s.floor) {
			next = ctx.Mul(x.Add(s.floor), half)
		}
		x = next
	}

	return Result{}, fmt.Errorf("solver: no root within %d iterations (last guess %s): %w", s.MaxIterations, x, num.ErrConvergence)
}
