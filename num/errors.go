package num

import "errors"

// Failure classes reported by every engine package. Callers match them with
// errors.Is; the wrapping message carries the operation and operands.
var (
	// ErrDivisionByZero is returned when a formula divides by a zero rate,
	// zero annuity factor, or any other zero denominator.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrDomain is returned for logarithms of non-positive values, square
	// roots of negative values, and equations with no real solution.
	ErrDomain = errors.New("domain error")

	// ErrConvergence is returned when an iterative solve exhausts its
	// iteration budget or its derivative vanishes.
	ErrConvergence = errors.New("did not converge")

	// ErrInvalidInput is returned for out-of-range periods, too few cash
	// flows, and other malformed arguments.
	ErrInvalidInput = errors.New("invalid input")
)
