// Package distribution evaluates a token's perpetual-distribution curve
// (component G): a pure function from curve parameters and a moment to a
// credited token amount, covering the nine curve shapes a token contract can
// register (fixed, random, step-decreasing, stepwise, linear, polynomial,
// exponential, logarithmic, inverted-logarithmic).
package distribution

import errorsmod "cosmossdk.io/errors"

const ModuleName = "distribution"

var (
	ErrDivideByZero = errorsmod.Register(ModuleName, 1, "divide by zero")
	ErrOverflow     = errorsmod.Register(ModuleName, 2, "distribution function evaluation overflow")
)
