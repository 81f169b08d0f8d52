package distribution

// StepDecreasing builds a StepDecreasingAmount curve. startOffset and
// maxIntervals are optional (nil uses the contract's registration step and
// DefaultStepDecreasingMaxIntervals, respectively); minValue is optional.
func StepDecreasing(stepCount, numerator, denominator uint64, startOffset, maxIntervals *uint64, startAmount, trailingAmount uint64, minValue *uint64) Curve {
	return Curve{
		Kind:                               KindStepDecreasingAmount,
		StepCount:                          stepCount,
		DecreasePerIntervalNumerator:       numerator,
		DecreasePerIntervalDenominator:     denominator,
		StartDecreasingOffset:              startOffset,
		MaxIntervalCount:                   maxIntervals,
		DistributionStartAmount:            startAmount,
		TrailingDistributionIntervalAmount: trailingAmount,
		MinValue:                           minValue,
	}
}

// Linear builds a Linear curve: f(x) = a*(x-s)/d + startingAmount.
func Linear(a, d int64, startMoment *uint64, startingAmount int64, minValue, maxValue *uint64) Curve {
	return Curve{
		Kind:           KindLinear,
		A:              a,
		D:              d,
		StartMoment:    startMoment,
		StartingAmount: startingAmount,
		MinValue:       minValue,
		MaxValue:       maxValue,
	}
}

// Polynomial builds a Polynomial curve: f(x) = a*(x-s+o)^(m/n)/d + b.
func Polynomial(a, d, m, n, o int64, startMoment *uint64, b int64, minValue, maxValue *uint64) Curve {
	return Curve{
		Kind:        KindPolynomial,
		A:           a,
		D:           d,
		M:           m,
		N:           n,
		O:           o,
		StartMoment: startMoment,
		B:           b,
		MinValue:    minValue,
		MaxValue:    maxValue,
	}
}

// Exponential builds an Exponential curve: f(x) = a*exp(m*(x-s+o)/n)/d + b.
func Exponential(a, d, m, n, o int64, startMoment *uint64, b int64, minValue, maxValue *uint64) Curve {
	return Curve{
		Kind:        KindExponential,
		A:           a,
		D:           d,
		M:           m,
		N:           n,
		O:           o,
		StartMoment: startMoment,
		B:           b,
		MinValue:    minValue,
		MaxValue:    maxValue,
	}
}

// Logarithmic builds a Logarithmic curve: f(x) = a*ln(m*(x-s+o)/n)/d + b.
func Logarithmic(a, d, m, n, o int64, startMoment *uint64, b int64, minValue, maxValue *uint64) Curve {
	return Curve{
		Kind:        KindLogarithmic,
		A:           a,
		D:           d,
		M:           m,
		N:           n,
		O:           o,
		StartMoment: startMoment,
		B:           b,
		MinValue:    minValue,
		MaxValue:    maxValue,
	}
}

// InvertedLogarithmic builds an InvertedLogarithmic curve: f(x) = a*ln(n/(m*(x-s+o)))/d + b.
func InvertedLogarithmic(a, d, m, n, o int64, startMoment *uint64, b int64, minValue, maxValue *uint64) Curve {
	return Curve{
		Kind:        KindInvertedLogarithmic,
		A:           a,
		D:           d,
		M:           m,
		N:           n,
		O:           o,
		StartMoment: startMoment,
		B:           b,
		MinValue:    minValue,
		MaxValue:    maxValue,
	}
}

// U64 is a convenience helper for building the *uint64 optional fields above.
func U64(v uint64) *uint64 { return u64ptr(v) }
