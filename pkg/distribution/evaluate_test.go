package distribution

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixedAmountIsConstant(t *testing.T) {
	curve := FixedAmount(100)
	for _, x := range []uint64{0, 50, 1000} {
		got, err := Evaluate(curve, 0, x)
		require.NoError(t, err)
		require.EqualValues(t, 100, got)
	}
}

func TestLinearClampsToMinValue(t *testing.T) {
	curve := Linear(-5, 1, U64(0), 100, U64(10), nil)
	got, err := Evaluate(curve, 0, 20)
	require.NoError(t, err)
	require.EqualValues(t, 10, got)
}

func TestRandomRejectsInvertedRange(t *testing.T) {
	curve := Random(50, 40)
	_, err := Evaluate(curve, 0, 0)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestInvertedLogarithmicRejectsNonPositiveArgument(t *testing.T) {
	curve := InvertedLogarithmic(10, 1, 1, 100, -1, U64(1), 5, nil, nil)
	_, err := Evaluate(curve, 0, 1)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestStepDecreasingAmountSequence(t *testing.T) {
	curve := StepDecreasing(10, 1, 2, nil, nil, 100, 10, U64(10))
	cases := map[uint64]uint64{
		0:  100,
		9:  100,
		10: 50,
		20: 25,
		30: 12,
		40: 10,
	}
	for x, want := range cases {
		got, err := Evaluate(curve, 0, x)
		require.NoError(t, err, "x=%d", x)
		require.EqualValuesf(t, want, got, "x=%d", x)
	}
}

func TestLinearDivideByZero(t *testing.T) {
	curve := Linear(1, 0, nil, 0, nil, nil)
	_, err := Evaluate(curve, 0, 10)
	require.ErrorIs(t, err, ErrDivideByZero)
}

func TestLinearPositiveOverflowWithoutMaxValueErrors(t *testing.T) {
	curve := Linear(1<<62, 1, U64(0), 0, nil, nil)
	_, err := Evaluate(curve, 0, 1<<62)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestLinearNegativeOverflowSilentlyZeros(t *testing.T) {
	// Reproduces the documented asymmetry: a<0 overflow returns 0 rather
	// than Overflow, exactly as the original evaluator does.
	curve := Linear(-(1 << 62), 1, U64(0), 0, nil, nil)
	got, err := Evaluate(curve, 0, 1<<62)
	require.NoError(t, err)
	require.EqualValues(t, 0, got)
}

func TestStepwiseReturnsZeroBeforeRegistration(t *testing.T) {
	curve := Stepwise([]StepPoint{{At: 0, Amount: 5}})
	got, err := Evaluate(curve, 100, 10)
	require.NoError(t, err)
	require.EqualValues(t, 0, got)
}

func TestStepwisePicksGreatestKeyBelowOffset(t *testing.T) {
	curve := Stepwise([]StepPoint{
		{At: 0, Amount: 5},
		{At: 10, Amount: 50},
		{At: 20, Amount: 500},
	})
	got, err := Evaluate(curve, 0, 15)
	require.NoError(t, err)
	require.EqualValues(t, 50, got)
}

func TestPolynomialDiffNonPositiveReturnsMinValueOrZero(t *testing.T) {
	curve := Polynomial(1, 1, 1, 1, 0, U64(100), 0, nil, nil)
	got, err := Evaluate(curve, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 0, got)

	withMin := Polynomial(1, 1, 1, 1, 0, U64(100), 0, U64(7), nil)
	got, err = Evaluate(withMin, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 7, got)
}

func TestExponentialClampsToMaxValueOnOverflow(t *testing.T) {
	curve := Exponential(1, 1, 1, 1, 0, U64(0), 0, nil, U64(1000))
	got, err := Evaluate(curve, 0, 1000)
	require.NoError(t, err)
	require.EqualValues(t, 1000, got)
}

func TestLogarithmicDiffNonPositiveErrors(t *testing.T) {
	curve := Logarithmic(1, 1, 1, 1, 0, U64(100), 0, nil, nil)
	_, err := Evaluate(curve, 0, 10)
	require.ErrorIs(t, err, ErrOverflow)
}
