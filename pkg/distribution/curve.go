package distribution

// Kind discriminates which of the nine curve shapes a Curve holds. Only the
// fields documented for that Kind are meaningful; the rest are ignored by
// Evaluate.
type Kind int

const (
	KindFixedAmount Kind = iota
	KindRandom
	KindStepDecreasingAmount
	KindStepwise
	KindLinear
	KindPolynomial
	KindExponential
	KindLogarithmic
	KindInvertedLogarithmic
)

// DefaultStepDecreasingMaxIntervals is the number of decreasing intervals a
// StepDecreasingAmount curve runs through before it falls back to its
// trailing amount, when MaxIntervalCount is not set.
const DefaultStepDecreasingMaxIntervals uint64 = 10000

// MaxDistributionParam bounds Polynomial's intermediate magnitude and doubles
// as the ceiling a positive overflow clamps to when no MaxValue is set.
const MaxDistributionParam uint64 = 1 << 60

// StepPoint is one entry of a Stepwise curve: the emitted amount from offset
// At (inclusive, relative to the registration step) until the next point.
type StepPoint struct {
	At     uint64
	Amount uint64
}

// Curve is a tagged union over the nine distribution-function shapes. The
// shared a/d/m/n/o/b/StartMoment/MinValue/MaxValue fields are used by
// Linear, Polynomial, Exponential, Logarithmic and InvertedLogarithmic, each
// reading only the subset its formula needs.
type Curve struct {
	Kind Kind

	// FixedAmount
	Amount uint64

	// Random
	Min uint64
	Max uint64

	// StepDecreasingAmount
	StepCount                          uint64
	DecreasePerIntervalNumerator       uint64
	DecreasePerIntervalDenominator     uint64
	StartDecreasingOffset              *uint64
	MaxIntervalCount                   *uint64
	DistributionStartAmount            uint64
	TrailingDistributionIntervalAmount uint64

	// Stepwise, sorted ascending by At.
	Steps []StepPoint

	// Linear, Polynomial, Exponential, Logarithmic, InvertedLogarithmic.
	A              int64
	D              int64
	M              int64
	N              int64
	O              int64
	StartMoment    *uint64
	StartingAmount int64 // Linear's additive term ("starting_amount")
	B              int64 // Polynomial/Exponential/Logarithmic/InvertedLogarithmic's additive term

	MinValue *uint64
	MaxValue *uint64
}

func u64ptr(v uint64) *uint64 { return &v }

func FixedAmount(n uint64) Curve { return Curve{Kind: KindFixedAmount, Amount: n} }

func Random(min, max uint64) Curve { return Curve{Kind: KindRandom, Min: min, Max: max} }

func Stepwise(steps []StepPoint) Curve { return Curve{Kind: KindStepwise, Steps: steps} }
