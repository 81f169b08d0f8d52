package epoch

import (
	"fmt"
	"math"
	"math/big"
)

// addInt64UintChecked and subInt64UintChecked use explicit bounds checks
// and plain errors, reserved for this package's own internal bookkeeping
// rather than the registered sentinel errors exposed at the public API
// boundary.

func addInt64UintChecked(base int64, delta uint64, field string) (int64, error) {
	if delta > uint64(math.MaxInt64) {
		return 0, fmt.Errorf("%s overflows int64", field)
	}
	d := int64(delta)
	if base > math.MaxInt64-d {
		return 0, fmt.Errorf("%s overflows int64", field)
	}
	return base + d, nil
}

func subInt64UintChecked(base int64, delta uint64, field string) (int64, error) {
	if delta > uint64(math.MaxInt64) {
		return 0, fmt.Errorf("%s underflows int64", field)
	}
	d := int64(delta)
	if base < math.MinInt64+d {
		return 0, fmt.Errorf("%s underflows int64", field)
	}
	return base - d, nil
}

// mulDivFloor computes floor(a*b/denom) using big.Int intermediate
// precision to avoid uint64 overflow on the multiply. It also returns the
// division remainder, needed by the proposer payout loop to accumulate
// fractional leftovers.
func mulDivFloor(a, b, denom uint64) (quotient, remainder uint64, err error) {
	if denom == 0 {
		return 0, 0, fmt.Errorf("mulDivFloor: division by zero")
	}
	prod := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	q, r := new(big.Int).QuoRem(prod, new(big.Int).SetUint64(denom), new(big.Int))
	if !q.IsUint64() {
		return 0, 0, fmt.Errorf("mulDivFloor: quotient overflows uint64")
	}
	return q.Uint64(), r.Uint64(), nil
}
