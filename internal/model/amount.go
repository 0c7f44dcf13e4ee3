package model

import "math"

// MaxAmount bounds a single order or purchase amount. Larger stored values are
// treated as malformed and larger inputs are rejected.
const MaxAmount int64 = 1_000_000_000_000

// AddAmounts sums amounts, saturating at the int64 limits instead of wrapping.
func AddAmounts(amounts ...int64) int64 {
	var sum int64
	for _, a := range amounts {
		switch {
		case a > 0 && sum > math.MaxInt64-a:
			sum = math.MaxInt64
		case a < 0 && sum < math.MinInt64-a:
			sum = math.MinInt64
		default:
			sum += a
		}
	}
	return sum
}
