package schema

import (
	"math"

	"github.com/siegeai/schemalike/opts"
)

// Bounds of the int range as floats. maxIntFloat rounds up to 2^63 on 64-bit.
const (
	maxIntFloat = float64(math.MaxInt)
	minIntFloat = float64(math.MinInt)
)

// saturate converts an integral float to int, clamping at the ends of the int range.
func saturate(v float64) int {
	switch {
	case v >= maxIntFloat:
		return math.MaxInt
	case v <= minIntFloat:
		return math.MinInt
	}
	return int(v)
}

// MinInt returns the smallest integer satisfying a lower bound of min. Bounds past
// the int range saturate.
func MinInt(min float64, exclusive bool) int {
	if exclusive && min == math.Trunc(min) {
		if min >= maxIntFloat {
			return math.MaxInt
		}
		return saturate(min) + 1
	}
	return saturate(math.Ceil(min))
}

// MaxInt returns the largest integer satisfying an upper bound of max. Bounds past
// the int range saturate.
func MaxInt(max float64, exclusive bool) int {
	if exclusive && max == math.Trunc(max) {
		if max <= minIntFloat {
			return math.MinInt
		}
		return saturate(max) - 1
	}
	return saturate(math.Floor(max))
}

// intBounds converts a range option into integer count bounds.
func intBounds(r opts.RangeOpt) (min, max *int) {
	if r.Min != nil {
		v := MinInt(*r.Min, r.ExclusiveMin)
		min = &v
	}
	if r.Max != nil {
		v := MaxInt(*r.Max, r.ExclusiveMax)
		max = &v
	}
	return min, max
}
