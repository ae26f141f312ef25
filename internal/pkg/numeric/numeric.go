// Package numeric provides safe coercion of raw connector values to finite
// numbers. Windsor returns metric fields as float64, integer, string, or null
// depending on platform and field, so aggregation code goes through these
// helpers instead of type-asserting inline.
package numeric

import (
	"encoding/json"
	"math"
	"strconv"
)

// ToNumber returns the numeric value of v if it is a finite number, else 0.
// It never panics, whatever the dynamic type of v.
func ToNumber(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if n {
			f = 1
		}
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ToNonNegative coerces v with ToNumber and clamps negative results to 0.
// All flow-metric inputs pass through here to guard against corrupt
// negative values from the data source.
func ToNonNegative(v any) float64 {
	f := ToNumber(v)
	if f < 0 {
		return 0
	}
	return f
}

// Sum returns the arithmetic sum of values. Empty input yields 0.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Average returns the arithmetic mean of values. Empty input yields 0,
// not NaN; callers rely on this contract.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}
