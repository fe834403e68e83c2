package utils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// ParseAmount parses a share amount given as a JSON number or numeric string.
// Anything unparsable is zero. Strings must be fully numeric: "5abc" is 0, not 5.
func ParseAmount(v any) decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return val
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(val)
	default:
		f, err := cast.ToFloat64E(val)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(f)
	}
}

// RoundHalfUp rounds x to the nearest integer, halves towards +Inf.
func RoundHalfUp(x float64) float64 {
	return Finite(math.Floor(x + 0.5))
}

// RoundTo rounds x to the given number of decimal places, halves towards +Inf.
func RoundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return Finite(math.Floor(x*p+0.5) / p)
}

// RatioPercent returns num/den as a percentage with two decimals, 0 when den is not positive.
func RatioPercent(num, den float64) float64 {
	if den <= 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return 0
	}
	return Finite(RoundHalfUp(num/den*10000) / 100)
}

// WholePercent returns part/total as a whole percentage, 0 when total is not positive.
func WholePercent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(RoundHalfUp(float64(part) / float64(total) * 100))
}

// ProbabilityToPercent converts a 0..1 price into a rounded 0..100 percentage.
func ProbabilityToPercent(p float64) int {
	return int(RoundHalfUp(Finite(p) * 100))
}
