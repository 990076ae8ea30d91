// README: Discount pricing calculator.
package pricing

import (
	"math"

	"rentalpromo/internal/types"
)

// Amount is a per-day price that may be Unknown.
type Amount = types.Maybe[float64]

// Price applies rule to base. An unknown or non-finite base stays unknown; a
// nil rule leaves base unchanged. Fixed rules replace the price, percentage
// rules are clamped to [0,100] and rounded half-to-even. The result is never
// negative, and a non-finite rule value yields Unknown.
func Price(base Amount, rule *Rule) Amount {
	b, ok := base.Get()
	if !ok || !finite(b) {
		return types.Unknown[float64]()
	}
	if rule == nil {
		return base
	}
	if !finite(rule.Value) {
		return types.Unknown[float64]()
	}
	switch rule.Type {
	case DiscountFixed:
		return types.Known(math.Max(0, rule.Value))
	case DiscountPercentage:
		pct := clamp(rule.Value, 0, 100)
		final := math.RoundToEven(b * (100 - pct) / 100)
		return types.Known(math.Max(0, final))
	}
	return base
}

// Savings is base minus final, Unknown when either side is.
func Savings(base, final Amount) Amount {
	b, ok := base.Get()
	if !ok {
		return types.Unknown[float64]()
	}
	f, ok := final.Get()
	if !ok {
		return types.Unknown[float64]()
	}
	if !finite(b) || !finite(f) {
		return types.Unknown[float64]()
	}
	return types.Known(b - f)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}
