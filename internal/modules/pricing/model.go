// README: Discount rule definition for per-model program discounts.
package pricing

import "strings"

type DiscountType string

const (
	// DiscountFixed replaces the base price with the rule value.
	DiscountFixed DiscountType = "fixed"
	// DiscountPercentage takes a percentage off the base price.
	DiscountPercentage DiscountType = "percentage"
)

// ParseDiscountType accepts the stored spellings of a discount type.
func ParseDiscountType(raw string) (DiscountType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "fixed", "fixed_price", "amount":
		return DiscountFixed, true
	case "percentage", "percent", "%":
		return DiscountPercentage, true
	}
	return "", false
}

type Rule struct {
	Type  DiscountType `json:"discount_type"`
	Value float64      `json:"discount_value"`
}

type PreviewRequest struct {
	BasePrice *float64 `json:"base_price"`
	// ModelID is used to look up the base price when BasePrice is nil.
	ModelID       string  `json:"model_id"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
}

type PreviewResult struct {
	BasePrice  Amount `json:"base_price"`
	FinalPrice Amount `json:"final_price"`
	Savings    Amount `json:"savings"`
}
