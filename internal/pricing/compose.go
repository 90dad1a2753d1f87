package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
)

// ComposeApplicable combines a structured discount and a deal string
// into one applied result. Deals stack additively on top of a
// qualifying discount; a discount missing its minimum purchase never
// suppresses a deal. Returns nil when neither mechanism contributes.
func ComposeApplicable(price decimal.Decimal, quantity int, discount *Discount, dealString string) *AppliedDiscount {
	applied := EvaluateDiscount(price, quantity, discount)

	spec := ParseDeal(dealString)
	dealValue := DealValue(price, spec)

	if !dealValue.IsPositive() {
		return applied
	}

	dealDisplay := FormatValue(spec.Value, spec.Type)

	if applied == nil {
		return &AppliedDiscount{
			Value:       dealValue,
			Display:     dealDisplay,
			Applicable:  true,
			Source:      enums.DiscountSourceDeal,
			DealValue:   &dealValue,
			DealDisplay: dealDisplay,
		}
	}

	applied.Value = applied.Value.Add(dealValue)
	applied.Display = applied.Display + " + " + dealDisplay
	applied.Source = enums.DiscountSourceCombined
	applied.DealValue = &dealValue
	applied.DealDisplay = dealDisplay
	return applied
}

// CalculateFinalPrice applies a per-unit discount to a unit price,
// flooring at zero. The cart-level total deliberately does not share
// this clamp.
func CalculateFinalPrice(price decimal.Decimal, applied *AppliedDiscount) decimal.Decimal {
	if applied == nil {
		return price
	}
	final := price.Sub(applied.Value)
	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}
