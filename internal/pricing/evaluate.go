package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
)

// EvaluateDiscount selects the best qualifying tier of a structured
// discount for one product line. Tiers qualify when their minimum
// purchase does not exceed the cart-line value (price * quantity);
// among qualifying tiers the one with the highest absolute per-unit
// reduction wins, earliest tier first on ties. Returns nil when no
// tier qualifies.
func EvaluateDiscount(price decimal.Decimal, quantity int, discount *Discount) *AppliedDiscount {
	if discount == nil || len(discount.Tiers) == 0 {
		return nil
	}

	lineValue := price.Mul(decimal.NewFromInt(int64(quantity)))

	var (
		best      *DiscountTier
		bestValue decimal.Decimal
	)
	for i := range discount.Tiers {
		tier := &discount.Tiers[i]
		if tier.MinimumPurchase.GreaterThan(lineValue) {
			continue
		}
		reduction := reductionAt(price, tier.Value, tier.Type)
		if best == nil || reduction.GreaterThan(bestValue) {
			best = tier
			bestValue = reduction
		}
	}
	if best == nil {
		return nil
	}

	discountID := discount.ID
	return &AppliedDiscount{
		DiscountID:      &discountID,
		AppliesToID:     discount.AppliesToID,
		Value:           bestValue,
		Display:         FormatValue(best.Value, best.Type),
		MinimumPurchase: best.MinimumPurchase,
		Applicable:      true,
		Source:          enums.DiscountSourceDiscount,
	}
}
