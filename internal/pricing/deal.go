package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
)

// DealSpec is a parsed per-product deal annotation.
type DealSpec struct {
	Value decimal.Decimal
	Type  enums.DiscountValueType
}

// ParseDeal interprets a free-form deal string ("10%", "$5", "100")
// into a typed spec. Bare numbers are treated as currency amounts, not
// percentages. Anything unparseable or non-positive yields nil; parsing
// never fails loudly because an invalid deal simply means no deal.
func ParseDeal(raw string) *DealSpec {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	switch {
	case strings.HasSuffix(trimmed, "%"):
		return newDealSpec(strings.TrimSuffix(trimmed, "%"), enums.DiscountValuePercentage)
	case strings.HasPrefix(trimmed, "$"):
		return newDealSpec(strings.TrimPrefix(trimmed, "$"), enums.DiscountValueAmount)
	default:
		return newDealSpec(trimmed, enums.DiscountValueAmount)
	}
}

func newDealSpec(raw string, valueType enums.DiscountValueType) *DealSpec {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !value.IsPositive() {
		return nil
	}
	return &DealSpec{Value: value, Type: valueType}
}

// DealValue computes the absolute per-unit reduction a deal spec yields
// at the given unit price.
func DealValue(price decimal.Decimal, spec *DealSpec) decimal.Decimal {
	if spec == nil {
		return decimal.Zero
	}
	return reductionAt(price, spec.Value, spec.Type)
}
