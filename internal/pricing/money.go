package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
)

var oneHundred = decimal.NewFromInt(100)

// reductionAt converts a discount magnitude into an absolute per-unit
// currency reduction at the given unit price.
func reductionAt(price, value decimal.Decimal, valueType enums.DiscountValueType) decimal.Decimal {
	if valueType == enums.DiscountValuePercentage {
		return price.Mul(value).Div(oneHundred)
	}
	return value
}

// FormatValue renders a discount magnitude the way the storefront shows
// it: "5%" for percentages, "$10.00" for amounts.
func FormatValue(value decimal.Decimal, valueType enums.DiscountValueType) string {
	if valueType == enums.DiscountValuePercentage {
		return value.String() + "%"
	}
	return FormatAmount(value)
}

// FormatAmount renders a currency amount with two decimal places.
func FormatAmount(value decimal.Decimal) string {
	return "$" + value.StringFixed(2)
}
