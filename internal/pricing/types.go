package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
)

// DiscountTier is one pricing rule inside a Discount. MinimumPurchase
// is the cart-line value (unit price times quantity) required before
// the tier applies.
type DiscountTier struct {
	Value           decimal.Decimal
	Type            enums.DiscountValueType
	MinimumPurchase decimal.Decimal
}

// Discount is a named collection of tiers scoped to a product or a
// category. Tiers keep their defined order; ties between qualifying
// tiers resolve to the earliest one.
type Discount struct {
	ID            uuid.UUID
	Name          string
	AppliesToType enums.DiscountScope
	AppliesToID   string
	Tiers         []DiscountTier
}

// AppliedDiscount is the computed pricing result for one product line.
// Value is the absolute per-unit reduction in currency.
type AppliedDiscount struct {
	DiscountID      *uuid.UUID
	AppliesToID     string
	Value           decimal.Decimal
	Display         string
	MinimumPurchase decimal.Decimal
	Applicable      bool
	Source          enums.DiscountSource
	// DealValue and DealDisplay carry the deal's contribution alone so
	// callers can show the breakdown when Source is combined.
	DealValue   *decimal.Decimal
	DealDisplay string
}

// CartItem is one line consumed by the cart aggregator. Discount and
// Deal are both optional; each line is priced independently.
type CartItem struct {
	ProductID uuid.UUID
	Price     decimal.Decimal
	Quantity  int
	Discount  *Discount
	Deal      string
}

// ItemBreakdown reports the aggregation result for one line, parallel
// to the input order.
type ItemBreakdown struct {
	ProductID    uuid.UUID
	ItemPrice    decimal.Decimal
	ItemDiscount decimal.Decimal
	ItemTotal    decimal.Decimal
	Applied      *AppliedDiscount
}

// CartTotals is the aggregate over a cart. Total is intentionally not
// floored at zero; only the single-line CalculateFinalPrice clamps.
type CartTotals struct {
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	Total         decimal.Decimal
	Breakdown     []ItemBreakdown
}
