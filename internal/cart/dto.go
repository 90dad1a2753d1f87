package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenhollow/leafmarket-pricing/internal/pricing"
	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
)

// QuoteDTO is the priced view of a dispensary's cart.
type QuoteDTO struct {
	DispensaryID  uuid.UUID       `json:"dispensary_id"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	Total         decimal.Decimal `json:"total"`
	Items         []QuoteLineDTO  `json:"items"`
}

// QuoteLineDTO is one priced cart line.
type QuoteLineDTO struct {
	LineKey         string                `json:"line_key"`
	ProductID       uuid.UUID             `json:"product_id"`
	SellerID        uuid.UUID             `json:"seller_id"`
	ProductName     string                `json:"product_name"`
	Category        enums.ProductCategory `json:"category"`
	UnitPrice       decimal.Decimal       `json:"unit_price"`
	Quantity        int                   `json:"quantity"`
	ItemPrice       decimal.Decimal       `json:"item_price"`
	ItemDiscount    decimal.Decimal       `json:"item_discount"`
	ItemTotal       decimal.Decimal       `json:"item_total"`
	AppliedDiscount *AppliedDiscountDTO   `json:"applied_discount,omitempty"`
}

// AppliedDiscountDTO is the API projection of a composed discount.
type AppliedDiscountDTO struct {
	DiscountID      *uuid.UUID           `json:"discount_id,omitempty"`
	Value           decimal.Decimal      `json:"value"`
	Display         string               `json:"display"`
	MinimumPurchase decimal.Decimal      `json:"minimum_purchase"`
	Source          enums.DiscountSource `json:"source"`
	DealValue       *decimal.Decimal     `json:"deal_value,omitempty"`
	DealDisplay     string               `json:"deal_display,omitempty"`
}

func toAppliedDTO(applied *pricing.AppliedDiscount) *AppliedDiscountDTO {
	if applied == nil {
		return nil
	}
	return &AppliedDiscountDTO{
		DiscountID:      applied.DiscountID,
		Value:           applied.Value,
		Display:         applied.Display,
		MinimumPurchase: applied.MinimumPurchase,
		Source:          applied.Source,
		DealValue:       applied.DealValue,
		DealDisplay:     applied.DealDisplay,
	}
}
