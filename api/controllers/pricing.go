package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenhollow/leafmarket-pricing/api/responses"
	"github.com/greenhollow/leafmarket-pricing/api/validators"
	cartsvc "github.com/greenhollow/leafmarket-pricing/internal/cart"
	"github.com/greenhollow/leafmarket-pricing/internal/discounts"
	"github.com/greenhollow/leafmarket-pricing/internal/pricing"
	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
	pkgerrors "github.com/greenhollow/leafmarket-pricing/pkg/errors"
	"github.com/greenhollow/leafmarket-pricing/pkg/logger"
)

// QuoteRequest prices a set of lines without touching any stored cart.
type QuoteRequest struct {
	Items []QuoteItemRequest `json:"items" validate:"required,min=1,dive"`
}

// QuoteItemRequest is one line of a stateless quote.
type QuoteItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Category  string          `json:"category" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Deal      string          `json:"deal,omitempty"`
}

// QuoteResponse mirrors the aggregator output.
type QuoteResponse struct {
	Subtotal      decimal.Decimal     `json:"subtotal"`
	TotalDiscount decimal.Decimal     `json:"total_discount"`
	Total         decimal.Decimal     `json:"total"`
	Breakdown     []QuoteLineResponse `json:"breakdown"`
}

// QuoteLineResponse is one priced line of a stateless quote.
type QuoteLineResponse struct {
	ProductID    uuid.UUID                   `json:"product_id"`
	ItemPrice    decimal.Decimal             `json:"item_price"`
	ItemDiscount decimal.Decimal             `json:"item_discount"`
	ItemTotal    decimal.Decimal             `json:"item_total"`
	Applied      *cartsvc.AppliedDiscountDTO `json:"applied_discount,omitempty"`
}

func appliedResponse(applied *pricing.AppliedDiscount) *cartsvc.AppliedDiscountDTO {
	if applied == nil {
		return nil
	}
	return &cartsvc.AppliedDiscountDTO{
		DiscountID:      applied.DiscountID,
		Value:           applied.Value,
		Display:         applied.Display,
		MinimumPurchase: applied.MinimumPurchase,
		Source:          applied.Source,
		DealValue:       applied.DealValue,
		DealDisplay:     applied.DealDisplay,
	}
}

// PricingQuote prices posted items against the active discount
// definitions and any inline deals.
func PricingQuote(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount service unavailable"))
			return
		}

		var payload QuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]pricing.CartItem, 0, len(payload.Items))
		for _, line := range payload.Items {
			productID, err := uuid.Parse(line.ProductID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product_id must be a uuid"))
				return
			}
			category, err := enums.ParseProductCategory(line.Category)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			if line.UnitPrice.IsNegative() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unit_price cannot be negative"))
				return
			}

			discount, err := svc.ResolveForProduct(r.Context(), productID, category)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			items = append(items, pricing.CartItem{
				ProductID: productID,
				Price:     line.UnitPrice,
				Quantity:  line.Quantity,
				Discount:  discount,
				Deal:      line.Deal,
			})
		}

		totals := pricing.AggregateCart(items)

		resp := QuoteResponse{
			Subtotal:      totals.Subtotal,
			TotalDiscount: totals.TotalDiscount,
			Total:         totals.Total,
			Breakdown:     make([]QuoteLineResponse, 0, len(totals.Breakdown)),
		}
		for _, line := range totals.Breakdown {
			resp.Breakdown = append(resp.Breakdown, QuoteLineResponse{
				ProductID:    line.ProductID,
				ItemPrice:    line.ItemPrice,
				ItemDiscount: line.ItemDiscount,
				ItemTotal:    line.ItemTotal,
				Applied:      appliedResponse(line.Applied),
			})
		}

		responses.WriteSuccess(w, resp)
	}
}
