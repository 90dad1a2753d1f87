package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenhollow/leafmarket-pricing/api/middleware"
	"github.com/greenhollow/leafmarket-pricing/api/responses"
	"github.com/greenhollow/leafmarket-pricing/api/validators"
	cartsvc "github.com/greenhollow/leafmarket-pricing/internal/cart"
	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
	pkgerrors "github.com/greenhollow/leafmarket-pricing/pkg/errors"
	"github.com/greenhollow/leafmarket-pricing/pkg/logger"
)

// UpsertCartItemRequest is the payload to add or refresh a cart line.
type UpsertCartItemRequest struct {
	SellerID    string          `json:"seller_id" validate:"required,uuid"`
	ProductName string          `json:"product_name" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	DealNote    *string         `json:"deal_note,omitempty"`
}

// CartFetch returns the caller's priced cart.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		dispensaryID, err := dispensaryIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.GetQuote(r.Context(), dispensaryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// CartItemUpsert adds or refreshes one product line.
func CartItemUpsert(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		dispensaryID, err := dispensaryIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload UpsertCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sellerID, err := uuid.Parse(payload.SellerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "seller_id must be a uuid"))
			return
		}
		category, err := enums.ParseProductCategory(payload.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
			return
		}

		quote, err := svc.UpsertItem(r.Context(), dispensaryID, cartsvc.UpsertItemInput{
			ProductID:   productID,
			SellerID:    sellerID,
			ProductName: payload.ProductName,
			Category:    category,
			UnitPrice:   payload.UnitPrice,
			Quantity:    payload.Quantity,
			DealNote:    payload.DealNote,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// CartItemRemove drops one product line from the cart.
func CartItemRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		dispensaryID, err := dispensaryIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.RemoveItem(r.Context(), dispensaryID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// CartClear empties the caller's cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		dispensaryID, err := dispensaryIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ClearCart(r.Context(), dispensaryID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

// dispensaryIDFromContext resolves the buyer business id the token
// carries. Buyers act for exactly one dispensary.
func dispensaryIDFromContext(r *http.Request) (uuid.UUID, error) {
	raw := middleware.BusinessIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "no business context")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "invalid business context")
	}
	return parsed, nil
}
