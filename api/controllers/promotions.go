package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/greenhollow/leafmarket-pricing/api/middleware"
	"github.com/greenhollow/leafmarket-pricing/api/responses"
	"github.com/greenhollow/leafmarket-pricing/api/validators"
	"github.com/greenhollow/leafmarket-pricing/internal/promotions"
	pkgerrors "github.com/greenhollow/leafmarket-pricing/pkg/errors"
	"github.com/greenhollow/leafmarket-pricing/pkg/logger"
)

// ValidatePromotionRequest is the payload to check a promotion code
// against the caller's cart subtotal.
type ValidatePromotionRequest struct {
	Code         string          `json:"code" validate:"required"`
	CartSubtotal decimal.Decimal `json:"cart_subtotal"`
}

// PromotionValidate checks a code and always answers 200: rejected
// codes come back as an inapplicable result, not an API error.
func PromotionValidate(svc promotions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "promotions service unavailable"))
			return
		}

		var payload ValidatePromotionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.CartSubtotal.IsNegative() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart_subtotal must not be negative"))
			return
		}

		businessID := middleware.BusinessIDFromContext(r.Context())
		applied := svc.Validate(r.Context(), payload.Code, payload.CartSubtotal, businessID)
		responses.WriteSuccess(w, applied)
	}
}
