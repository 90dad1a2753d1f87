package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenhollow/leafmarket-pricing/api/middleware"
	"github.com/greenhollow/leafmarket-pricing/api/responses"
	"github.com/greenhollow/leafmarket-pricing/api/validators"
	"github.com/greenhollow/leafmarket-pricing/internal/discounts"
	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
	pkgerrors "github.com/greenhollow/leafmarket-pricing/pkg/errors"
	"github.com/greenhollow/leafmarket-pricing/pkg/logger"
)

// DiscountTierRequest is one tier inside a create or replace payload.
type DiscountTierRequest struct {
	DiscountValue   decimal.Decimal `json:"discount_value" validate:"required"`
	DiscountType    string          `json:"discount_type" validate:"required,oneof=percentage amount"`
	MinimumPurchase decimal.Decimal `json:"minimum_purchase"`
}

// CreateDiscountRequest is the payload to define a new discount.
type CreateDiscountRequest struct {
	Name          string                `json:"name" validate:"required,min=2,max=120"`
	AppliesToType string                `json:"applies_to_type" validate:"required,oneof=product category"`
	AppliesToID   string                `json:"applies_to_id" validate:"required"`
	Active        bool                  `json:"active"`
	Tiers         []DiscountTierRequest `json:"tiers" validate:"required,min=1,dive"`
}

// UpdateDiscountRequest carries optional mutations; absent fields stay.
type UpdateDiscountRequest struct {
	Name          *string                `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	AppliesToType *string                `json:"applies_to_type,omitempty" validate:"omitempty,oneof=product category"`
	AppliesToID   *string                `json:"applies_to_id,omitempty"`
	Active        *bool                  `json:"active,omitempty"`
	Tiers         *[]DiscountTierRequest `json:"tiers,omitempty" validate:"omitempty,min=1,dive"`
}

// DiscountCreate defines a discount for the caller's seller business.
func DiscountCreate(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discounts service unavailable"))
			return
		}

		sellerID, err := sellerIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload CreateDiscountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		scope, err := enums.ParseDiscountScope(payload.AppliesToType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid applies_to_type"))
			return
		}
		tiers, err := tierInputs(payload.Tiers)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateDiscount(r.Context(), sellerID, discounts.CreateDiscountInput{
			Name:          payload.Name,
			AppliesToType: scope,
			AppliesToID:   payload.AppliesToID,
			Active:        payload.Active,
			Tiers:         tiers,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// DiscountList returns every discount the caller's business owns.
func DiscountList(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discounts service unavailable"))
			return
		}

		sellerID, err := sellerIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, err := svc.ListDiscounts(r.Context(), sellerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}

// DiscountFetch returns one owned discount with its tiers.
func DiscountFetch(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discounts service unavailable"))
			return
		}

		sellerID, err := sellerIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		discountID, err := validators.ParseUUIDParam(r, "discountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := svc.GetDiscount(r.Context(), sellerID, discountID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found)
	}
}

// DiscountUpdate mutates an owned discount; tiers, when present, are
// replaced wholesale.
func DiscountUpdate(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discounts service unavailable"))
			return
		}

		sellerID, err := sellerIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		discountID, err := validators.ParseUUIDParam(r, "discountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload UpdateDiscountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := discounts.UpdateDiscountInput{
			Name:        payload.Name,
			AppliesToID: payload.AppliesToID,
			Active:      payload.Active,
		}
		if payload.AppliesToType != nil {
			scope, err := enums.ParseDiscountScope(*payload.AppliesToType)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid applies_to_type"))
				return
			}
			input.AppliesToType = &scope
		}
		if payload.Tiers != nil {
			tiers, err := tierInputs(*payload.Tiers)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Tiers = &tiers
		}

		updated, err := svc.UpdateDiscount(r.Context(), sellerID, discountID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// DiscountDelete removes an owned discount and its tiers.
func DiscountDelete(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discounts service unavailable"))
			return
		}

		sellerID, err := sellerIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		discountID, err := validators.ParseUUIDParam(r, "discountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteDiscount(r.Context(), sellerID, discountID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func tierInputs(raw []DiscountTierRequest) ([]discounts.TierInput, error) {
	tiers := make([]discounts.TierInput, 0, len(raw))
	for _, tier := range raw {
		valueType, err := enums.ParseDiscountValueType(tier.DiscountType)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid discount_type")
		}
		tiers = append(tiers, discounts.TierInput{
			DiscountValue:   tier.DiscountValue,
			DiscountType:    valueType,
			MinimumPurchase: tier.MinimumPurchase,
		})
	}
	return tiers, nil
}

// sellerIDFromContext resolves the seller business id from the token.
func sellerIDFromContext(r *http.Request) (uuid.UUID, error) {
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
