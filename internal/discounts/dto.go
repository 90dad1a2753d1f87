package discounts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenhollow/leafmarket-pricing/internal/pricing"
	"github.com/greenhollow/leafmarket-pricing/pkg/db/models"
	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
)

// DiscountDTO is the API projection of a discount.
type DiscountDTO struct {
	ID            uuid.UUID           `json:"id"`
	BusinessID    uuid.UUID           `json:"business_id"`
	Name          string              `json:"name"`
	AppliesToType enums.DiscountScope `json:"applies_to_type"`
	AppliesToID   string              `json:"applies_to_id"`
	Active        bool                `json:"active"`
	Tiers         []TierDTO           `json:"tiers"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// TierDTO is the API projection of a discount tier.
type TierDTO struct {
	ID              uuid.UUID               `json:"id"`
	DiscountValue   decimal.Decimal         `json:"discount_value"`
	DiscountType    enums.DiscountValueType `json:"discount_type"`
	MinimumPurchase decimal.Decimal         `json:"minimum_purchase"`
}

func toDTO(m *models.Discount) *DiscountDTO {
	dto := &DiscountDTO{
		ID:            m.ID,
		BusinessID:    m.BusinessID,
		Name:          m.Name,
		AppliesToType: m.AppliesToType,
		AppliesToID:   m.AppliesToID,
		Active:        m.Active,
		Tiers:         make([]TierDTO, 0, len(m.Tiers)),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	for _, tier := range m.Tiers {
		dto.Tiers = append(dto.Tiers, TierDTO{
			ID:              tier.ID,
			DiscountValue:   tier.DiscountValue,
			DiscountType:    tier.DiscountType,
			MinimumPurchase: tier.MinimumPurchase,
		})
	}
	return dto
}

// ToPricing converts a stored discount into the evaluator's shape,
// preserving tier order.
func ToPricing(m *models.Discount) *pricing.Discount {
	if m == nil {
		return nil
	}
	out := &pricing.Discount{
		ID:            m.ID,
		Name:          m.Name,
		AppliesToType: m.AppliesToType,
		AppliesToID:   m.AppliesToID,
		Tiers:         make([]pricing.DiscountTier, 0, len(m.Tiers)),
	}
	for _, tier := range m.Tiers {
		out.Tiers = append(out.Tiers, pricing.DiscountTier{
			Value:           tier.DiscountValue,
			Type:            tier.DiscountType,
			MinimumPurchase: tier.MinimumPurchase,
		})
	}
	return out
}
