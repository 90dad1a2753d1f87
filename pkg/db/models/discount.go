package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
)

// Discount is a seller-owned collection of pricing tiers scoped to a
// single product or a whole category.
type Discount struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID    uuid.UUID           `gorm:"column:business_id;type:uuid;not null"`
	Name          string              `gorm:"column:name;not null"`
	AppliesToType enums.DiscountScope `gorm:"column:applies_to_type;not null"`
	AppliesToID   string              `gorm:"column:applies_to_id;not null"`
	Active        bool                `gorm:"column:active;not null;default:true"`
	Tiers         []DiscountTier      `gorm:"foreignKey:DiscountID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
