package models

import (
	"time"

	"github.com/google/uuid"
)

// CartSnapshot is the persisted cart for one buyer dispensary. Totals
// are recomputed on every quote; the stored rows only capture what the
// buyer put in the cart.
type CartSnapshot struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DispensaryID uuid.UUID      `gorm:"column:dispensary_id;type:uuid;not null;uniqueIndex"`
	Items        []CartLineItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
