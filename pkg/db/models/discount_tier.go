package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
)

// DiscountTier is one pricing rule inside a Discount. The minimum
// purchase threshold applies to the cart-line value (unit price times
// quantity).
type DiscountTier struct {
	ID              uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DiscountID      uuid.UUID               `gorm:"column:discount_id;type:uuid;not null"`
	DiscountValue   decimal.Decimal         `gorm:"column:discount_value;type:numeric(12,2);not null"`
	DiscountType    enums.DiscountValueType `gorm:"column:discount_type;not null"`
	MinimumPurchase decimal.Decimal         `gorm:"column:minimum_purchase;type:numeric(12,2);not null;default:0"`
	Position        int                     `gorm:"column:position;not null;default:0"`
	CreatedAt       time.Time               `gorm:"column:created_at;autoCreateTime"`
}
