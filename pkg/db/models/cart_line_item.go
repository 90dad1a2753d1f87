package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
)

// CartLineItem is one product line inside a CartSnapshot.
type CartLineItem struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID       uuid.UUID             `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:idx_cart_product"`
	ProductID    uuid.UUID             `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_cart_product"`
	SellerID     uuid.UUID             `gorm:"column:seller_id;type:uuid;not null"`
	ProductName  string                `gorm:"column:product_name;not null"`
	Category     enums.ProductCategory `gorm:"column:category;not null"`
	UnitPrice    decimal.Decimal       `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity     int                   `gorm:"column:quantity;not null"`
	DealNote     *string               `gorm:"column:deal_note"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// LineKey returns the dispensary-scoped cart key the storefront uses to
// address a line ("{dispensaryId}_{productId}").
func (i CartLineItem) LineKey(dispensaryID uuid.UUID) string {
	return fmt.Sprintf("%s_%s", dispensaryID, i.ProductID)
}
