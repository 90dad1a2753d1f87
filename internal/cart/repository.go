package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenhollow/leafmarket-pricing/pkg/db/models"
)

// Repository manages persisted cart snapshots and their line items.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repository to the provided DB handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByDispensary loads the dispensary's snapshot with its items; nil
// when the dispensary has no cart yet.
func (r *Repository) FindByDispensary(ctx context.Context, dispensaryID uuid.UUID) (*models.CartSnapshot, error) {
	var snapshot models.CartSnapshot
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&snapshot, "dispensary_id = ?", dispensaryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}

// EnsureSnapshot returns the dispensary's snapshot, creating an empty
// one when none exists.
func (r *Repository) EnsureSnapshot(ctx context.Context, dispensaryID uuid.UUID) (*models.CartSnapshot, error) {
	snapshot, err := r.FindByDispensary(ctx, dispensaryID)
	if err != nil {
		return nil, err
	}
	if snapshot != nil {
		return snapshot, nil
	}

	snapshot = &models.CartSnapshot{
		ID:           uuid.New(),
		DispensaryID: dispensaryID,
	}
	if err := r.db.WithContext(ctx).Create(snapshot).Error; err != nil {
		return nil, err
	}
	return snapshot, nil
}

// UpsertItem inserts the line or refreshes the existing one for the
// same product.
func (r *Repository) UpsertItem(ctx context.Context, item *models.CartLineItem) error {
	tx := r.db.WithContext(ctx)

	var existing models.CartLineItem
	err := tx.First(&existing, "cart_id = ? AND product_id = ?", item.CartID, item.ProductID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(item).Error
		}
		return err
	}

	item.ID = existing.ID
	return tx.Model(&existing).
		Select("seller_id", "product_name", "category", "unit_price", "quantity", "deal_note").
		Updates(item).Error
}

// RemoveItem deletes one product line from the cart.
func (r *Repository) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartLineItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteSnapshot removes the cart and its lines.
func (r *Repository) DeleteSnapshot(ctx context.Context, dispensaryID uuid.UUID) error {
	tx := r.db.WithContext(ctx)

	var snapshot models.CartSnapshot
	if err := tx.First(&snapshot, "dispensary_id = ?", dispensaryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if err := tx.Where("cart_id = ?", snapshot.ID).Delete(&models.CartLineItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&snapshot).Error
}
