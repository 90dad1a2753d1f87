package discounts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenhollow/leafmarket-pricing/pkg/db/models"
	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
)

// Repository wires together discount persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create persists the discount with its tiers.
func (r *Repository) Create(ctx context.Context, discount *models.Discount) (*models.Discount, error) {
	if err := r.db.WithContext(ctx).Create(discount).Error; err != nil {
		return nil, err
	}
	return discount, nil
}

// FindByID loads the discount with tiers in defined order.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Discount, error) {
	var discount models.Discount
	if err := r.db.WithContext(ctx).
		Preload("Tiers", tierOrder).
		First(&discount, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &discount, nil
}

// ListByBusiness returns every discount owned by the business.
func (r *Repository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]models.Discount, error) {
	var out []models.Discount
	if err := r.db.WithContext(ctx).
		Preload("Tiers", tierOrder).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update saves mutated top-level columns of the discount.
func (r *Repository) Update(ctx context.Context, discount *models.Discount) (*models.Discount, error) {
	if err := r.db.WithContext(ctx).
		Model(discount).
		Select("name", "applies_to_type", "applies_to_id", "active").
		Updates(discount).Error; err != nil {
		return nil, err
	}
	return discount, nil
}

// ReplaceTiers swaps the full tier set of a discount.
func (r *Repository) ReplaceTiers(ctx context.Context, discountID uuid.UUID, tiers []models.DiscountTier) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("discount_id = ?", discountID).Delete(&models.DiscountTier{}).Error; err != nil {
		return err
	}
	if len(tiers) == 0 {
		return nil
	}
	return tx.Create(&tiers).Error
}

// Delete removes the discount; tiers cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Discount{}, "id = ?", id).Error
}

// FindActiveForTargets loads active discounts matching either the
// product id or its category. Both scopes may match; precedence is
// resolved by the service.
func (r *Repository) FindActiveForTargets(ctx context.Context, productID string, category enums.ProductCategory) ([]models.Discount, error) {
	var out []models.Discount
	if err := r.db.WithContext(ctx).
		Preload("Tiers", tierOrder).
		Where("active = ?", true).
		Where(
			r.db.Where("applies_to_type = ? AND applies_to_id = ?", enums.DiscountScopeProduct, productID).
				Or("applies_to_type = ? AND applies_to_id = ?", enums.DiscountScopeCategory, string(category)),
		).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func tierOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
