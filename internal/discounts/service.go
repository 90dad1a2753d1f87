package discounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/greenhollow/leafmarket-pricing/internal/pricing"
	"github.com/greenhollow/leafmarket-pricing/pkg/db"
	"github.com/greenhollow/leafmarket-pricing/pkg/db/models"
	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
	pkgerrors "github.com/greenhollow/leafmarket-pricing/pkg/errors"
)

// Service exposes seller discount management and the lookup path the
// pricing engine consumes.
type Service interface {
	CreateDiscount(ctx context.Context, businessID uuid.UUID, input CreateDiscountInput) (*DiscountDTO, error)
	UpdateDiscount(ctx context.Context, businessID, discountID uuid.UUID, input UpdateDiscountInput) (*DiscountDTO, error)
	DeleteDiscount(ctx context.Context, businessID, discountID uuid.UUID) error
	GetDiscount(ctx context.Context, businessID, discountID uuid.UUID) (*DiscountDTO, error)
	ListDiscounts(ctx context.Context, businessID uuid.UUID) ([]DiscountDTO, error)
	ResolveForProduct(ctx context.Context, productID uuid.UUID, category enums.ProductCategory) (*pricing.Discount, error)
}

// CreateDiscountInput holds the validated payload to create a discount.
type CreateDiscountInput struct {
	Name          string
	AppliesToType enums.DiscountScope
	AppliesToID   string
	Active        bool
	Tiers         []TierInput
}

// TierInput defines one pricing tier of a discount.
type TierInput struct {
	DiscountValue   decimal.Decimal
	DiscountType    enums.DiscountValueType
	MinimumPurchase decimal.Decimal
}

// UpdateDiscountInput holds optional mutation values for a discount.
type UpdateDiscountInput struct {
	Name          *string
	AppliesToType *enums.DiscountScope
	AppliesToID   *string
	Active        *bool
	Tiers         *[]TierInput
}

// service implements the discount service.
type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a discount service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("discount repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// CreateDiscount creates the discount with its tiers.
func (s *service) CreateDiscount(ctx context.Context, businessID uuid.UUID, input CreateDiscountInput) (*DiscountDTO, error) {
	if err := validateTiers(input.Tiers); err != nil {
		return nil, err
	}
	if !input.AppliesToType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "applies_to_type must be product or category")
	}
	if input.AppliesToID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "applies_to_id is required")
	}

	discount := &models.Discount{
		ID:            uuid.New(),
		BusinessID:    businessID,
		Name:          input.Name,
		AppliesToType: input.AppliesToType,
		AppliesToID:   input.AppliesToID,
		Active:        input.Active,
		Tiers:         buildTiers(input.Tiers),
	}

	created, err := s.repo.Create(ctx, discount)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create discount")
	}
	return toDTO(created), nil
}

// UpdateDiscount mutates the discount in a single transaction,
// replacing the tier set when tiers are supplied.
func (s *service) UpdateDiscount(ctx context.Context, businessID, discountID uuid.UUID, input UpdateDiscountInput) (*DiscountDTO, error) {
	if input.Tiers != nil {
		if err := validateTiers(*input.Tiers); err != nil {
			return nil, err
		}
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		discount, err := s.loadOwned(ctx, repo, businessID, discountID)
		if err != nil {
			return err
		}

		if input.Name != nil {
			discount.Name = *input.Name
		}
		if input.AppliesToType != nil {
			if !input.AppliesToType.IsValid() {
				return pkgerrors.New(pkgerrors.CodeValidation, "applies_to_type must be product or category")
			}
			discount.AppliesToType = *input.AppliesToType
		}
		if input.AppliesToID != nil {
			discount.AppliesToID = *input.AppliesToID
		}
		if input.Active != nil {
			discount.Active = *input.Active
		}

		if _, err := repo.Update(ctx, discount); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update discount")
		}
		if input.Tiers != nil {
			if err := repo.ReplaceTiers(ctx, discountID, buildTiersFor(discountID, *input.Tiers)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replace discount tiers")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetDiscount(ctx, businessID, discountID)
}

// DeleteDiscount removes a discount the business owns.
func (s *service) DeleteDiscount(ctx context.Context, businessID, discountID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, s.repo, businessID, discountID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, discountID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete discount")
	}
	return nil
}

// GetDiscount loads one discount the business owns.
func (s *service) GetDiscount(ctx context.Context, businessID, discountID uuid.UUID) (*DiscountDTO, error) {
	discount, err := s.loadOwned(ctx, s.repo, businessID, discountID)
	if err != nil {
		return nil, err
	}
	return toDTO(discount), nil
}

// ListDiscounts returns the business's discounts, newest first.
func (s *service) ListDiscounts(ctx context.Context, businessID uuid.UUID) ([]DiscountDTO, error) {
	records, err := s.repo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list discounts")
	}
	out := make([]DiscountDTO, 0, len(records))
	for i := range records {
		out = append(out, *toDTO(&records[i]))
	}
	return out, nil
}

// ResolveForProduct picks the discount the pricing engine should apply
// to a product line. A product-scoped discount always beats a
// category-scoped one; nil means no active discount matches.
func (s *service) ResolveForProduct(ctx context.Context, productID uuid.UUID, category enums.ProductCategory) (*pricing.Discount, error) {
	matches, err := s.repo.FindActiveForTargets(ctx, productID.String(), category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve product discounts")
	}

	var categoryMatch *models.Discount
	for i := range matches {
		match := &matches[i]
		if match.AppliesToType == enums.DiscountScopeProduct {
			return ToPricing(match), nil
		}
		if categoryMatch == nil {
			categoryMatch = match
		}
	}
	return ToPricing(categoryMatch), nil
}

func (s *service) loadOwned(ctx context.Context, repo *Repository, businessID, discountID uuid.UUID) (*models.Discount, error) {
	discount, err := repo.FindByID(ctx, discountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "discount not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load discount")
	}
	if discount.BusinessID != businessID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "discount belongs to another business")
	}
	return discount, nil
}

func validateTiers(tiers []TierInput) error {
	if len(tiers) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one tier is required")
	}
	for i, tier := range tiers {
		if !tier.DiscountType.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("tier %d: discount_type must be percentage or amount", i))
		}
		if !tier.DiscountValue.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("tier %d: discount_value must be positive", i))
		}
		if tier.DiscountType == enums.DiscountValuePercentage && tier.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("tier %d: percentage cannot exceed 100", i))
		}
		if tier.MinimumPurchase.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("tier %d: minimum_purchase cannot be negative", i))
		}
	}
	return nil
}

func buildTiers(inputs []TierInput) []models.DiscountTier {
	tiers := make([]models.DiscountTier, 0, len(inputs))
	for i, input := range inputs {
		tiers = append(tiers, models.DiscountTier{
			ID:              uuid.New(),
			DiscountValue:   input.DiscountValue,
			DiscountType:    input.DiscountType,
			MinimumPurchase: input.MinimumPurchase,
			Position:        i,
		})
	}
	return tiers
}

func buildTiersFor(discountID uuid.UUID, inputs []TierInput) []models.DiscountTier {
	tiers := buildTiers(inputs)
	for i := range tiers {
		tiers[i].DiscountID = discountID
	}
	return tiers
}
