package discounts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/greenhollow/leafmarket-pricing/pkg/db/models"
	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
)

func mustCreateDiscount(t *testing.T, conn *gorm.DB, businessID uuid.UUID, scope enums.DiscountScope, target string, active bool) *models.Discount {
	t.Helper()
	discount := &models.Discount{
		ID:            uuid.New(),
		BusinessID:    businessID,
		Name:          "tiered pricing",
		AppliesToType: scope,
		AppliesToID:   target,
		Active:        active,
		Tiers: []models.DiscountTier{
			{
				ID:              uuid.New(),
				DiscountValue:   decimal.NewFromInt(5),
				DiscountType:    enums.DiscountValuePercentage,
				MinimumPurchase: decimal.NewFromInt(500),
				Position:        0,
			},
			{
				ID:              uuid.New(),
				DiscountValue:   decimal.NewFromInt(10),
				DiscountType:    enums.DiscountValuePercentage,
				MinimumPurchase: decimal.NewFromInt(1000),
				Position:        1,
			},
		},
	}
	require.NoError(t, conn.Create(discount).Error)
	return discount
}

func TestRepositoryFindByIDPreservesTierOrder(t *testing.T) {
	conn := setupDiscountsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created := mustCreateDiscount(t, conn, uuid.New(), enums.DiscountScopeProduct, uuid.NewString(), true)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, found.Tiers, 2)
	assert.Equal(t, 0, found.Tiers[0].Position)
	assert.Equal(t, 1, found.Tiers[1].Position)
	assert.True(t, found.Tiers[0].MinimumPurchase.Equal(decimal.NewFromInt(500)))
}

func TestRepositoryReplaceTiers(t *testing.T) {
	conn := setupDiscountsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created := mustCreateDiscount(t, conn, uuid.New(), enums.DiscountScopeProduct, uuid.NewString(), true)

	err := repo.ReplaceTiers(ctx, created.ID, []models.DiscountTier{
		{
			ID:              uuid.New(),
			DiscountID:      created.ID,
			DiscountValue:   decimal.NewFromInt(15),
			DiscountType:    enums.DiscountValueAmount,
			MinimumPurchase: decimal.NewFromInt(200),
			Position:        0,
		},
	})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, found.Tiers, 1)
	assert.Equal(t, enums.DiscountValueAmount, found.Tiers[0].DiscountType)
}

func TestRepositoryDeleteCascadesTiers(t *testing.T) {
	conn := setupDiscountsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created := mustCreateDiscount(t, conn, uuid.New(), enums.DiscountScopeProduct, uuid.NewString(), true)

	require.NoError(t, repo.Delete(ctx, created.ID))

	var tierCount int64
	require.NoError(t, conn.Model(&models.DiscountTier{}).Where("discount_id = ?", created.ID).Count(&tierCount).Error)
	assert.Zero(t, tierCount)
}

func TestRepositoryFindActiveForTargets(t *testing.T) {
	conn := setupDiscountsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	businessID := uuid.New()
	productID := uuid.NewString()

	mustCreateDiscount(t, conn, businessID, enums.DiscountScopeProduct, productID, true)
	mustCreateDiscount(t, conn, businessID, enums.DiscountScopeCategory, enums.ProductCategoryFlower.String(), true)
	mustCreateDiscount(t, conn, businessID, enums.DiscountScopeProduct, productID, false)
	mustCreateDiscount(t, conn, businessID, enums.DiscountScopeProduct, uuid.NewString(), true)

	matches, err := repo.FindActiveForTargets(ctx, productID, enums.ProductCategoryFlower)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	for _, match := range matches {
		assert.True(t, match.Active)
	}
}
