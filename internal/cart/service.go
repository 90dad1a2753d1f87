package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/greenhollow/leafmarket-pricing/internal/pricing"
	"github.com/greenhollow/leafmarket-pricing/pkg/db/models"
	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
	pkgerrors "github.com/greenhollow/leafmarket-pricing/pkg/errors"
)

type discountResolver interface {
	ResolveForProduct(ctx context.Context, productID uuid.UUID, category enums.ProductCategory) (*pricing.Discount, error)
}

// ResolverFunc adapts a function to the discountResolver interface.
type ResolverFunc func(ctx context.Context, productID uuid.UUID, category enums.ProductCategory) (*pricing.Discount, error)

// ResolveForProduct implements discountResolver.
func (f ResolverFunc) ResolveForProduct(ctx context.Context, productID uuid.UUID, category enums.ProductCategory) (*pricing.Discount, error) {
	return f(ctx, productID, category)
}

// Service exposes cart persistence plus the priced quote the
// storefront renders.
type Service interface {
	GetQuote(ctx context.Context, dispensaryID uuid.UUID) (*QuoteDTO, error)
	UpsertItem(ctx context.Context, dispensaryID uuid.UUID, input UpsertItemInput) (*QuoteDTO, error)
	RemoveItem(ctx context.Context, dispensaryID, productID uuid.UUID) (*QuoteDTO, error)
	ClearCart(ctx context.Context, dispensaryID uuid.UUID) error
}

// UpsertItemInput captures one product line to add or refresh.
type UpsertItemInput struct {
	ProductID   uuid.UUID
	SellerID    uuid.UUID
	ProductName string
	Category    enums.ProductCategory
	UnitPrice   decimal.Decimal
	Quantity    int
	DealNote    *string
}

// service implements the cart service.
type service struct {
	repo      *Repository
	discounts discountResolver
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo *Repository, discounts discountResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if discounts == nil {
		return nil, fmt.Errorf("discount resolver required")
	}
	return &service{repo: repo, discounts: discounts}, nil
}

// GetQuote loads the snapshot, attaches active discounts, and prices
// every line. An absent cart quotes as empty rather than erroring.
func (s *service) GetQuote(ctx context.Context, dispensaryID uuid.UUID) (*QuoteDTO, error) {
	if dispensaryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dispensary id is required")
	}

	snapshot, err := s.repo.FindByDispensary(ctx, dispensaryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	if snapshot == nil {
		return &QuoteDTO{DispensaryID: dispensaryID, Items: []QuoteLineDTO{}}, nil
	}
	return s.quote(ctx, snapshot)
}

// UpsertItem adds or refreshes one line, then reprices the cart.
func (s *service) UpsertItem(ctx context.Context, dispensaryID uuid.UUID, input UpsertItemInput) (*QuoteDTO, error) {
	if dispensaryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dispensary id is required")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.UnitPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
	}

	snapshot, err := s.repo.EnsureSnapshot(ctx, dispensaryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "ensure cart")
	}

	item := &models.CartLineItem{
		ID:          uuid.New(),
		CartID:      snapshot.ID,
		ProductID:   input.ProductID,
		SellerID:    input.SellerID,
		ProductName: input.ProductName,
		Category:    input.Category,
		UnitPrice:   input.UnitPrice,
		Quantity:    input.Quantity,
		DealNote:    input.DealNote,
	}
	if err := s.repo.UpsertItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upsert cart item")
	}

	return s.GetQuote(ctx, dispensaryID)
}

// RemoveItem drops one line and reprices the remainder.
func (s *service) RemoveItem(ctx context.Context, dispensaryID, productID uuid.UUID) (*QuoteDTO, error) {
	snapshot, err := s.repo.FindByDispensary(ctx, dispensaryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	if snapshot == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart is empty")
	}

	if err := s.repo.RemoveItem(ctx, snapshot.ID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart item")
	}

	return s.GetQuote(ctx, dispensaryID)
}

// ClearCart removes the snapshot entirely. Clearing an absent cart is a
// no-op.
func (s *service) ClearCart(ctx context.Context, dispensaryID uuid.UUID) error {
	if err := s.repo.DeleteSnapshot(ctx, dispensaryID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}

func (s *service) quote(ctx context.Context, snapshot *models.CartSnapshot) (*QuoteDTO, error) {
	items := make([]pricing.CartItem, 0, len(snapshot.Items))
	for _, line := range snapshot.Items {
		discount, err := s.discounts.ResolveForProduct(ctx, line.ProductID, line.Category)
		if err != nil {
			return nil, err
		}

		deal := ""
		if line.DealNote != nil {
			deal = *line.DealNote
		}

		items = append(items, pricing.CartItem{
			ProductID: line.ProductID,
			Price:     line.UnitPrice,
			Quantity:  line.Quantity,
			Discount:  discount,
			Deal:      deal,
		})
	}

	totals := pricing.AggregateCart(items)

	quote := &QuoteDTO{
		DispensaryID:  snapshot.DispensaryID,
		Subtotal:      totals.Subtotal,
		TotalDiscount: totals.TotalDiscount,
		Total:         totals.Total,
		Items:         make([]QuoteLineDTO, 0, len(snapshot.Items)),
	}

	for i, line := range snapshot.Items {
		breakdown := totals.Breakdown[i]
		quote.Items = append(quote.Items, QuoteLineDTO{
			LineKey:         line.LineKey(snapshot.DispensaryID),
			ProductID:       line.ProductID,
			SellerID:        line.SellerID,
			ProductName:     line.ProductName,
			Category:        line.Category,
			UnitPrice:       line.UnitPrice,
			Quantity:        line.Quantity,
			ItemPrice:       breakdown.ItemPrice,
			ItemDiscount:    breakdown.ItemDiscount,
			ItemTotal:       breakdown.ItemTotal,
			AppliedDiscount: toAppliedDTO(breakdown.Applied),
		})
	}

	return quote, nil
}
