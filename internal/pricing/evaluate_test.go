package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
)

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEvaluateDiscountThreshold(t *testing.T) {
	t.Parallel()

	discount := &Discount{
		ID:          uuid.New(),
		Name:        "bulk flower",
		AppliesToID: "prod-1",
		Tiers: []DiscountTier{
			{Value: dec("5"), Type: enums.DiscountValuePercentage, MinimumPurchase: dec("500")},
		},
	}

	// $100 x 6 = $600 line value clears the $500 threshold.
	applied := EvaluateDiscount(dec("100"), 6, discount)
	if applied == nil {
		t.Fatal("expected tier to apply")
	}
	if !applied.Value.Equal(dec("5")) {
		t.Fatalf("expected per-unit reduction 5, got %s", applied.Value)
	}
	if applied.Display != "5%" {
		t.Fatalf("unexpected display %q", applied.Display)
	}
	if applied.Source != enums.DiscountSourceDiscount {
		t.Fatalf("unexpected source %s", applied.Source)
	}
	if !applied.Applicable {
		t.Fatal("qualifying tier must be applicable")
	}
	if applied.DiscountID == nil || *applied.DiscountID != discount.ID {
		t.Fatal("expected traceability back to the discount")
	}

	// $100 x 4 = $400 misses the threshold entirely.
	if applied := EvaluateDiscount(dec("100"), 4, discount); applied != nil {
		t.Fatalf("expected nil below threshold, got %+v", applied)
	}
}

func TestEvaluateDiscountPicksHighestReduction(t *testing.T) {
	t.Parallel()

	discount := &Discount{
		ID:          uuid.New(),
		AppliesToID: "prod-2",
		Tiers: []DiscountTier{
			{Value: dec("5"), Type: enums.DiscountValuePercentage, MinimumPurchase: dec("0")},
			{Value: dec("12"), Type: enums.DiscountValueAmount, MinimumPurchase: dec("200")},
			{Value: dec("10"), Type: enums.DiscountValuePercentage, MinimumPurchase: dec("100")},
		},
	}

	// At $100 x 3: 5% = $5, $12 flat, 10% = $10. Flat $12 wins.
	applied := EvaluateDiscount(dec("100"), 3, discount)
	if applied == nil {
		t.Fatal("expected a qualifying tier")
	}
	if !applied.Value.Equal(dec("12")) {
		t.Fatalf("expected best reduction 12, got %s", applied.Value)
	}
	if applied.Display != "$12.00" {
		t.Fatalf("unexpected display %q", applied.Display)
	}
}

func TestEvaluateDiscountStableTieBreak(t *testing.T) {
	t.Parallel()

	discount := &Discount{
		ID:          uuid.New(),
		AppliesToID: "prod-3",
		Tiers: []DiscountTier{
			{Value: dec("10"), Type: enums.DiscountValuePercentage, MinimumPurchase: dec("0")},
			{Value: dec("10"), Type: enums.DiscountValueAmount, MinimumPurchase: dec("0")},
		},
	}

	// Both tiers reduce $100 by $10; the first-defined tier wins.
	applied := EvaluateDiscount(dec("100"), 1, discount)
	if applied == nil {
		t.Fatal("expected a qualifying tier")
	}
	if applied.Display != "10%" {
		t.Fatalf("expected first tier on tie, got display %q", applied.Display)
	}
}

func TestEvaluateDiscountEmptyOrNil(t *testing.T) {
	t.Parallel()

	if applied := EvaluateDiscount(dec("10"), 1, nil); applied != nil {
		t.Fatal("nil discount must yield nil")
	}
	if applied := EvaluateDiscount(dec("10"), 1, &Discount{ID: uuid.New()}); applied != nil {
		t.Fatal("discount without tiers must yield nil")
	}
}
