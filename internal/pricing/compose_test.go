package pricing

import (
	"testing"

	"github.com/google/uuid"

	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
)

func tieredDiscount(t *testing.T) *Discount {
	t.Helper()
	return &Discount{
		ID:          uuid.New(),
		Name:        "volume pricing",
		AppliesToID: "prod-1",
		Tiers: []DiscountTier{
			{Value: dec("5"), Type: enums.DiscountValuePercentage, MinimumPurchase: dec("500")},
		},
	}
}

func TestComposeNothingYieldsNil(t *testing.T) {
	t.Parallel()

	if applied := ComposeApplicable(dec("50"), 2, nil, ""); applied != nil {
		t.Fatalf("expected nil with no discount and no deal, got %+v", applied)
	}
	if applied := ComposeApplicable(dec("50"), 2, nil, "not a deal"); applied != nil {
		t.Fatalf("unparseable deal alone must yield nil, got %+v", applied)
	}
}

func TestComposeDealOnly(t *testing.T) {
	t.Parallel()

	applied := ComposeApplicable(dec("50"), 1, nil, "20%")
	if applied == nil {
		t.Fatal("expected deal-only result")
	}
	if applied.Source != enums.DiscountSourceDeal {
		t.Fatalf("unexpected source %s", applied.Source)
	}
	if !applied.Value.Equal(dec("10")) {
		t.Fatalf("expected 20%% of $50 = 10, got %s", applied.Value)
	}
	if !applied.Applicable {
		t.Fatal("deal-only result must be applicable")
	}
	if applied.DealValue == nil || !applied.DealValue.Equal(dec("10")) {
		t.Fatal("deal contribution must be populated")
	}
	if applied.DealDisplay != "20%" {
		t.Fatalf("unexpected deal display %q", applied.DealDisplay)
	}
}

func TestComposeDiscountOnly(t *testing.T) {
	t.Parallel()

	applied := ComposeApplicable(dec("100"), 6, tieredDiscount(t), "")
	if applied == nil {
		t.Fatal("expected discount result")
	}
	if applied.Source != enums.DiscountSourceDiscount {
		t.Fatalf("unexpected source %s", applied.Source)
	}
	if !applied.Value.Equal(dec("5")) {
		t.Fatalf("expected per-unit reduction 5, got %s", applied.Value)
	}
	if applied.DealValue != nil {
		t.Fatal("no deal contribution expected")
	}
}

func TestComposeStacksDiscountAndDeal(t *testing.T) {
	t.Parallel()

	applied := ComposeApplicable(dec("100"), 6, tieredDiscount(t), "$10")
	if applied == nil {
		t.Fatal("expected combined result")
	}
	if applied.Source != enums.DiscountSourceCombined {
		t.Fatalf("unexpected source %s", applied.Source)
	}
	if !applied.Value.Equal(dec("15")) {
		t.Fatalf("expected 5 + 10 = 15, got %s", applied.Value)
	}
	if applied.Display != "5% + $10.00" {
		t.Fatalf("unexpected display %q", applied.Display)
	}
	if applied.DealValue == nil || !applied.DealValue.Equal(dec("10")) {
		t.Fatal("deal contribution must report the deal alone")
	}
	if applied.DealDisplay != "$10.00" {
		t.Fatalf("unexpected deal display %q", applied.DealDisplay)
	}
}

func TestComposeDealSurvivesMissedThreshold(t *testing.T) {
	t.Parallel()

	// $100 x 2 = $200 misses the $500 tier, but the deal still applies.
	applied := ComposeApplicable(dec("100"), 2, tieredDiscount(t), "$10")
	if applied == nil {
		t.Fatal("expected deal result despite missed threshold")
	}
	if applied.Source != enums.DiscountSourceDeal {
		t.Fatalf("unexpected source %s", applied.Source)
	}
	if !applied.Value.Equal(dec("10")) {
		t.Fatalf("expected deal value 10, got %s", applied.Value)
	}
}

func TestCalculateFinalPriceFloorsAtZero(t *testing.T) {
	t.Parallel()

	applied := ComposeApplicable(dec("5"), 1, nil, "$20")
	if applied == nil {
		t.Fatal("expected deal result")
	}
	final := CalculateFinalPrice(dec("5"), applied)
	if !final.IsZero() {
		t.Fatalf("expected floor at zero, got %s", final)
	}

	if got := CalculateFinalPrice(dec("5"), nil); !got.Equal(dec("5")) {
		t.Fatalf("nil applied must return the price, got %s", got)
	}
}
