package promotions

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
)

// PromotionRecord is the parsed, typed form of a promotion the
// marketplace backend owns. String-encoded numeric fields from the wire
// are parsed exactly once, here.
type PromotionRecord struct {
	ID               string                  `json:"id"`
	Code             string                  `json:"code"`
	BusinessID       string                  `json:"business_id"`
	DiscountType     enums.DiscountValueType `json:"discount_type"`
	DiscountValue    decimal.Decimal         `json:"discount_value"`
	MinimumOrderType enums.MinimumOrderType  `json:"minimum_order_type"`
	MinimumAmount    decimal.Decimal         `json:"minimum_amount"`
	ValidFrom        *time.Time              `json:"valid_from,omitempty"`
	ValidTo          *time.Time              `json:"valid_to,omitempty"`
	Status           enums.PromotionStatus   `json:"status"`
}

// MinimumPurchase resolves the promotion's spend threshold; zero when
// no minimum applies.
func (r *PromotionRecord) MinimumPurchase() decimal.Decimal {
	if r.MinimumOrderType == enums.MinimumOrderNone {
		return decimal.Zero
	}
	return r.MinimumAmount
}

// AppliedPromotion is the evaluation result for one code against one
// cart subtotal. ErrorMessage is empty for business-rule
// non-applicability (threshold not reached); it carries a user-facing
// reason for every rejection.
type AppliedPromotion struct {
	Code            string          `json:"code"`
	DiscountValue   decimal.Decimal `json:"discount_value"`
	DiscountDisplay string          `json:"discount_display,omitempty"`
	IsApplicable    bool            `json:"is_applicable"`
	MinimumPurchase decimal.Decimal `json:"minimum_purchase"`
	ErrorMessage    string          `json:"error_message,omitempty"`
}

// wirePromotion is the raw shape the legacy endpoint returns. Numeric
// fields arrive string-encoded; dates arrive RFC3339 or date-only.
type wirePromotion struct {
	ID               string `json:"id"`
	Code             string `json:"code"`
	BusinessID       string `json:"business_id"`
	DiscountType     string `json:"discount_type"`
	DiscountValue    string `json:"discount_value"`
	MinimumOrderType string `json:"minimum_order_type"`
	MinimumAmount    string `json:"minimum_amount"`
	ValidFrom        string `json:"valid_from"`
	ValidTo          string `json:"valid_to"`
	Status           string `json:"status"`
}

func (w *wirePromotion) toRecord() (*PromotionRecord, error) {
	discountType, err := enums.ParseDiscountValueType(w.DiscountType)
	if err != nil {
		return nil, err
	}
	status, err := enums.ParsePromotionStatus(w.Status)
	if err != nil {
		return nil, err
	}

	minimumType := enums.MinimumOrderNone
	if w.MinimumOrderType != "" {
		minimumType, err = enums.ParseMinimumOrderType(w.MinimumOrderType)
		if err != nil {
			return nil, err
		}
	}

	value, err := parseWireDecimal(w.DiscountValue)
	if err != nil {
		return nil, fmt.Errorf("discount_value: %w", err)
	}

	minimum := decimal.Zero
	if minimumType != enums.MinimumOrderNone {
		minimum, err = parseWireDecimal(w.MinimumAmount)
		if err != nil {
			return nil, fmt.Errorf("minimum_amount: %w", err)
		}
	}

	record := &PromotionRecord{
		ID:               w.ID,
		Code:             w.Code,
		BusinessID:       w.BusinessID,
		DiscountType:     discountType,
		DiscountValue:    value,
		MinimumOrderType: minimumType,
		MinimumAmount:    minimum,
		Status:           status,
	}

	if record.ValidFrom, err = parseWireTime(w.ValidFrom); err != nil {
		return nil, fmt.Errorf("valid_from: %w", err)
	}
	if record.ValidTo, err = parseWireTime(w.ValidTo); err != nil {
		return nil, fmt.Errorf("valid_to: %w", err)
	}

	return record, nil
}

func parseWireDecimal(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(trimmed)
}

func parseWireTime(raw string) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return &parsed, nil
		}
	}
	return nil, fmt.Errorf("unrecognized timestamp %q", trimmed)
}
