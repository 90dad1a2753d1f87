package enums

import "fmt"

// PromotionStatus mirrors the lifecycle states the marketplace backend
// reports for a promotion code.
type PromotionStatus string

const (
	PromotionStatusActive   PromotionStatus = "active"
	PromotionStatusInactive PromotionStatus = "inactive"
	PromotionStatusExpired  PromotionStatus = "expired"
)

var validPromotionStatuses = []PromotionStatus{
	PromotionStatusActive,
	PromotionStatusInactive,
	PromotionStatusExpired,
}

// String implements fmt.Stringer.
func (s PromotionStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known PromotionStatus.
func (s PromotionStatus) IsValid() bool {
	for _, candidate := range validPromotionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParsePromotionStatus converts raw input into a PromotionStatus.
func ParsePromotionStatus(value string) (PromotionStatus, error) {
	for _, candidate := range validPromotionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid promotion status %q", value)
}

// MinimumOrderType describes how a promotion's minimum threshold is
// expressed.
type MinimumOrderType string

const (
	MinimumOrderNone     MinimumOrderType = "no_minimum"
	MinimumOrderAmount   MinimumOrderType = "amount"
	MinimumOrderProducts MinimumOrderType = "products"
)

var validMinimumOrderTypes = []MinimumOrderType{
	MinimumOrderNone,
	MinimumOrderAmount,
	MinimumOrderProducts,
}

// String implements fmt.Stringer.
func (t MinimumOrderType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known MinimumOrderType.
func (t MinimumOrderType) IsValid() bool {
	for _, candidate := range validMinimumOrderTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseMinimumOrderType converts raw input into a MinimumOrderType.
func ParseMinimumOrderType(value string) (MinimumOrderType, error) {
	for _, candidate := range validMinimumOrderTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid minimum order type %q", value)
}
