package enums

import "fmt"

// DiscountValueType distinguishes percentage reductions from absolute
// currency amounts.
type DiscountValueType string

const (
	DiscountValuePercentage DiscountValueType = "percentage"
	DiscountValueAmount     DiscountValueType = "amount"
)

var validDiscountValueTypes = []DiscountValueType{
	DiscountValuePercentage,
	DiscountValueAmount,
}

// String implements fmt.Stringer.
func (t DiscountValueType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known DiscountValueType.
func (t DiscountValueType) IsValid() bool {
	for _, candidate := range validDiscountValueTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseDiscountValueType converts raw input into a DiscountValueType.
func ParseDiscountValueType(value string) (DiscountValueType, error) {
	for _, candidate := range validDiscountValueTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid discount value type %q", value)
}

// DiscountScope describes what a discount definition attaches to.
type DiscountScope string

const (
	DiscountScopeProduct  DiscountScope = "product"
	DiscountScopeCategory DiscountScope = "category"
)

var validDiscountScopes = []DiscountScope{
	DiscountScopeProduct,
	DiscountScopeCategory,
}

// String implements fmt.Stringer.
func (s DiscountScope) String() string {
	return string(s)
}

// IsValid reports whether the value is a known DiscountScope.
func (s DiscountScope) IsValid() bool {
	for _, candidate := range validDiscountScopes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseDiscountScope converts raw input into a DiscountScope.
func ParseDiscountScope(value string) (DiscountScope, error) {
	for _, candidate := range validDiscountScopes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid discount scope %q", value)
}

// DiscountSource records which pricing mechanism produced an applied
// discount.
type DiscountSource string

const (
	DiscountSourceDiscount DiscountSource = "discount"
	DiscountSourceDeal     DiscountSource = "deal"
	DiscountSourceCombined DiscountSource = "combined"
)

var validDiscountSources = []DiscountSource{
	DiscountSourceDiscount,
	DiscountSourceDeal,
	DiscountSourceCombined,
}

// String implements fmt.Stringer.
func (s DiscountSource) String() string {
	return string(s)
}

// IsValid reports whether the value is a known DiscountSource.
func (s DiscountSource) IsValid() bool {
	for _, candidate := range validDiscountSources {
		if candidate == s {
			return true
		}
	}
	return false
}
