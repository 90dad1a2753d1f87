package promotions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenhollow/leafmarket-pricing/internal/pricing"
	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
	"github.com/greenhollow/leafmarket-pricing/pkg/logger"
	"github.com/greenhollow/leafmarket-pricing/pkg/metrics"
)

// Validation outcome labels reported to prometheus.
const (
	OutcomeApplied        = "applied"
	OutcomeRejectedFormat = "rejected_format"
	OutcomeRejectedRemote = "rejected_remote"
	OutcomeNotFound       = "not_found"
	OutcomeInactive       = "inactive"
	OutcomeExpired        = "expired"
	OutcomeBelowMinimum   = "below_minimum"
)

const (
	msgFormat       = "Promotion code format is invalid."
	msgConnectivity = "Could not validate the promotion code. Please try again."
	msgNotFound     = "Promotion code is invalid or expired."
	msgInactive     = "Promotion code is no longer active."
	msgExpired      = "Promotion code has expired."
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

// Service validates user-entered promotion codes. Every path returns a
// usable AppliedPromotion; business-rule failures are results, not
// errors.
type Service interface {
	Validate(ctx context.Context, code string, cartSubtotal decimal.Decimal, businessID string) *AppliedPromotion
}

type recordLookup interface {
	Lookup(ctx context.Context, code string, cartSubtotal decimal.Decimal, businessID string) (*PromotionRecord, error)
}

// LookupFunc adapts a function to the recordLookup interface.
type LookupFunc func(ctx context.Context, code string, cartSubtotal decimal.Decimal, businessID string) (*PromotionRecord, error)

// Lookup implements recordLookup.
func (f LookupFunc) Lookup(ctx context.Context, code string, cartSubtotal decimal.Decimal, businessID string) (*PromotionRecord, error) {
	return f(ctx, code, cartSubtotal, businessID)
}

type recordCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	PromotionKey(code string) string
}

// service implements the promotion validator.
type service struct {
	lookup   recordLookup
	cache    recordCache
	cacheTTL time.Duration
	metrics  *metrics.PromotionMetrics
	logger   *logger.Logger
	now      func() time.Time
}

// NewService constructs a promotion validation service. Cache, metrics,
// and logger are optional.
func NewService(lookup recordLookup, cache recordCache, cacheTTL time.Duration, promMetrics *metrics.PromotionMetrics, logg *logger.Logger) (Service, error) {
	if lookup == nil {
		return nil, fmt.Errorf("promotion lookup required")
	}
	return &service{
		lookup:   lookup,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  promMetrics,
		logger:   logg,
		now:      time.Now,
	}, nil
}

// Validate runs the format, existence, status, expiry, and threshold
// checks in order. A threshold miss is not an error: the result is
// complete, carries the computed discount, and has no error message so
// the storefront can render "spend $X more".
func (s *service) Validate(ctx context.Context, code string, cartSubtotal decimal.Decimal, businessID string) *AppliedPromotion {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	if !codePattern.MatchString(normalized) {
		s.metrics.IncOutcome(OutcomeRejectedFormat)
		return rejected(normalized, msgFormat)
	}

	record, err := s.fetchRecord(ctx, normalized, cartSubtotal, businessID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.metrics.IncOutcome(OutcomeNotFound)
			return rejected(normalized, msgNotFound)
		}
		if s.logger != nil {
			s.logger.Error(s.logger.WithPromotionCode(ctx, normalized), "promotion lookup failed", err)
		}
		s.metrics.IncOutcome(OutcomeRejectedRemote)
		return rejected(normalized, msgConnectivity)
	}

	if record.Status != enums.PromotionStatusActive {
		s.metrics.IncOutcome(OutcomeInactive)
		result := rejected(normalized, msgInactive)
		result.DiscountValue = decimal.Zero
		return result
	}

	if record.ValidTo != nil && record.ValidTo.Before(s.now()) {
		s.metrics.IncOutcome(OutcomeExpired)
		return rejected(normalized, msgExpired)
	}

	minimum := record.MinimumPurchase()
	discount := promotionDiscount(record, cartSubtotal)

	result := &AppliedPromotion{
		Code:            normalized,
		DiscountValue:   discount,
		DiscountDisplay: pricing.FormatValue(record.DiscountValue, record.DiscountType),
		MinimumPurchase: minimum,
		IsApplicable:    cartSubtotal.GreaterThanOrEqual(minimum),
	}

	if result.IsApplicable {
		s.metrics.IncOutcome(OutcomeApplied)
	} else {
		s.metrics.IncOutcome(OutcomeBelowMinimum)
	}
	return result
}

// fetchRecord serves the remote promotion record, preferring the redis
// copy. Only the record is cached; applicability is always recomputed
// against the caller's subtotal.
func (s *service) fetchRecord(ctx context.Context, code string, cartSubtotal decimal.Decimal, businessID string) (*PromotionRecord, error) {
	if s.cache != nil {
		key := s.cache.PromotionKey(code)
		if raw, err := s.cache.Get(ctx, key); err == nil && raw != "" {
			var cached PromotionRecord
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
			// Unreadable cache entries fall through to the backend.
		}
	}

	start := s.now()
	record, err := s.lookup.Lookup(ctx, code, cartSubtotal, businessID)
	s.metrics.ObserveLookup(lookupResult(err), s.now().Sub(start))
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if encoded, err := json.Marshal(record); err == nil {
			_ = s.cache.Set(ctx, s.cache.PromotionKey(code), string(encoded), s.cacheTTL)
		}
	}
	return record, nil
}

func promotionDiscount(record *PromotionRecord, cartSubtotal decimal.Decimal) decimal.Decimal {
	if record.DiscountType == enums.DiscountValuePercentage {
		return cartSubtotal.Mul(record.DiscountValue).Div(decimal.NewFromInt(100))
	}
	return record.DiscountValue
}

func rejected(code, message string) *AppliedPromotion {
	return &AppliedPromotion{
		Code:            code,
		DiscountValue:   decimal.Zero,
		MinimumPurchase: decimal.Zero,
		IsApplicable:    false,
		ErrorMessage:    message,
	}
}

func lookupResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
