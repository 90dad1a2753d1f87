package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenhollow/leafmarket-pricing/api/middleware"
	"github.com/greenhollow/leafmarket-pricing/internal/promotions"
)

type stubPromotionService struct {
	result       *promotions.AppliedPromotion
	lastCode     string
	lastSubtotal decimal.Decimal
	lastBusiness string
}

func (s *stubPromotionService) Validate(ctx context.Context, code string, cartSubtotal decimal.Decimal, businessID string) *promotions.AppliedPromotion {
	s.lastCode = code
	s.lastSubtotal = cartSubtotal
	s.lastBusiness = businessID
	return s.result
}

func TestPromotionValidateSuccess(t *testing.T) {
	businessID := uuid.New()
	svc := &stubPromotionService{result: &promotions.AppliedPromotion{
		Code:            "SUMMER20",
		DiscountValue:   decimal.NewFromInt(40),
		DiscountDisplay: "20%",
		IsApplicable:    true,
	}}
	handler := PromotionValidate(svc, nil)

	body := `{"code":"SUMMER20","cart_subtotal":"200.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/promotions/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithBusinessID(req.Context(), businessID.String()))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastCode != "SUMMER20" {
		t.Fatalf("unexpected code forwarded: %q", svc.lastCode)
	}
	if !svc.lastSubtotal.Equal(decimal.RequireFromString("200.00")) {
		t.Fatalf("unexpected subtotal forwarded: %s", svc.lastSubtotal)
	}
	if svc.lastBusiness != businessID.String() {
		t.Fatalf("unexpected business forwarded: %q", svc.lastBusiness)
	}

	var envelope struct {
		Data promotions.AppliedPromotion `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.IsApplicable {
		t.Fatal("expected applicable promotion in payload")
	}
	if !envelope.Data.DiscountValue.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("unexpected discount value: %s", envelope.Data.DiscountValue)
	}
}

func TestPromotionValidateRejectedCodeStillOK(t *testing.T) {
	svc := &stubPromotionService{result: &promotions.AppliedPromotion{
		Code:         "BOGUS1",
		IsApplicable: false,
		ErrorMessage: "Promotion code is invalid or expired.",
	}}
	handler := PromotionValidate(svc, nil)

	body := `{"code":"BOGUS1","cart_subtotal":"50.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/promotions/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for rejected code got %d", resp.Code)
	}

	var envelope struct {
		Data promotions.AppliedPromotion `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.IsApplicable {
		t.Fatal("expected inapplicable result")
	}
	if envelope.Data.ErrorMessage == "" {
		t.Fatal("expected error message in payload")
	}
}

func TestPromotionValidateRejectsMissingCode(t *testing.T) {
	svc := &stubPromotionService{result: &promotions.AppliedPromotion{}}
	handler := PromotionValidate(svc, nil)

	body := `{"cart_subtotal":"50.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/promotions/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.lastCode != "" {
		t.Fatal("service should not be called without a code")
	}
}

func TestPromotionValidateRejectsNegativeSubtotal(t *testing.T) {
	svc := &stubPromotionService{result: &promotions.AppliedPromotion{}}
	handler := PromotionValidate(svc, nil)

	body := `{"code":"SUMMER20","cart_subtotal":"-1.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/promotions/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
