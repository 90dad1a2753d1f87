package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenhollow/leafmarket-pricing/api/middleware"
	cartsvc "github.com/greenhollow/leafmarket-pricing/internal/cart"
	pkgerrors "github.com/greenhollow/leafmarket-pricing/pkg/errors"
)

type stubCartService struct {
	quote     *cartsvc.QuoteDTO
	err       error
	lastInput *cartsvc.UpsertItemInput
	cleared   bool
}

func (s *stubCartService) GetQuote(ctx context.Context, dispensaryID uuid.UUID) (*cartsvc.QuoteDTO, error) {
	return s.quote, s.err
}

func (s *stubCartService) UpsertItem(ctx context.Context, dispensaryID uuid.UUID, input cartsvc.UpsertItemInput) (*cartsvc.QuoteDTO, error) {
	s.lastInput = &input
	return s.quote, s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, dispensaryID, productID uuid.UUID) (*cartsvc.QuoteDTO, error) {
	return s.quote, s.err
}

func (s *stubCartService) ClearCart(ctx context.Context, dispensaryID uuid.UUID) error {
	s.cleared = true
	return s.err
}

func withBusiness(req *http.Request, businessID uuid.UUID) *http.Request {
	return req.WithContext(middleware.WithBusinessID(req.Context(), businessID.String()))
}

func withProductParam(req *http.Request, productID uuid.UUID) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("productId", productID.String())
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCartFetchSuccess(t *testing.T) {
	dispensaryID := uuid.New()
	quote := &cartsvc.QuoteDTO{
		DispensaryID: dispensaryID,
		Subtotal:     decimal.NewFromInt(90),
		Total:        decimal.NewFromInt(84),
	}
	handler := CartFetch(&stubCartService{quote: quote}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req = withBusiness(req, dispensaryID)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cartsvc.QuoteDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.DispensaryID != dispensaryID {
		t.Fatalf("unexpected dispensary id: %s", envelope.Data.DispensaryID)
	}
	if !envelope.Data.Total.Equal(decimal.NewFromInt(84)) {
		t.Fatalf("unexpected total: %s", envelope.Data.Total)
	}
}

func TestCartFetchMissingBusinessContext(t *testing.T) {
	handler := CartFetch(&stubCartService{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestCartItemUpsertSuccess(t *testing.T) {
	dispensaryID := uuid.New()
	productID := uuid.New()
	svc := &stubCartService{quote: &cartsvc.QuoteDTO{DispensaryID: dispensaryID}}
	handler := CartItemUpsert(svc, nil)

	body := `{"seller_id":"` + uuid.NewString() + `","product_name":"OG Kush","category":"flower","unit_price":"20.00","quantity":3,"deal_note":"10%"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/"+productID.String(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withBusiness(req, dispensaryID)
	req = withProductParam(req, productID)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastInput == nil {
		t.Fatal("expected upsert input recorded")
	}
	if svc.lastInput.ProductID != productID {
		t.Fatalf("unexpected product id: %s", svc.lastInput.ProductID)
	}
	if svc.lastInput.Quantity != 3 {
		t.Fatalf("unexpected quantity: %d", svc.lastInput.Quantity)
	}
	if svc.lastInput.DealNote == nil || *svc.lastInput.DealNote != "10%" {
		t.Fatalf("deal note not forwarded: %v", svc.lastInput.DealNote)
	}
}

func TestCartItemUpsertRejectsBadCategory(t *testing.T) {
	dispensaryID := uuid.New()
	productID := uuid.New()
	svc := &stubCartService{}
	handler := CartItemUpsert(svc, nil)

	body := `{"seller_id":"` + uuid.NewString() + `","product_name":"Chips","category":"snacks","unit_price":"5.00","quantity":1}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/"+productID.String(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withBusiness(req, dispensaryID)
	req = withProductParam(req, productID)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.lastInput != nil {
		t.Fatal("service should not be called for invalid category")
	}
}

func TestCartItemUpsertRejectsZeroQuantity(t *testing.T) {
	dispensaryID := uuid.New()
	productID := uuid.New()
	handler := CartItemUpsert(&stubCartService{}, nil)

	body := `{"seller_id":"` + uuid.NewString() + `","product_name":"OG Kush","category":"flower","unit_price":"20.00","quantity":0}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/"+productID.String(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withBusiness(req, dispensaryID)
	req = withProductParam(req, productID)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartItemRemoveNotFound(t *testing.T) {
	dispensaryID := uuid.New()
	productID := uuid.New()
	handler := CartItemRemove(&stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/"+productID.String(), nil)
	req = withBusiness(req, dispensaryID)
	req = withProductParam(req, productID)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartClearSuccess(t *testing.T) {
	dispensaryID := uuid.New()
	svc := &stubCartService{}
	handler := CartClear(svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	req = withBusiness(req, dispensaryID)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !svc.cleared {
		t.Fatal("expected clear to reach the service")
	}
}
