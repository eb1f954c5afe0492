package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	cartsvc "github.com/greenbasket/farmmarket-backend/internal/cart"
	"github.com/greenbasket/farmmarket-backend/pkg/kvstore"
)

func newCartRouter(t *testing.T) (chi.Router, *cartsvc.Manager) {
	t.Helper()
	manager, err := cartsvc.NewManager(kvstore.NewMemory(), nil)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	r := chi.NewRouter()
	r.Route("/api/cart/{userId}", func(r chi.Router) {
		r.Get("/", GetCart(manager, nil))
		r.Post("/", AddCartItem(manager, nil))
		r.Delete("/", ClearCart(manager, nil))
		r.Put("/items/{productId}", UpdateCartItem(manager, nil))
		r.Delete("/items/{productId}", RemoveCartItem(manager, nil))
	})
	return r, manager
}

func postCartItem(t *testing.T, router chi.Router, owner string, productID uuid.UUID, quantity int) *httptest.ResponseRecorder {
	t.Helper()
	body := fmt.Sprintf(`{"productId":%q,"name":"Tomatoes","price":"40","quantity":%d}`, productID, quantity)
	req := httptest.NewRequest(http.MethodPost, "/api/cart/"+owner, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeCart(t *testing.T, resp *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var envelope struct {
		Data cartResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode cart response: %v", err)
	}
	return envelope.Data
}

func TestAddCartItemMergesQuantities(t *testing.T) {
	router, _ := newCartRouter(t)
	owner := uuid.NewString()
	productID := uuid.New()

	if resp := postCartItem(t, router, owner, productID, 2); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	resp := postCartItem(t, router, owner, productID, 3)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	body := decodeCart(t, resp)
	if len(body.Items) != 1 {
		t.Fatalf("expected one merged line got %d", len(body.Items))
	}
	if body.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5 got %d", body.Items[0].Quantity)
	}
	if body.TotalItems != 5 {
		t.Fatalf("expected total items 5 got %d", body.TotalItems)
	}
}

func TestUpdateCartItemZeroRemovesLine(t *testing.T) {
	router, _ := newCartRouter(t)
	owner := uuid.NewString()
	productID := uuid.New()
	postCartItem(t, router, owner, productID, 2)

	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/api/cart/%s/items/%s", owner, productID),
		bytes.NewReader([]byte(`{"quantity":0}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if body := decodeCart(t, resp); len(body.Items) != 0 {
		t.Fatalf("expected empty cart got %d lines", len(body.Items))
	}
}

func TestGetCartReadsPersistedState(t *testing.T) {
	router, _ := newCartRouter(t)
	owner := uuid.NewString()
	postCartItem(t, router, owner, uuid.New(), 4)

	req := httptest.NewRequest(http.MethodGet, "/api/cart/"+owner, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if body := decodeCart(t, resp); body.TotalItems != 4 {
		t.Fatalf("expected total items 4 got %d", body.TotalItems)
	}
}

func TestClearCartEmptiesEverything(t *testing.T) {
	router, _ := newCartRouter(t)
	owner := uuid.NewString()
	postCartItem(t, router, owner, uuid.New(), 1)
	postCartItem(t, router, owner, uuid.New(), 2)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/"+owner, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if body := decodeCart(t, resp); len(body.Items) != 0 || body.TotalItems != 0 {
		t.Fatalf("expected empty cart got %+v", body)
	}
}

func TestAddCartItemRejectsMissingName(t *testing.T) {
	router, _ := newCartRouter(t)

	body := fmt.Sprintf(`{"productId":%q,"price":"40","quantity":1}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/cart/"+uuid.NewString(), bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
