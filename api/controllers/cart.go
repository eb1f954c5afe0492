package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenbasket/farmmarket-backend/api/responses"
	"github.com/greenbasket/farmmarket-backend/api/validators"
	cartsvc "github.com/greenbasket/farmmarket-backend/internal/cart"
	pkgerrors "github.com/greenbasket/farmmarket-backend/pkg/errors"
	"github.com/greenbasket/farmmarket-backend/pkg/logger"
)

type addCartItemRequest struct {
	ProductID string          `json:"productId" validate:"required,uuid"`
	Name      string          `json:"name" validate:"required"`
	Price     decimal.Decimal `json:"price" validate:"required"`
	Image     string          `json:"image"`
	Unit      string          `json:"unit"`
	FarmerID  string          `json:"farmerId"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
}

func (req addCartItemRequest) toEntry() (cartsvc.Entry, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return cartsvc.Entry{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}

	entry := cartsvc.Entry{
		ProductID: productID,
		Name:      req.Name,
		Price:     req.Price,
		Image:     req.Image,
		Unit:      req.Unit,
	}
	if req.FarmerID != "" {
		farmerID, err := uuid.Parse(req.FarmerID)
		if err != nil {
			return cartsvc.Entry{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid farmer id")
		}
		entry.FarmerID = farmerID
	}
	return entry, nil
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type cartResponse struct {
	Items      []cartsvc.Entry `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

func newCartResponse(engine *cartsvc.Engine) cartResponse {
	return cartResponse{
		Items:      engine.Entries(),
		TotalItems: engine.TotalItems(),
		TotalPrice: engine.TotalPrice(),
	}
}

func cartFor(r *http.Request, carts *cartsvc.Manager) (*cartsvc.Engine, error) {
	return carts.For(r.Context(), chi.URLParam(r, "userId"))
}

// GetCart serves the owner's current cart.
func GetCart(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, err := cartFor(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(engine))
	}
}

// AddCartItem merges a product snapshot into the owner's cart.
func AddCartItem(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := payload.toEntry()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		engine, err := cartFor(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := engine.Add(r.Context(), entry, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(engine))
	}
}

// UpdateCartItem sets an absolute quantity; zero or less removes the line.
func UpdateCartItem(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		engine, err := cartFor(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := engine.UpdateQuantity(r.Context(), productID, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(engine))
	}
}

// RemoveCartItem drops a product line; removing an absent line succeeds.
func RemoveCartItem(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		engine, err := cartFor(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := engine.Remove(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(engine))
	}
}

// ClearCart empties the owner's cart.
func ClearCart(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, err := cartFor(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := engine.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(engine))
	}
}
