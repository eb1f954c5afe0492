package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/greenbasket/farmmarket-backend/api/responses"
	"github.com/greenbasket/farmmarket-backend/api/validators"
	checkoutsvc "github.com/greenbasket/farmmarket-backend/internal/checkout"
	pkgerrors "github.com/greenbasket/farmmarket-backend/pkg/errors"
	"github.com/greenbasket/farmmarket-backend/pkg/logger"
	"github.com/greenbasket/farmmarket-backend/pkg/types"
)

type buyNowRequest struct {
	Item     addCartItemRequest `json:"item" validate:"required"`
	Quantity int                `json:"quantity"`
}

type checkoutRequest struct {
	CustomerID      string                `json:"customerId" validate:"required,uuid"`
	BuyNow          *buyNowRequest        `json:"buyNow,omitempty"`
	ShippingAddress types.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod"`
}

func (req checkoutRequest) toInput() (checkoutsvc.Input, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return checkoutsvc.Input{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer id")
	}

	input := checkoutsvc.Input{
		CustomerID:      customerID,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	}
	if req.BuyNow != nil {
		entry, err := req.BuyNow.Item.toEntry()
		if err != nil {
			return checkoutsvc.Input{}, err
		}
		input.BuyNow = &checkoutsvc.BuyNow{Item: entry, Quantity: req.BuyNow.Quantity}
	}
	return input, nil
}

// Checkout submits the customer's cart, or a single buy-now line, as an order.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		confirmation, err := svc.Checkout(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, confirmation)
	}
}
