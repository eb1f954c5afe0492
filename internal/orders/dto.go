package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenbasket/farmmarket-backend/pkg/types"
)

// OrderItemInput is one product line submitted with an order. Price is the
// price the buyer saw at submission and is stored as the line snapshot.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Price     decimal.Decimal
}

// CreateOrderInput carries everything needed to persist an order.
type CreateOrderInput struct {
	CustomerID      uuid.UUID
	Items           []OrderItemInput
	TotalAmount     decimal.Decimal
	ShippingAddress *types.ShippingAddress
	PaymentMethod   string
}
