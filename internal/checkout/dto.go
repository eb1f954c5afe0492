package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenbasket/farmmarket-backend/internal/cart"
	"github.com/greenbasket/farmmarket-backend/pkg/types"
)

// BuyNow is a single-product purchase that bypasses the cart.
type BuyNow struct {
	Item     cart.Entry
	Quantity int
}

// Input carries a checkout submission. When BuyNow is nil the customer's
// current cart is checked out.
type Input struct {
	CustomerID      uuid.UUID
	BuyNow          *BuyNow
	ShippingAddress types.ShippingAddress
	PaymentMethod   string
}

// Confirmation summarizes what was submitted.
type Confirmation struct {
	OrderID     uuid.UUID       `json:"orderId"`
	Items       []cart.Entry    `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalItems  int             `json:"totalItems"`
	SubmittedAt time.Time       `json:"submittedAt"`
}
