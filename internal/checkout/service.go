package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenbasket/farmmarket-backend/internal/cart"
	"github.com/greenbasket/farmmarket-backend/internal/orders"
	"github.com/greenbasket/farmmarket-backend/pkg/db/models"
	pkgerrors "github.com/greenbasket/farmmarket-backend/pkg/errors"
	"github.com/greenbasket/farmmarket-backend/pkg/types"
)

// OrderSubmitter persists a finished checkout as an order.
type OrderSubmitter interface {
	Create(ctx context.Context, input orders.CreateOrderInput) (*models.Order, error)
}

// ProductGetter resolves current catalog state for strict re-pricing.
type ProductGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service coordinates cart, catalog and order store during checkout.
type Service interface {
	Checkout(ctx context.Context, input Input) (*Confirmation, error)
}

type service struct {
	carts   *cart.Manager
	orders  OrderSubmitter
	catalog ProductGetter
	strict  bool
	now     func() time.Time
}

// NewService builds the checkout coordinator. When strict is set, line
// prices are re-checked against the catalog before submission.
func NewService(carts *cart.Manager, submitter OrderSubmitter, catalog ProductGetter, strict bool) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart manager required")
	}
	if submitter == nil {
		return nil, fmt.Errorf("order submitter required")
	}
	if strict && catalog == nil {
		return nil, fmt.Errorf("catalog getter required for strict checkout")
	}
	return &service{
		carts:   carts,
		orders:  submitter,
		catalog: catalog,
		strict:  strict,
		now:     time.Now,
	}, nil
}

func (s *service) Checkout(ctx context.Context, input Input) (*Confirmation, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer is required")
	}

	// The address gate runs before any store access.
	if err := validateAddress(input.ShippingAddress); err != nil {
		return nil, err
	}

	var (
		lines      []cart.Entry
		cartEngine *cart.Engine
	)

	if input.BuyNow != nil {
		quantity := input.BuyNow.Quantity
		if quantity < 1 {
			quantity = 1
		}
		line := input.BuyNow.Item
		line.Quantity = quantity
		lines = []cart.Entry{line}
	} else {
		engine, err := s.carts.For(ctx, input.CustomerID.String())
		if err != nil {
			return nil, err
		}
		cartEngine = engine
		lines = engine.Entries()
	}

	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	if s.strict {
		if err := s.repriceLines(ctx, lines); err != nil {
			return nil, err
		}
	}

	totalItems := 0
	totalAmount := decimal.Zero
	orderItems := make([]orders.OrderItemInput, 0, len(lines))
	for _, line := range lines {
		totalItems += line.Quantity
		totalAmount = totalAmount.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		orderItems = append(orderItems, orders.OrderItemInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	// The cart is cleared once the purchase is locally confirmed, before the
	// order store acknowledges. A failed insert leaves the cart empty.
	if cartEngine != nil {
		if err := cartEngine.Clear(ctx); err != nil {
			return nil, err
		}
	}

	address := input.ShippingAddress
	order, err := s.orders.Create(ctx, orders.CreateOrderInput{
		CustomerID:      input.CustomerID,
		Items:           orderItems,
		TotalAmount:     totalAmount,
		ShippingAddress: &address,
		PaymentMethod:   input.PaymentMethod,
	})
	if err != nil {
		return nil, err
	}

	return &Confirmation{
		OrderID:     order.ID,
		Items:       lines,
		TotalAmount: totalAmount,
		TotalItems:  totalItems,
		SubmittedAt: s.now(),
	}, nil
}

func (s *service) repriceLines(ctx context.Context, lines []cart.Entry) error {
	for _, line := range lines {
		product, err := s.catalog.Get(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if !product.Price.Equal(line.Price) {
			return pkgerrors.New(pkgerrors.CodeConflict,
				fmt.Sprintf("price changed for %s", product.Name)).
				WithDetails(map[string]any{
					"productId":    line.ProductID,
					"currentPrice": product.Price,
					"cartPrice":    line.Price,
				})
		}
	}
	return nil
}

// validateAddress gates on the free-text address line alone; the remaining
// fields are optional extras the client may or may not collect.
func validateAddress(address types.ShippingAddress) error {
	if strings.TrimSpace(address.AddressLine) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "shipping address is required")
	}
	return nil
}
