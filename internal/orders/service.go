package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/greenbasket/farmmarket-backend/pkg/db/models"
	"github.com/greenbasket/farmmarket-backend/pkg/enums"
	pkgerrors "github.com/greenbasket/farmmarket-backend/pkg/errors"
)

type service struct {
	repo Repository
}

// NewService builds an orders service over the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

// Create persists the order exactly as submitted. The total is the
// client-held figure; strict re-pricing happens upstream in checkout when
// enabled.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	if !input.TotalAmount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order total is required")
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "order item is missing a product")
		}
		if item.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "order item quantity must be at least 1")
		}
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	paymentMethod := enums.PaymentMethodCOD
	if input.PaymentMethod != "" {
		parsed, err := enums.ParsePaymentMethod(input.PaymentMethod)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
		}
		paymentMethod = parsed
	}

	order := &models.Order{
		CustomerID:      input.CustomerID,
		Items:           items,
		TotalAmount:     input.TotalAmount,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   paymentMethod,
		Status:          enums.OrderStatusPending,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating order")
	}
	return created, nil
}

func (s *service) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	orders, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing customer orders")
	}
	return orders, nil
}

// ListByFarmer returns every order containing at least one of the farmer's
// products. The whole order is returned, including other farmers' lines.
func (s *service) ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]models.Order, error) {
	productIDs, err := s.repo.FindFarmerProductIDs(ctx, farmerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading farmer products")
	}
	orders, err := s.repo.ListContainingProducts(ctx, productIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing farmer orders")
	}
	return orders, nil
}
