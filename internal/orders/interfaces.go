package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenbasket/farmmarket-backend/pkg/db/models"
)

// Repository defines persistence operations for orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error)
	FindFarmerProductIDs(ctx context.Context, farmerID uuid.UUID) ([]uuid.UUID, error)
	ListContainingProducts(ctx context.Context, productIDs []uuid.UUID) ([]models.Order, error)
}

// Service defines order operations exposed to the API layer.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error)
	ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]models.Order, error)
}
