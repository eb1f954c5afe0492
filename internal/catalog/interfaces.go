package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenbasket/farmmarket-backend/pkg/db/models"
)

// Repository defines persistence operations for the product catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]models.Product, error)
	ListPublic(ctx context.Context, filters PublicFilters) ([]models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service defines catalog operations exposed to the API layer.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]models.Product, error)
	ListPublic(ctx context.Context, filters PublicFilters) ([]models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
