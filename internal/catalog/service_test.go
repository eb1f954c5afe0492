package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/greenbasket/farmmarket-backend/pkg/db/models"
	pkgerrors "github.com/greenbasket/farmmarket-backend/pkg/errors"
)

type stubCatalogRepo struct {
	Repository

	createdProduct *models.Product
	createErr      error

	findProduct *models.Product
	findErr     error

	deleteCalled bool
	deleteErr    error
}

func (s *stubCatalogRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.createdProduct = product
	return product, nil
}

func (s *stubCatalogRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.findProduct, nil
}

func (s *stubCatalogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleteCalled = true
	return s.deleteErr
}

func validInput() CreateProductInput {
	return CreateProductInput{
		Name:      "Tomato",
		Price:     decimal.NewFromInt(30),
		Category:  "Vegetables",
		ImagePath: "uploads/1.png",
		FarmerID:  uuid.New(),
	}
}

func TestCreateRejectsInvalidCategory(t *testing.T) {
	svc, err := NewService(&stubCatalogRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	input := validInput()
	input.Category = "Dairy"

	_, err = svc.Create(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsNonPositivePrice(t *testing.T) {
	svc, _ := NewService(&stubCatalogRepo{})

	input := validInput()
	input.Price = decimal.Zero

	if _, err := svc.Create(context.Background(), input); err == nil {
		t.Fatal("expected error for zero price")
	}

	input.Price = decimal.NewFromInt(-5)
	if _, err := svc.Create(context.Background(), input); err == nil {
		t.Fatal("expected error for negative price")
	}
}

func TestCreateAppliesDefaultUnit(t *testing.T) {
	repo := &stubCatalogRepo{}
	svc, _ := NewService(repo)

	input := validInput()
	input.Unit = ""

	product, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if product.Unit != "kg" {
		t.Fatalf("expected default unit kg, got %q", product.Unit)
	}
}

func TestCreateKeepsZeroQuantity(t *testing.T) {
	repo := &stubCatalogRepo{}
	svc, _ := NewService(repo)

	input := validInput()
	input.Quantity = 0

	product, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if product.Quantity != 0 {
		t.Fatalf("expected out-of-stock quantity 0 to be kept, got %d", product.Quantity)
	}
}

func TestCreateRejectsNegativeQuantity(t *testing.T) {
	svc, _ := NewService(&stubCatalogRepo{})

	input := validInput()
	input.Quantity = -3

	_, err := svc.Create(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteMissingProductIsNotFound(t *testing.T) {
	repo := &stubCatalogRepo{findErr: gorm.ErrRecordNotFound}
	svc, _ := NewService(repo)

	err := svc.Delete(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if repo.deleteCalled {
		t.Fatal("delete should not run when the product is missing")
	}
}

func TestDeleteExistingProduct(t *testing.T) {
	id := uuid.New()
	repo := &stubCatalogRepo{findProduct: &models.Product{ID: id}}
	svc, _ := NewService(repo)

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !repo.deleteCalled {
		t.Fatal("expected delete to run")
	}
}
