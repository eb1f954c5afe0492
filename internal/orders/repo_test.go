package orders

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/greenbasket/farmmarket-backend/pkg/db/models"
	"github.com/greenbasket/farmmarket-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password TEXT NOT NULL,
  role TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL,
  category TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  unit TEXT NOT NULL DEFAULT 'kg',
  image TEXT NOT NULL DEFAULT '',
  farmer_id TEXT NOT NULL,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  total_amount NUMERIC NOT NULL,
  shipping_address TEXT,
  payment_method TEXT NOT NULL DEFAULT 'COD',
  status TEXT NOT NULL DEFAULT 'Pending',
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price NUMERIC NOT NULL
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role enums.UserRole, email string) models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.New(),
		Name:     strings.Split(email, "@")[0],
		Email:    email,
		Password: "pw",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProductRow(t *testing.T, db *gorm.DB, farmerID uuid.UUID, name string) models.Product {
	t.Helper()
	product := models.Product{
		ID:       uuid.New(),
		Name:     name,
		Price:    decimal.NewFromInt(20),
		Category: enums.ProductCategoryVegetables,
		Quantity: 5,
		Unit:     "kg",
		Image:    "uploads/1.png",
		FarmerID: farmerID,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedOrder(t *testing.T, db *gorm.DB, customerID uuid.UUID, createdAt time.Time, items ...models.OrderItem) models.Order {
	t.Helper()
	for i := range items {
		items[i].ID = uuid.New()
	}
	order := models.Order{
		ID:            uuid.New(),
		CustomerID:    customerID,
		Items:         items,
		TotalAmount:   decimal.NewFromInt(100),
		PaymentMethod: enums.PaymentMethodCOD,
		Status:        enums.OrderStatusPending,
		CreatedAt:     createdAt,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestListByCustomerResolvesProductsNewestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	farmer := seedUser(t, db, enums.UserRoleFarmer, "farmer@example.com")
	customer := seedUser(t, db, enums.UserRoleCustomer, "customer@example.com")
	product := seedProductRow(t, db, farmer.ID, "Tomato")

	base := time.Now().Add(-time.Hour)
	older := seedOrder(t, db, customer.ID, base,
		models.OrderItem{ProductID: product.ID, Quantity: 2, Price: decimal.NewFromInt(20)})
	newer := seedOrder(t, db, customer.ID, base.Add(time.Minute),
		models.OrderItem{ProductID: product.ID, Quantity: 1, Price: decimal.NewFromInt(20)})

	orders, err := repo.ListByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, older.ID, orders[1].ID)

	require.Len(t, orders[0].Items, 1)
	require.NotNil(t, orders[0].Items[0].Product)
	assert.Equal(t, "Tomato", orders[0].Items[0].Product.Name)
}

func TestListByFarmerReturnsWholeOrders(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	farmerA := seedUser(t, db, enums.UserRoleFarmer, "a@example.com")
	farmerB := seedUser(t, db, enums.UserRoleFarmer, "b@example.com")
	customer := seedUser(t, db, enums.UserRoleCustomer, "customer@example.com")

	productA := seedProductRow(t, db, farmerA.ID, "Tomato")
	productB := seedProductRow(t, db, farmerB.ID, "Mango")

	mixed := seedOrder(t, db, customer.ID, time.Now(),
		models.OrderItem{ProductID: productA.ID, Quantity: 1, Price: decimal.NewFromInt(20)},
		models.OrderItem{ProductID: productB.ID, Quantity: 3, Price: decimal.NewFromInt(20)})
	seedOrder(t, db, customer.ID, time.Now(),
		models.OrderItem{ProductID: productB.ID, Quantity: 1, Price: decimal.NewFromInt(20)})

	ids, err := repo.FindFarmerProductIDs(ctx, farmerA.ID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{productA.ID}, ids)

	orders, err := repo.ListContainingProducts(ctx, ids)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, mixed.ID, orders[0].ID)

	// the whole order is returned, including the other farmer's line
	assert.Len(t, orders[0].Items, 2)
	require.NotNil(t, orders[0].Customer)
	assert.Equal(t, "customer@example.com", orders[0].Customer.Email)
}

func TestListContainingProductsEmptySet(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	orders, err := repo.ListContainingProducts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCreatePersistsItemsAndSnapshotPrices(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	farmer := seedUser(t, db, enums.UserRoleFarmer, "farmer@example.com")
	customer := seedUser(t, db, enums.UserRoleCustomer, "customer@example.com")
	product := seedProductRow(t, db, farmer.ID, "Tomato")

	order := &models.Order{
		ID:         uuid.New(),
		CustomerID: customer.ID,
		Items: []models.OrderItem{
			{ID: uuid.New(), ProductID: product.ID, Quantity: 2, Price: decimal.NewFromInt(18)},
		},
		TotalAmount:   decimal.NewFromInt(36),
		PaymentMethod: enums.PaymentMethodCOD,
		Status:        enums.OrderStatusPending,
	}
	_, err := repo.Create(ctx, order)
	require.NoError(t, err)

	// raise the catalog price; the stored line keeps the snapshot
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price", decimal.NewFromInt(99)).Error)

	orders, err := repo.ListByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
	assert.True(t, orders[0].Items[0].Price.Equal(decimal.NewFromInt(18)),
		"expected snapshot price 18, got %s", orders[0].Items[0].Price)
}
