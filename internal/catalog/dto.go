package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductInput captures the fields accepted when a farmer lists a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Quantity    int
	Unit        string
	ImagePath   string
	FarmerID    uuid.UUID
}

// PublicFilters describe the inputs supported by the public product feed.
// Category "All" (or empty) means unfiltered; Search is a case-insensitive
// substring match on the product name.
type PublicFilters struct {
	Category string
	Search   string
}
