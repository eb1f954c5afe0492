package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenbasket/farmmarket-backend/pkg/enums"
)

// Product represents a farmer's listing.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string                `gorm:"column:name;not null"`
	Description string                `gorm:"column:description;not null"`
	Price       decimal.Decimal       `gorm:"column:price;type:numeric(12,2);not null"`
	Category    enums.ProductCategory `gorm:"column:category;type:text;not null"`
	Quantity    int                   `gorm:"column:quantity;not null;default:1"`
	Unit        string                `gorm:"column:unit;not null;default:'kg'"`
	Image       string                `gorm:"column:image;not null"`
	FarmerID    uuid.UUID             `gorm:"column:farmer_id;type:uuid;not null"`
	Farmer      *User                 `gorm:"foreignKey:FarmerID"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
}
