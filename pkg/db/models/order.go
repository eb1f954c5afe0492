package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenbasket/farmmarket-backend/pkg/enums"
	"github.com/greenbasket/farmmarket-backend/pkg/types"
)

// Order is a customer's submitted purchase. Line items carry immutable
// price-at-purchase snapshots; the total is stored as submitted and never
// re-derived from current catalog prices.
type Order struct {
	ID              uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID      uuid.UUID              `gorm:"column:customer_id;type:uuid;not null"`
	Customer        *User                  `gorm:"foreignKey:CustomerID"`
	Items           []OrderItem            `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount     decimal.Decimal        `gorm:"column:total_amount;type:numeric(12,2);not null"`
	ShippingAddress *types.ShippingAddress `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	PaymentMethod   enums.PaymentMethod    `gorm:"column:payment_method;type:text;not null;default:'COD'"`
	Status          enums.OrderStatus      `gorm:"column:status;type:text;not null;default:'Pending'"`
	CreatedAt       time.Time              `gorm:"column:created_at;autoCreateTime"`
}
