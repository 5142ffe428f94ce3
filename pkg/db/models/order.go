package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorlink/ondemand-backend/pkg/enums"
)

// Order is a checkout snapshot. Line prices and the total are frozen at
// placement time so later catalog edits do not rewrite history.
type Order struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerID  uuid.UUID         `gorm:"type:uuid;not null;index:idx_orders_customer_id" json:"customerId"`
	VendorID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_orders_vendor_id" json:"vendorId"`
	TotalAmount decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"totalAmount"`
	Status      enums.OrderStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

func (Order) TableName() string {
	return "orders"
}
