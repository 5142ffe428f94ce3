package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is a physical listing sold by a vendor.
type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VendorID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_products_vendor_id" json:"vendorId"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Category    string          `gorm:"index:idx_products_category" json:"category"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	Images      pq.StringArray  `gorm:"type:text[]" json:"images"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	Vendor *VendorProfile `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
