package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Service is a bookable offering sold by a vendor. Duration is stored in
// minutes; Availability is free text ("weekdays 9-5").
type Service struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VendorID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_services_vendor_id" json:"vendorId"`
	Name            string          `gorm:"not null" json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Category        string          `gorm:"index:idx_services_category" json:"category"`
	DurationMinutes int             `gorm:"not null;default:0" json:"durationMinutes"`
	Availability    string          `gorm:"not null;default:''" json:"availability"`
	Images          pq.StringArray  `gorm:"type:text[]" json:"images"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`

	Vendor *VendorProfile `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
}

func (Service) TableName() string {
	return "services"
}
