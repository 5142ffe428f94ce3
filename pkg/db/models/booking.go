package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorlink/ondemand-backend/pkg/enums"
)

// Booking reserves a service slot. TotalAmount is the service price at booking
// time.
type Booking struct {
	ID          uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerID  uuid.UUID           `gorm:"type:uuid;not null;index:idx_bookings_customer_id" json:"customerId"`
	VendorID    uuid.UUID           `gorm:"type:uuid;not null;index:idx_bookings_vendor_id" json:"vendorId"`
	ServiceID   uuid.UUID           `gorm:"type:uuid;not null" json:"serviceId"`
	ScheduledAt time.Time           `gorm:"not null" json:"scheduledAt"`
	TotalAmount decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"totalAmount"`
	Status      enums.BookingStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}
