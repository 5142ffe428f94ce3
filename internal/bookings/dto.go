package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorlink/ondemand-backend/pkg/db/models"
	"github.com/vendorlink/ondemand-backend/pkg/enums"
)

// BookingDTO is the transport shape for a booking.
type BookingDTO struct {
	ID          uuid.UUID           `json:"id"`
	CustomerID  uuid.UUID           `json:"customerId"`
	VendorID    uuid.UUID           `json:"vendorId"`
	ServiceID   uuid.UUID           `json:"serviceId"`
	ServiceName string              `json:"serviceName,omitempty"`
	ScheduledAt time.Time           `json:"scheduledAt"`
	TotalAmount decimal.Decimal     `json:"totalAmount"`
	Status      enums.BookingStatus `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// CreateBookingRequest is the payload for reserving a service slot.
type CreateBookingRequest struct {
	ServiceID   uuid.UUID `json:"serviceId" validate:"required"`
	ScheduledAt time.Time `json:"scheduledDate" validate:"required"`
}

// UpdateStatusRequest carries the vendor's status transition.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func FromModel(b *models.Booking) *BookingDTO {
	if b == nil {
		return nil
	}
	dto := &BookingDTO{
		ID:          b.ID,
		CustomerID:  b.CustomerID,
		VendorID:    b.VendorID,
		ServiceID:   b.ServiceID,
		ScheduledAt: b.ScheduledAt,
		TotalAmount: b.TotalAmount,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.Service != nil {
		dto.ServiceName = b.Service.Name
	}
	return dto
}

func FromModels(rows []models.Booking) []BookingDTO {
	out := make([]BookingDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
