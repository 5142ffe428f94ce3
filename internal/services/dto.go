package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/vendorlink/ondemand-backend/pkg/db/models"
)

// ServiceDTO is the transport shape for a bookable service.
type ServiceDTO struct {
	ID              uuid.UUID       `json:"id"`
	VendorID        uuid.UUID       `json:"vendorId"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category"`
	DurationMinutes int             `json:"durationMinutes"`
	Availability    string          `json:"availability"`
	Images          []string        `json:"images"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// CreateServiceRequest is the payload for adding a service listing.
type CreateServiceRequest struct {
	Name            string          `json:"name" validate:"required"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	Category        string          `json:"category"`
	DurationMinutes int             `json:"durationMinutes" validate:"min=0"`
	Availability    string          `json:"availability"`
	Images          []string        `json:"images"`
}

// UpdateServiceRequest carries the mutable service fields; nil fields are left
// untouched.
type UpdateServiceRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Category        *string          `json:"category,omitempty"`
	DurationMinutes *int             `json:"durationMinutes,omitempty"`
	Availability    *string          `json:"availability,omitempty"`
	Images          []string         `json:"images,omitempty"`
}

// ListFilter narrows a catalog listing. Zero values are no-ops.
type ListFilter struct {
	Category string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

func FromModel(s *models.Service) *ServiceDTO {
	if s == nil {
		return nil
	}
	return &ServiceDTO{
		ID:              s.ID,
		VendorID:        s.VendorID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		Category:        s.Category,
		DurationMinutes: s.DurationMinutes,
		Availability:    s.Availability,
		Images:          append([]string(nil), []string(s.Images)...),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func FromModels(rows []models.Service) []ServiceDTO {
	out := make([]ServiceDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

func toStringArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(values)
}
