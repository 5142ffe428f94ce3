package vendors

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendorlink/ondemand-backend/pkg/db/models"
)

// VendorProfileDTO is the transport shape for a vendor profile. User contact
// details are attached when the linked account was preloaded.
type VendorProfileDTO struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	StoreName   string    `json:"storeName"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Logo        string    `json:"logo"`
	IsApproved  bool      `json:"isApproved"`
	OwnerName   string    `json:"ownerName,omitempty"`
	OwnerEmail  string    `json:"ownerEmail,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateProfileRequest is the payload for opening a storefront.
type CreateProfileRequest struct {
	StoreName   string `json:"storeName" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Logo        string `json:"logo"`
}

// UpdateProfileRequest carries the mutable profile fields. Nil fields are left
// untouched; IsApproved is honored only for admin callers.
type UpdateProfileRequest struct {
	StoreName   *string `json:"storeName,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Logo        *string `json:"logo,omitempty"`
	IsApproved  *bool   `json:"isApproved,omitempty"`
}

// ListResponse pairs the approved vendor list with its count.
type ListResponse struct {
	Count   int                `json:"count"`
	Vendors []VendorProfileDTO `json:"vendors"`
}

func FromModel(p *models.VendorProfile) *VendorProfileDTO {
	if p == nil {
		return nil
	}
	dto := &VendorProfileDTO{
		ID:          p.ID,
		UserID:      p.UserID,
		StoreName:   p.StoreName,
		Description: p.Description,
		Category:    p.Category,
		Logo:        p.Logo,
		IsApproved:  p.IsApproved,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.User != nil {
		dto.OwnerName = p.User.Name
		dto.OwnerEmail = p.User.Email
	}
	return dto
}

func FromModels(profiles []models.VendorProfile) []VendorProfileDTO {
	out := make([]VendorProfileDTO, 0, len(profiles))
	for i := range profiles {
		out = append(out, *FromModel(&profiles[i]))
	}
	return out
}
