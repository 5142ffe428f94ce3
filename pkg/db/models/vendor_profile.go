package models

import (
	"time"

	"github.com/google/uuid"
)

// VendorProfile is the storefront record for a vendor account. A user owns at
// most one profile; listings are hidden until an admin flips IsApproved.
type VendorProfile struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vendor_profiles_user_id" json:"userId"`
	StoreName   string    `gorm:"not null" json:"storeName"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Logo        string    `json:"logo"`
	IsApproved  bool      `gorm:"not null;default:false" json:"isApproved"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (VendorProfile) TableName() string {
	return "vendor_profiles"
}
