package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendorlink/ondemand-backend/pkg/enums"
)

// User is an account on the platform. Role selects which surfaces the account
// can reach; vendors additionally carry a VendorProfile row.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"not null;uniqueIndex:idx_users_email" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         enums.UserRole `gorm:"type:text;not null;default:'customer'" json:"role"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
