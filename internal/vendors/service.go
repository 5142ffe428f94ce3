package vendors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vendorlink/ondemand-backend/pkg/db"
	"github.com/vendorlink/ondemand-backend/pkg/db/models"
	"github.com/vendorlink/ondemand-backend/pkg/enums"
	pkgerrors "github.com/vendorlink/ondemand-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the vendors controller.
type Service interface {
	CreateProfile(ctx context.Context, userID uuid.UUID, req CreateProfileRequest) (*VendorProfileDTO, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*VendorProfileDTO, error)
	GetOwnProfile(ctx context.Context, userID uuid.UUID) (*VendorProfileDTO, error)
	UpdateProfile(ctx context.Context, id, actorID uuid.UUID, actorRole enums.UserRole, req UpdateProfileRequest) (*VendorProfileDTO, error)
	ListApproved(ctx context.Context) (*ListResponse, error)
}

type profileRepository interface {
	Create(ctx context.Context, profile *models.VendorProfile) (*models.VendorProfile, error)
	Save(ctx context.Context, profile *models.VendorProfile) (*models.VendorProfile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.VendorProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.VendorProfile, error)
	ListApproved(ctx context.Context) ([]models.VendorProfile, error)
}

type service struct {
	repo profileRepository
}

// NewService constructs a vendors service with the provided repository.
func NewService(repo profileRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendor profile repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateProfile(ctx context.Context, userID uuid.UUID, req CreateProfileRequest) (*VendorProfileDTO, error) {
	if _, err := s.repo.FindByUserID(ctx, userID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "vendor profile already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check existing profile")
	}

	profile, err := s.repo.Create(ctx, &models.VendorProfile{
		UserID:      userID,
		StoreName:   strings.TrimSpace(req.StoreName),
		Description: req.Description,
		Category:    req.Category,
		Logo:        req.Logo,
		IsApproved:  false,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_vendor_profiles_user_id") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "vendor profile already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create profile")
	}
	return FromModel(profile), nil
}

func (s *service) GetProfile(ctx context.Context, id uuid.UUID) (*VendorProfileDTO, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load profile")
	}
	return FromModel(profile), nil
}

func (s *service) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*VendorProfileDTO, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load profile")
	}
	return FromModel(profile), nil
}

func (s *service) UpdateProfile(ctx context.Context, id, actorID uuid.UUID, actorRole enums.UserRole, req UpdateProfileRequest) (*VendorProfileDTO, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load profile")
	}

	isAdmin := actorRole == enums.UserRoleAdmin
	if !isAdmin && profile.UserID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the profile owner")
	}

	if req.StoreName != nil {
		name := strings.TrimSpace(*req.StoreName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "storeName must not be empty")
		}
		profile.StoreName = name
	}
	if req.Description != nil {
		profile.Description = *req.Description
	}
	if req.Category != nil {
		profile.Category = *req.Category
	}
	if req.Logo != nil {
		profile.Logo = *req.Logo
	}
	if req.IsApproved != nil {
		if !isAdmin {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only admins may change approval")
		}
		profile.IsApproved = *req.IsApproved
	}

	updated, err := s.repo.Save(ctx, profile)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save profile")
	}
	return FromModel(updated), nil
}

func (s *service) ListApproved(ctx context.Context) (*ListResponse, error) {
	profiles, err := s.repo.ListApproved(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list vendors")
	}
	return &ListResponse{
		Count:   len(profiles),
		Vendors: FromModels(profiles),
	}, nil
}
