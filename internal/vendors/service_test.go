package vendors

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/vendorlink/ondemand-backend/pkg/db/models"
	"github.com/vendorlink/ondemand-backend/pkg/enums"
	pkgerrors "github.com/vendorlink/ondemand-backend/pkg/errors"
	"gorm.io/gorm"
)

func TestCreateProfile(t *testing.T) {
	repo := newStubProfileRepo()
	svc := mustService(t, repo)
	userID := uuid.New()

	dto, err := svc.CreateProfile(context.Background(), userID, CreateProfileRequest{
		StoreName:   "  Maria's Plants  ",
		Description: "Potted plants and care",
		Category:    "gardening",
	})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if dto.StoreName != "Maria's Plants" {
		t.Fatalf("expected trimmed store name, got %q", dto.StoreName)
	}
	if dto.IsApproved {
		t.Fatalf("new profiles must start unapproved")
	}

	_, err = svc.CreateProfile(context.Background(), userID, CreateProfileRequest{StoreName: "Second Store"})
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestUpdateProfileOwnerAllowList(t *testing.T) {
	repo := newStubProfileRepo()
	svc := mustService(t, repo)
	ownerID := uuid.New()
	profile := repo.seed(&models.VendorProfile{
		ID:        uuid.New(),
		UserID:    ownerID,
		StoreName: "Old Name",
	})

	newName := "New Name"
	newDesc := "Updated description"
	dto, err := svc.UpdateProfile(context.Background(), profile.ID, ownerID, enums.UserRoleVendor, UpdateProfileRequest{
		StoreName:   &newName,
		Description: &newDesc,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if dto.StoreName != newName || dto.Description != newDesc {
		t.Fatalf("expected updated fields, got %+v", dto)
	}

	blank := "   "
	_, err = svc.UpdateProfile(context.Background(), profile.ID, ownerID, enums.UserRoleVendor, UpdateProfileRequest{StoreName: &blank})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateProfileApprovalIsAdminOnly(t *testing.T) {
	repo := newStubProfileRepo()
	svc := mustService(t, repo)
	ownerID := uuid.New()
	profile := repo.seed(&models.VendorProfile{
		ID:     uuid.New(),
		UserID: ownerID,
	})

	approved := true
	_, err := svc.UpdateProfile(context.Background(), profile.ID, ownerID, enums.UserRoleVendor, UpdateProfileRequest{IsApproved: &approved})
	assertCode(t, err, pkgerrors.CodeForbidden)

	dto, err := svc.UpdateProfile(context.Background(), profile.ID, uuid.New(), enums.UserRoleAdmin, UpdateProfileRequest{IsApproved: &approved})
	if err != nil {
		t.Fatalf("admin approval: %v", err)
	}
	if !dto.IsApproved {
		t.Fatalf("expected profile to be approved")
	}
}

func TestUpdateProfileStrangerForbidden(t *testing.T) {
	repo := newStubProfileRepo()
	svc := mustService(t, repo)
	profile := repo.seed(&models.VendorProfile{
		ID:     uuid.New(),
		UserID: uuid.New(),
	})

	desc := "not yours"
	_, err := svc.UpdateProfile(context.Background(), profile.ID, uuid.New(), enums.UserRoleCustomer, UpdateProfileRequest{Description: &desc})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestListApprovedFiltersUnapproved(t *testing.T) {
	repo := newStubProfileRepo()
	svc := mustService(t, repo)
	repo.seed(&models.VendorProfile{ID: uuid.New(), UserID: uuid.New(), StoreName: "Approved", IsApproved: true})
	repo.seed(&models.VendorProfile{ID: uuid.New(), UserID: uuid.New(), StoreName: "Pending"})

	resp, err := svc.ListApproved(context.Background())
	if err != nil {
		t.Fatalf("list approved: %v", err)
	}
	if resp.Count != 1 || len(resp.Vendors) != 1 {
		t.Fatalf("expected one approved vendor, got %d", resp.Count)
	}
	if resp.Vendors[0].StoreName != "Approved" {
		t.Fatalf("expected approved vendor, got %q", resp.Vendors[0].StoreName)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	svc := mustService(t, newStubProfileRepo())

	_, err := svc.GetProfile(context.Background(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func mustService(t *testing.T, repo profileRepository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != code {
		t.Fatalf("expected %s error, got %v", code, err)
	}
}

type stubProfileRepo struct {
	byID map[uuid.UUID]*models.VendorProfile
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{byID: make(map[uuid.UUID]*models.VendorProfile)}
}

func (s *stubProfileRepo) seed(profile *models.VendorProfile) *models.VendorProfile {
	s.byID[profile.ID] = profile
	return profile
}

func (s *stubProfileRepo) Create(ctx context.Context, profile *models.VendorProfile) (*models.VendorProfile, error) {
	profile.ID = uuid.New()
	s.byID[profile.ID] = profile
	return profile, nil
}

func (s *stubProfileRepo) Save(ctx context.Context, profile *models.VendorProfile) (*models.VendorProfile, error) {
	s.byID[profile.ID] = profile
	return profile, nil
}

func (s *stubProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.VendorProfile, error) {
	profile, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (s *stubProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.VendorProfile, error) {
	for _, profile := range s.byID {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProfileRepo) ListApproved(ctx context.Context) ([]models.VendorProfile, error) {
	var out []models.VendorProfile
	for _, profile := range s.byID {
		if profile.IsApproved {
			out = append(out, *profile)
		}
	}
	return out, nil
}
