package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorlink/ondemand-backend/pkg/db/models"
	"github.com/vendorlink/ondemand-backend/pkg/enums"
	pkgerrors "github.com/vendorlink/ondemand-backend/pkg/errors"
	"gorm.io/gorm"
)

func TestCreateSnapshotsServicePrice(t *testing.T) {
	vendor := &models.VendorProfile{ID: uuid.New(), UserID: uuid.New()}
	listing := &models.Service{
		ID:       uuid.New(),
		VendorID: vendor.ID,
		Name:     "Deep Cleaning",
		Price:    decimal.RequireFromString("75.00"),
	}
	svc, repo := buildTestService(t, listing, vendor)
	customerID := uuid.New()
	slot := time.Now().Add(48 * time.Hour).UTC()

	dto, err := svc.Create(context.Background(), customerID, CreateBookingRequest{
		ServiceID:   listing.ID,
		ScheduledAt: slot,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if dto.VendorID != vendor.ID {
		t.Fatalf("expected vendor %s, got %s", vendor.ID, dto.VendorID)
	}
	if !dto.TotalAmount.Equal(listing.Price) {
		t.Fatalf("expected price snapshot %s, got %s", listing.Price, dto.TotalAmount)
	}
	if dto.Status != enums.BookingStatusPending {
		t.Fatalf("expected pending booking, got %s", dto.Status)
	}
	if !dto.ScheduledAt.Equal(slot) {
		t.Fatalf("expected slot %s, got %s", slot, dto.ScheduledAt)
	}
	if repo.created == nil {
		t.Fatalf("expected booking persisted")
	}
}

func TestCreateUnknownService(t *testing.T) {
	svc, _ := buildTestService(t, nil, nil)

	_, err := svc.Create(context.Background(), uuid.New(), CreateBookingRequest{
		ServiceID:   uuid.New(),
		ScheduledAt: time.Now().Add(time.Hour),
	})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestGetReturnsBookingToAnyCaller(t *testing.T) {
	vendor := &models.VendorProfile{ID: uuid.New(), UserID: uuid.New()}
	booking := &models.Booking{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		VendorID:   vendor.ID,
		Status:     enums.BookingStatusPending,
	}
	svc, repo := buildTestService(t, nil, vendor)
	repo.created = booking

	got, err := svc.Get(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("get booking: %v", err)
	}
	if got.ID != booking.ID {
		t.Fatalf("expected booking %s got %s", booking.ID, got.ID)
	}

	_, err = svc.Get(context.Background(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateStatusOwningVendorOnly(t *testing.T) {
	vendorUserID := uuid.New()
	vendor := &models.VendorProfile{ID: uuid.New(), UserID: vendorUserID}
	booking := &models.Booking{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		VendorID:   uuid.New(),
		Status:     enums.BookingStatusPending,
	}
	svc, repo := buildTestService(t, nil, vendor)
	repo.created = booking

	_, err := svc.UpdateStatus(context.Background(), booking.ID, vendorUserID, UpdateStatusRequest{Status: "confirmed"})
	assertCode(t, err, pkgerrors.CodeForbidden)

	booking.VendorID = vendor.ID
	dto, err := svc.UpdateStatus(context.Background(), booking.ID, vendorUserID, UpdateStatusRequest{Status: "completed"})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if dto.Status != enums.BookingStatusCompleted {
		t.Fatalf("expected completed, got %s", dto.Status)
	}

	_, err = svc.UpdateStatus(context.Background(), booking.ID, vendorUserID, UpdateStatusRequest{Status: "rescheduled"})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func buildTestService(t *testing.T, listing *models.Service, vendor *models.VendorProfile) (Service, *stubBookingRepo) {
	t.Helper()
	repo := &stubBookingRepo{}
	svc, err := NewService(ServiceParams{
		Repo:        repo,
		ServiceRepo: stubServiceRepo{listing: listing},
		VendorRepo:  stubVendorRepo{vendor: vendor},
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, repo
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

type stubBookingRepo struct {
	created *models.Booking
}

func (s *stubBookingRepo) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	booking.ID = uuid.New()
	s.created = booking
	return booking, nil
}

func (s *stubBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	if s.created == nil || s.created.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.created, nil
}

func (s *stubBookingRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Booking, error) {
	if s.created != nil && s.created.CustomerID == customerID {
		return []models.Booking{*s.created}, nil
	}
	return nil, nil
}

func (s *stubBookingRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Booking, error) {
	if s.created != nil && s.created.VendorID == vendorID {
		return []models.Booking{*s.created}, nil
	}
	return nil, nil
}

func (s *stubBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus) error {
	if s.created != nil && s.created.ID == id {
		s.created.Status = status
	}
	return nil
}

type stubServiceRepo struct {
	listing *models.Service
}

func (s stubServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	if s.listing == nil || s.listing.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.listing, nil
}

type stubVendorRepo struct {
	vendor *models.VendorProfile
}

func (s stubVendorRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.VendorProfile, error) {
	if s.vendor == nil || s.vendor.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.vendor, nil
}

func (s stubVendorRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.VendorProfile, error) {
	if s.vendor == nil || s.vendor.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.vendor, nil
}
