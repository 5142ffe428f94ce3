package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vendorlink/ondemand-backend/pkg/db/models"
	"github.com/vendorlink/ondemand-backend/pkg/enums"
	pkgerrors "github.com/vendorlink/ondemand-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the bookings controller.
type Service interface {
	Create(ctx context.Context, customerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*BookingDTO, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]BookingDTO, error)
	ListForVendor(ctx context.Context, callerUserID uuid.UUID) ([]BookingDTO, error)
	UpdateStatus(ctx context.Context, id, callerUserID uuid.UUID, req UpdateStatusRequest) (*BookingDTO, error)
}

type bookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Booking, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus) error
}

type serviceResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
}

type vendorResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.VendorProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.VendorProfile, error)
}

type service struct {
	repo     bookingRepository
	services serviceResolver
	vendors  vendorResolver
}

// ServiceParams bundles the dependencies required to build a bookings service.
type ServiceParams struct {
	Repo        bookingRepository
	ServiceRepo serviceResolver
	VendorRepo  vendorResolver
}

// NewService constructs a bookings service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("booking repository is required")
	}
	if params.ServiceRepo == nil {
		return nil, fmt.Errorf("service repository is required")
	}
	if params.VendorRepo == nil {
		return nil, fmt.Errorf("vendor repository is required")
	}
	return &service{repo: params.Repo, services: params.ServiceRepo, vendors: params.VendorRepo}, nil
}

// Create resolves the service and its owning vendor, then snapshots the price
// into a pending booking.
func (s *service) Create(ctx context.Context, customerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	svc, err := s.services.FindByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load service")
	}

	if _, err := s.vendors.FindByID(ctx, svc.VendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load vendor")
	}

	booking, err := s.repo.Create(ctx, &models.Booking{
		CustomerID:  customerID,
		VendorID:    svc.VendorID,
		ServiceID:   svc.ID,
		ScheduledAt: req.ScheduledAt,
		TotalAmount: svc.Price,
		Status:      enums.BookingStatusPending,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create booking")
	}
	booking.Service = svc
	return FromModel(booking), nil
}

// Get returns the booking to any authenticated caller.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*BookingDTO, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(booking), nil
}

func (s *service) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]BookingDTO, error) {
	rows, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list bookings")
	}
	return FromModels(rows), nil
}

func (s *service) ListForVendor(ctx context.Context, callerUserID uuid.UUID) ([]BookingDTO, error) {
	vendor, err := s.callerVendor(ctx, callerUserID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByVendor(ctx, vendor.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list vendor bookings")
	}
	return FromModels(rows), nil
}

func (s *service) UpdateStatus(ctx context.Context, id, callerUserID uuid.UUID, req UpdateStatusRequest) (*BookingDTO, error) {
	status, err := enums.ParseBookingStatus(req.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid booking status")
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	vendor, err := s.callerVendor(ctx, callerUserID)
	if err != nil {
		return nil, err
	}
	if vendor.ID != booking.VendorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the receiving vendor")
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update status")
	}
	booking.Status = status
	return FromModel(booking), nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load booking")
	}
	return booking, nil
}

func (s *service) callerVendor(ctx context.Context, userID uuid.UUID) (*models.VendorProfile, error) {
	vendor, err := s.vendors.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load vendor profile")
	}
	return vendor, nil
}
