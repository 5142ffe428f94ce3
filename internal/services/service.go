package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vendorlink/ondemand-backend/pkg/db/models"
	pkgerrors "github.com/vendorlink/ondemand-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the services controller.
type Service interface {
	Create(ctx context.Context, callerUserID uuid.UUID, req CreateServiceRequest) (*ServiceDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ServiceDTO, error)
	List(ctx context.Context, filter ListFilter) ([]ServiceDTO, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]ServiceDTO, error)
	Update(ctx context.Context, id, callerUserID uuid.UUID, req UpdateServiceRequest) (*ServiceDTO, error)
	Delete(ctx context.Context, id, callerUserID uuid.UUID) error
}

type serviceRepository interface {
	Create(ctx context.Context, svc *models.Service) (*models.Service, error)
	Save(ctx context.Context, svc *models.Service) (*models.Service, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
	List(ctx context.Context, filter ListFilter) ([]models.Service, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type vendorResolver interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.VendorProfile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.VendorProfile, error)
}

type service struct {
	repo    serviceRepository
	vendors vendorResolver
}

// ServiceParams bundles the dependencies required to build a services service.
type ServiceParams struct {
	Repo       serviceRepository
	VendorRepo vendorResolver
}

// NewService constructs a services service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("service repository is required")
	}
	if params.VendorRepo == nil {
		return nil, fmt.Errorf("vendor repository is required")
	}
	return &service{repo: params.Repo, vendors: params.VendorRepo}, nil
}

func (s *service) Create(ctx context.Context, callerUserID uuid.UUID, req CreateServiceRequest) (*ServiceDTO, error) {
	vendor, err := s.callerVendor(ctx, callerUserID)
	if err != nil {
		return nil, err
	}
	if req.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	svc, err := s.repo.Create(ctx, &models.Service{
		VendorID:        vendor.ID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		DurationMinutes: req.DurationMinutes,
		Availability:    req.Availability,
		Images:          toStringArray(req.Images),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create service")
	}
	return FromModel(svc), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ServiceDTO, error) {
	svc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(svc), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]ServiceDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list services")
	}
	return FromModels(rows), nil
}

func (s *service) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]ServiceDTO, error) {
	if _, err := s.vendors.FindByID(ctx, vendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load vendor")
	}
	rows, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list vendor services")
	}
	return FromModels(rows), nil
}

func (s *service) Update(ctx context.Context, id, callerUserID uuid.UUID, req UpdateServiceRequest) (*ServiceDTO, error) {
	svc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnership(ctx, callerUserID, svc.VendorID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		svc.Name = name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		svc.Price = *req.Price
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "durationMinutes must not be negative")
		}
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.Availability != nil {
		svc.Availability = *req.Availability
	}
	if req.Images != nil {
		svc.Images = toStringArray(req.Images)
	}

	updated, err := s.repo.Save(ctx, svc)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save service")
	}
	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, id, callerUserID uuid.UUID) error {
	svc, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireOwnership(ctx, callerUserID, svc.VendorID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete service")
	}
	return nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load service")
	}
	return svc, nil
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

func (s *service) requireOwnership(ctx context.Context, callerUserID, vendorID uuid.UUID) error {
	vendor, err := s.callerVendor(ctx, callerUserID)
	if err != nil {
		return err
	}
	if vendor.ID != vendorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "not the listing owner")
	}
	return nil
}
