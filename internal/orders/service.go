package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorlink/ondemand-backend/internal/cart"
	"github.com/vendorlink/ondemand-backend/pkg/db/models"
	"github.com/vendorlink/ondemand-backend/pkg/enums"
	pkgerrors "github.com/vendorlink/ondemand-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the orders controller.
type Service interface {
	Place(ctx context.Context, customerID uuid.UUID) (*OrderDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]OrderDTO, error)
	ListForVendor(ctx context.Context, callerUserID uuid.UUID) ([]OrderDTO, error)
	UpdateStatus(ctx context.Context, id, callerUserID uuid.UUID, req UpdateStatusRequest) (*OrderDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type vendorResolver interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.VendorProfile, error)
}

type service struct {
	tx      txRunner
	repo    Repository
	carts   cart.CartRepository
	vendors vendorResolver
}

// ServiceParams bundles the dependencies required to build an orders service.
type ServiceParams struct {
	TX         txRunner
	Repo       Repository
	CartRepo   cart.CartRepository
	VendorRepo vendorResolver
}

// NewService constructs an orders service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.TX == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.VendorRepo == nil {
		return nil, fmt.Errorf("vendor repository is required")
	}
	return &service{tx: params.TX, repo: params.Repo, carts: params.CartRepo, vendors: params.VendorRepo}, nil
}

// Place snapshots the customer's cart into an order and clears the cart, all
// inside one transaction so a failed clear never leaves a placed order behind.
func (s *service) Place(ctx context.Context, customerID uuid.UUID) (*OrderDTO, error) {
	var placed *models.Order

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.carts.WithTx(tx)
		orderRepo := s.repo.WithTx(tx)

		current, err := cartRepo.FindByCustomer(ctx, customerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}
		if len(current.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		var vendorID uuid.UUID
		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(current.Items))
		for i := range current.Items {
			line := &current.Items[i]
			if line.Product == nil {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			if i == 0 {
				vendorID = line.Product.VendorID
			} else if line.Product.VendorID != vendorID {
				return pkgerrors.New(pkgerrors.CodeValidation, "cart items must belong to a single vendor")
			}
			lineTotal := line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(lineTotal)
			items = append(items, models.OrderItem{
				ProductID: line.ProductID,
				Name:      line.Product.Name,
				UnitPrice: line.Product.Price,
				Quantity:  line.Quantity,
			})
		}

		order, err := orderRepo.Create(ctx, &models.Order{
			CustomerID:  customerID,
			VendorID:    vendorID,
			TotalAmount: total,
			Status:      enums.OrderStatusPending,
			Items:       items,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}

		if err := cartRepo.ClearItems(ctx, current.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(placed), nil
}

// Get returns the order to any authenticated caller.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

func (s *service) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]OrderDTO, error) {
	rows, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return FromModels(rows), nil
}

func (s *service) ListForVendor(ctx context.Context, callerUserID uuid.UUID) ([]OrderDTO, error) {
	vendor, err := s.callerVendor(ctx, callerUserID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByVendor(ctx, vendor.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list vendor orders")
	}
	return FromModels(rows), nil
}

func (s *service) UpdateStatus(ctx context.Context, id, callerUserID uuid.UUID, req UpdateStatusRequest) (*OrderDTO, error) {
	status, err := enums.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	vendor, err := s.callerVendor(ctx, callerUserID)
	if err != nil {
		return nil, err
	}
	if vendor.ID != order.VendorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the receiving vendor")
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update status")
	}
	order.Status = status
	return FromModel(order), nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return order, nil
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
