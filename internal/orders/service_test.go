package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorlink/ondemand-backend/internal/cart"
	"github.com/vendorlink/ondemand-backend/pkg/db/models"
	"github.com/vendorlink/ondemand-backend/pkg/enums"
	pkgerrors "github.com/vendorlink/ondemand-backend/pkg/errors"
	"gorm.io/gorm"
)

func TestPlaceSnapshotsCartIntoOrder(t *testing.T) {
	customerID := uuid.New()
	vendorID := uuid.New()
	carts := &stubCartRepo{
		cart: &models.Cart{
			ID:         uuid.New(),
			CustomerID: customerID,
			Items: []models.CartItem{
				cartLine(vendorID, "Espresso Beans", "4.25", 2),
				cartLine(vendorID, "Filter Papers", "3.00", 1),
			},
		},
	}
	svc, repo := buildTestService(t, carts, nil)

	dto, err := svc.Place(context.Background(), customerID)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if dto.VendorID != vendorID {
		t.Fatalf("expected vendor %s, got %s", vendorID, dto.VendorID)
	}
	if dto.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending order, got %s", dto.Status)
	}
	if want := decimal.RequireFromString("11.50"); !dto.TotalAmount.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, dto.TotalAmount)
	}
	if len(dto.Items) != 2 {
		t.Fatalf("expected two snapshot lines, got %d", len(dto.Items))
	}
	if dto.Items[0].Name != "Espresso Beans" || !dto.Items[0].UnitPrice.Equal(decimal.RequireFromString("4.25")) {
		t.Fatalf("expected first line snapshot, got %+v", dto.Items[0])
	}
	if !carts.cleared {
		t.Fatalf("expected cart cleared after placement")
	}
	if repo.created == nil {
		t.Fatalf("expected order persisted")
	}
}

func TestPlaceRejectsEmptyCart(t *testing.T) {
	customerID := uuid.New()

	svc, _ := buildTestService(t, &stubCartRepo{}, nil)
	_, err := svc.Place(context.Background(), customerID)
	assertCode(t, err, pkgerrors.CodeValidation)

	svc, _ = buildTestService(t, &stubCartRepo{cart: &models.Cart{ID: uuid.New(), CustomerID: customerID}}, nil)
	_, err = svc.Place(context.Background(), customerID)
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestPlaceRejectsMultiVendorCart(t *testing.T) {
	customerID := uuid.New()
	carts := &stubCartRepo{
		cart: &models.Cart{
			ID:         uuid.New(),
			CustomerID: customerID,
			Items: []models.CartItem{
				cartLine(uuid.New(), "From Vendor A", "10.00", 1),
				cartLine(uuid.New(), "From Vendor B", "12.00", 1),
			},
		},
	}
	svc, repo := buildTestService(t, carts, nil)

	_, err := svc.Place(context.Background(), customerID)
	assertCode(t, err, pkgerrors.CodeValidation)
	if repo.created != nil {
		t.Fatalf("expected no order created for mixed cart")
	}
	if carts.cleared {
		t.Fatalf("expected cart untouched after rejection")
	}
}

func TestGetReturnsOrderToAnyCaller(t *testing.T) {
	vendor := &models.VendorProfile{ID: uuid.New(), UserID: uuid.New()}
	order := &models.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		VendorID:   vendor.ID,
		Status:     enums.OrderStatusPending,
	}
	svc, repo := buildTestService(t, &stubCartRepo{}, vendor)
	repo.created = order

	got, err := svc.Get(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.ID != order.ID {
		t.Fatalf("expected order %s got %s", order.ID, got.ID)
	}

	_, err = svc.Get(context.Background(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateStatusOwningVendorOnly(t *testing.T) {
	vendorUserID := uuid.New()
	vendor := &models.VendorProfile{ID: uuid.New(), UserID: vendorUserID}
	order := &models.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		VendorID:   uuid.New(), // someone else's order
		Status:     enums.OrderStatusPending,
	}
	svc, repo := buildTestService(t, &stubCartRepo{}, vendor)
	repo.created = order

	_, err := svc.UpdateStatus(context.Background(), order.ID, vendorUserID, UpdateStatusRequest{Status: "confirmed"})
	assertCode(t, err, pkgerrors.CodeForbidden)

	order.VendorID = vendor.ID
	dto, err := svc.UpdateStatus(context.Background(), order.ID, vendorUserID, UpdateStatusRequest{Status: "confirmed"})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if dto.Status != enums.OrderStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", dto.Status)
	}

	_, err = svc.UpdateStatus(context.Background(), order.ID, vendorUserID, UpdateStatusRequest{Status: "teleported"})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func buildTestService(t *testing.T, carts *stubCartRepo, vendor *models.VendorProfile) (Service, *stubOrderRepo) {
	t.Helper()
	repo := &stubOrderRepo{}
	svc, err := NewService(ServiceParams{
		TX:         stubTxRunner{},
		Repo:       repo,
		CartRepo:   carts,
		VendorRepo: stubVendorRepo{vendor: vendor},
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, repo
}

func cartLine(vendorID uuid.UUID, name, price string, quantity int) models.CartItem {
	productID := uuid.New()
	return models.CartItem{
		ID:        uuid.New(),
		ProductID: productID,
		Quantity:  quantity,
		Product: &models.Product{
			ID:       productID,
			VendorID: vendorID,
			Name:     name,
			Price:    decimal.RequireFromString(price),
		},
	}
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

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubOrderRepo struct {
	created *models.Order
}

func (s *stubOrderRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubOrderRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	order.ID = uuid.New()
	s.created = order
	return order, nil
}

func (s *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if s.created == nil || s.created.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.created, nil
}

func (s *stubOrderRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	if s.created != nil && s.created.CustomerID == customerID {
		return []models.Order{*s.created}, nil
	}
	return nil, nil
}

func (s *stubOrderRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Order, error) {
	if s.created != nil && s.created.VendorID == vendorID {
		return []models.Order{*s.created}, nil
	}
	return nil, nil
}

func (s *stubOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	if s.created != nil && s.created.ID == id {
		s.created.Status = status
	}
	return nil
}

type stubCartRepo struct {
	cart    *models.Cart
	cleared bool
}

func (s *stubCartRepo) WithTx(tx *gorm.DB) cart.CartRepository { return s }

func (s *stubCartRepo) Create(ctx context.Context, c *models.Cart) (*models.Cart, error) {
	s.cart = c
	return c, nil
}

func (s *stubCartRepo) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {
	if s.cart == nil || s.cart.CustomerID != customerID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.cart, nil
}

func (s *stubCartRepo) FindItem(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCartRepo) CreateItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	return item, nil
}

func (s *stubCartRepo) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return nil
}

func (s *stubCartRepo) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	return nil
}

func (s *stubCartRepo) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	s.cleared = true
	return nil
}

type stubVendorRepo struct {
	vendor *models.VendorProfile
}

func (s stubVendorRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.VendorProfile, error) {
	if s.vendor == nil || s.vendor.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.vendor, nil
}
