package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorlink/ondemand-backend/pkg/db/models"
	pkgerrors "github.com/vendorlink/ondemand-backend/pkg/errors"
	"gorm.io/gorm"
)

func TestGetReturnsEmptyCartForNewCustomer(t *testing.T) {
	svc, _, _ := buildTestService(t)
	customerID := uuid.New()

	dto, err := svc.Get(context.Background(), customerID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if dto.ID != nil {
		t.Fatalf("expected synthetic cart without id, got %v", dto.ID)
	}
	if dto.CustomerID != customerID {
		t.Fatalf("expected customer id %s, got %s", customerID, dto.CustomerID)
	}
	if len(dto.Items) != 0 {
		t.Fatalf("expected empty items, got %d", len(dto.Items))
	}
}

func TestAddItemCreatesCartLazily(t *testing.T) {
	svc, _, products := buildTestService(t)
	product := products.seed("Espresso Beans", "4.25")
	customerID := uuid.New()

	dto, err := svc.AddItem(context.Background(), customerID, AddItemRequest{
		ProductID: product.ID,
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if dto.ID == nil {
		t.Fatalf("expected persisted cart id")
	}
	if len(dto.Items) != 1 || dto.Items[0].Quantity != 2 {
		t.Fatalf("expected one line with quantity 2, got %+v", dto.Items)
	}
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	svc, _, products := buildTestService(t)
	product := products.seed("Espresso Beans", "4.25")
	customerID := uuid.New()

	if _, err := svc.AddItem(context.Background(), customerID, AddItemRequest{ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	dto, err := svc.AddItem(context.Background(), customerID, AddItemRequest{ProductID: product.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(dto.Items) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(dto.Items))
	}
	if dto.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5 after merge, got %d", dto.Items[0].Quantity)
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _, _ := buildTestService(t)

	_, err := svc.AddItem(context.Background(), uuid.New(), AddItemRequest{ProductID: uuid.New(), Quantity: 1})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestAddItemRejectsZeroQuantity(t *testing.T) {
	svc, _, products := buildTestService(t)
	product := products.seed("Espresso Beans", "4.25")

	_, err := svc.AddItem(context.Background(), uuid.New(), AddItemRequest{ProductID: product.ID, Quantity: 0})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateItemSetsQuantityVerbatim(t *testing.T) {
	svc, _, products := buildTestService(t)
	product := products.seed("Tea Sampler", "9.99")
	customerID := uuid.New()

	added, err := svc.AddItem(context.Background(), customerID, AddItemRequest{ProductID: product.ID, Quantity: 4})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	dto, err := svc.UpdateItem(context.Background(), customerID, added.Items[0].ID, UpdateItemRequest{Quantity: 1})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if dto.Items[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", dto.Items[0].Quantity)
	}
}

func TestUpdateItemForeignCart(t *testing.T) {
	svc, _, products := buildTestService(t)
	product := products.seed("Tea Sampler", "9.99")
	owner := uuid.New()

	added, err := svc.AddItem(context.Background(), owner, AddItemRequest{ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	_, err = svc.UpdateItem(context.Background(), uuid.New(), added.Items[0].ID, UpdateItemRequest{Quantity: 2})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestRemoveItemAndClear(t *testing.T) {
	svc, _, products := buildTestService(t)
	first := products.seed("Mug", "8.00")
	second := products.seed("Saucer", "5.00")
	customerID := uuid.New()

	if _, err := svc.AddItem(context.Background(), customerID, AddItemRequest{ProductID: first.ID, Quantity: 1}); err != nil {
		t.Fatalf("add first: %v", err)
	}
	added, err := svc.AddItem(context.Background(), customerID, AddItemRequest{ProductID: second.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add second: %v", err)
	}

	var saucerItem uuid.UUID
	for _, item := range added.Items {
		if item.ProductID == second.ID {
			saucerItem = item.ID
		}
	}

	dto, err := svc.RemoveItem(context.Background(), customerID, saucerItem)
	if err != nil {
		t.Fatalf("remove item: %v", err)
	}
	if len(dto.Items) != 1 || dto.Items[0].ProductID != first.ID {
		t.Fatalf("expected only the mug left, got %+v", dto.Items)
	}

	dto, err = svc.Clear(context.Background(), customerID)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(dto.Items) != 0 {
		t.Fatalf("expected empty cart after clear, got %d items", len(dto.Items))
	}
}

func TestClearWithoutCart(t *testing.T) {
	svc, _, _ := buildTestService(t)

	_, err := svc.Clear(context.Background(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func buildTestService(t *testing.T) (Service, *stubCartRepo, *stubProductRepo) {
	t.Helper()
	repo := newStubCartRepo()
	products := newStubProductRepo()
	repo.products = products
	svc, err := NewService(ServiceParams{Repo: repo, ProductRepo: products})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, repo, products
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

type stubProductRepo struct {
	byID map[uuid.UUID]*models.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[uuid.UUID]*models.Product)}
}

func (s *stubProductRepo) seed(name, price string) *models.Product {
	product := &models.Product{
		ID:       uuid.New(),
		VendorID: uuid.New(),
		Name:     name,
		Price:    decimal.RequireFromString(price),
	}
	s.byID[product.ID] = product
	return product
}

func (s *stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

// stubCartRepo keeps carts and line items in memory, mirroring the read
// behavior of the persistent repo closely enough for service tests.
type stubCartRepo struct {
	carts    map[uuid.UUID]*models.Cart
	items    map[uuid.UUID]*models.CartItem
	order    []uuid.UUID
	products *stubProductRepo
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{
		carts: make(map[uuid.UUID]*models.Cart),
		items: make(map[uuid.UUID]*models.CartItem),
	}
}

func (s *stubCartRepo) Create(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	cart.ID = uuid.New()
	s.carts[cart.CustomerID] = cart
	return cart, nil
}

func (s *stubCartRepo) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {
	cart, ok := s.carts[customerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	loaded := &models.Cart{ID: cart.ID, CustomerID: cart.CustomerID}
	for _, id := range s.order {
		item, ok := s.items[id]
		if !ok || item.CartID != cart.ID {
			continue
		}
		line := *item
		if product, ok := s.products.byID[item.ProductID]; ok {
			line.Product = product
		}
		loaded.Items = append(loaded.Items, line)
	}
	return loaded, nil
}

func (s *stubCartRepo) FindItem(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error) {
	item, ok := s.items[itemID]
	if !ok || item.CartID != cartID {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (s *stubCartRepo) CreateItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	item.ID = uuid.New()
	s.items[item.ID] = item
	s.order = append(s.order, item.ID)
	return item, nil
}

func (s *stubCartRepo) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	item, ok := s.items[itemID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.Quantity = quantity
	return nil
}

func (s *stubCartRepo) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	delete(s.items, itemID)
	return nil
}

func (s *stubCartRepo) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	for id, item := range s.items {
		if item.CartID == cartID {
			delete(s.items, id)
		}
	}
	return nil
}
