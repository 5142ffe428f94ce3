package products

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorlink/ondemand-backend/pkg/db/models"
	pkgerrors "github.com/vendorlink/ondemand-backend/pkg/errors"
	"gorm.io/gorm"
)

func TestCreateRequiresVendorProfile(t *testing.T) {
	svc, _, _ := buildTestService(t)

	_, err := svc.Create(context.Background(), uuid.New(), CreateProductRequest{
		Name:  "Orphan Product",
		Price: decimal.NewFromInt(10),
	})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestCreateAssignsCallerVendor(t *testing.T) {
	svc, _, vendors := buildTestService(t)
	vendor := vendors.seed(uuid.New())

	dto, err := svc.Create(context.Background(), vendor.UserID, CreateProductRequest{
		Name:  "  Ceramic Mug  ",
		Price: decimal.RequireFromString("12.50"),
		Stock: 5,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if dto.VendorID != vendor.ID {
		t.Fatalf("expected product owned by %s, got %s", vendor.ID, dto.VendorID)
	}
	if dto.Name != "Ceramic Mug" {
		t.Fatalf("expected trimmed name, got %q", dto.Name)
	}
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	svc, _, vendors := buildTestService(t)
	vendor := vendors.seed(uuid.New())

	_, err := svc.Create(context.Background(), vendor.UserID, CreateProductRequest{
		Name:  "Bad Price",
		Price: decimal.NewFromInt(-1),
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateOwnershipEnforced(t *testing.T) {
	svc, repo, vendors := buildTestService(t)
	owner := vendors.seed(uuid.New())
	stranger := vendors.seed(uuid.New())
	product := repo.seed(&models.Product{
		ID:       uuid.New(),
		VendorID: owner.ID,
		Name:     "Lamp",
		Price:    decimal.NewFromInt(30),
	})

	name := "Desk Lamp"
	_, err := svc.Update(context.Background(), product.ID, stranger.UserID, UpdateProductRequest{Name: &name})
	assertCode(t, err, pkgerrors.CodeForbidden)

	dto, err := svc.Update(context.Background(), product.ID, owner.UserID, UpdateProductRequest{Name: &name})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if dto.Name != name {
		t.Fatalf("expected renamed product, got %q", dto.Name)
	}
}

func TestUpdateRejectsNegativeStock(t *testing.T) {
	svc, repo, vendors := buildTestService(t)
	owner := vendors.seed(uuid.New())
	product := repo.seed(&models.Product{ID: uuid.New(), VendorID: owner.ID, Name: "Chair", Price: decimal.NewFromInt(45)})

	negative := -2
	_, err := svc.Update(context.Background(), product.ID, owner.UserID, UpdateProductRequest{Stock: &negative})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestDeleteRemovesOwnedProduct(t *testing.T) {
	svc, repo, vendors := buildTestService(t)
	owner := vendors.seed(uuid.New())
	product := repo.seed(&models.Product{ID: uuid.New(), VendorID: owner.ID, Name: "Rug", Price: decimal.NewFromInt(80)})

	if err := svc.Delete(context.Background(), product.ID, owner.UserID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err := svc.Get(context.Background(), product.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestListAppliesFilters(t *testing.T) {
	svc, repo, _ := buildTestService(t)
	vendorID := uuid.New()
	repo.seed(&models.Product{ID: uuid.New(), VendorID: vendorID, Name: "Walnut Table", Category: "furniture", Price: decimal.NewFromInt(250)})
	repo.seed(&models.Product{ID: uuid.New(), VendorID: vendorID, Name: "Oak Table", Category: "furniture", Price: decimal.NewFromInt(180)})
	repo.seed(&models.Product{ID: uuid.New(), VendorID: vendorID, Name: "Mug", Category: "kitchen", Price: decimal.NewFromInt(12)})

	min := decimal.NewFromInt(200)
	rows, err := svc.List(context.Background(), ListFilter{Category: "furniture", MinPrice: &min})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Walnut Table" {
		t.Fatalf("expected only the walnut table, got %+v", rows)
	}

	rows, err = svc.List(context.Background(), ListFilter{Search: "table"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected two tables, got %d", len(rows))
	}
}

func TestListByVendorUnknownVendor(t *testing.T) {
	svc, _, _ := buildTestService(t)

	_, err := svc.ListByVendor(context.Background(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func buildTestService(t *testing.T) (Service, *stubProductRepo, *stubVendorRepo) {
	t.Helper()
	repo := newStubProductRepo()
	vendors := newStubVendorRepo()
	svc, err := NewService(ServiceParams{Repo: repo, VendorRepo: vendors})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, repo, vendors
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
	byID  map[uuid.UUID]*models.Product
	order []uuid.UUID
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[uuid.UUID]*models.Product)}
}

func (s *stubProductRepo) seed(product *models.Product) *models.Product {
	s.byID[product.ID] = product
	s.order = append(s.order, product.ID)
	return product
}

func (s *stubProductRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.ID = uuid.New()
	return s.seed(product), nil
}

func (s *stubProductRepo) Save(ctx context.Context, product *models.Product) (*models.Product, error) {
	s.byID[product.ID] = product
	return product, nil
}

func (s *stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func (s *stubProductRepo) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	var out []models.Product
	for _, id := range s.order {
		p, ok := s.byID[id]
		if !ok {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && p.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubProductRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Product, error) {
	var out []models.Product
	for _, id := range s.order {
		if p, ok := s.byID[id]; ok && p.VendorID == vendorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.byID, id)
	return nil
}

type stubVendorRepo struct {
	byID map[uuid.UUID]*models.VendorProfile
}

func newStubVendorRepo() *stubVendorRepo {
	return &stubVendorRepo{byID: make(map[uuid.UUID]*models.VendorProfile)}
}

func (s *stubVendorRepo) seed(userID uuid.UUID) *models.VendorProfile {
	profile := &models.VendorProfile{ID: uuid.New(), UserID: userID, IsApproved: true}
	s.byID[profile.ID] = profile
	return profile
}

func (s *stubVendorRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.VendorProfile, error) {
	profile, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (s *stubVendorRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.VendorProfile, error) {
	for _, profile := range s.byID {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
