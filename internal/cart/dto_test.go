package cart

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vendorlink/ondemand-backend/api/validators"
)

func TestUpdateItemRequestAcceptsZeroQuantity(t *testing.T) {
	req := httptest.NewRequest("PUT", "/api/cart/item", strings.NewReader(`{"quantity":0}`))

	var body UpdateItemRequest
	if err := validators.DecodeJSONBody(req, &body); err != nil {
		t.Fatalf("quantity 0 must decode verbatim, got %v", err)
	}
	if body.Quantity != 0 {
		t.Fatalf("expected quantity 0, got %d", body.Quantity)
	}
}

func TestAddItemRequestStillRequiresPositiveQuantity(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/cart", strings.NewReader(`{"productId":"5f1c9e74-6c8f-4f8d-9f2a-1f2e3d4c5b6a","quantity":0}`))

	var body AddItemRequest
	if err := validators.DecodeJSONBody(req, &body); err == nil {
		t.Fatal("expected add to reject quantity 0")
	}
}
