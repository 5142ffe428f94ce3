package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorlink/ondemand-backend/pkg/db/models"
)

// CartItemProduct is the product detail attached to a cart line.
type CartItemProduct struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Images []string        `json:"images"`
}

// CartItemDTO is one line of the cart in transport shape.
type CartItemDTO struct {
	ID        uuid.UUID        `json:"id"`
	ProductID uuid.UUID        `json:"productId"`
	Quantity  int              `json:"quantity"`
	Product   *CartItemProduct `json:"product,omitempty"`
}

// CartDTO is the customer's cart. ID is nil for the synthetic empty cart
// returned before any item has been added.
type CartDTO struct {
	ID         *uuid.UUID    `json:"id,omitempty"`
	CustomerID uuid.UUID     `json:"customerId"`
	Items      []CartItemDTO `json:"items"`
}

// AddItemRequest is the payload for adding a product to the cart.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// UpdateItemRequest sets a line's quantity verbatim. Zero is a legal value,
// so no validation tag here.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// EmptyCart is the synthetic response for customers without a persisted cart.
func EmptyCart(customerID uuid.UUID) *CartDTO {
	return &CartDTO{
		CustomerID: customerID,
		Items:      []CartItemDTO{},
	}
}

func FromModel(c *models.Cart) *CartDTO {
	if c == nil {
		return nil
	}
	id := c.ID
	dto := &CartDTO{
		ID:         &id,
		CustomerID: c.CustomerID,
		Items:      make([]CartItemDTO, 0, len(c.Items)),
	}
	for i := range c.Items {
		item := &c.Items[i]
		line := CartItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			line.Product = &CartItemProduct{
				ID:     item.Product.ID,
				Name:   item.Product.Name,
				Price:  item.Product.Price,
				Images: append([]string(nil), []string(item.Product.Images)...),
			}
		}
		dto.Items = append(dto.Items, line)
	}
	return dto
}
