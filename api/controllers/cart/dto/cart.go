package cartdto

import (
	"github.com/mobicorp/spaceplanner-backend/internal/inventory"
)

// LineRequest is one entry of a full cart replacement.
type LineRequest struct {
	ProductID string `json:"productId" validate:"required,max=64"`
	Qty       int    `json:"qty" validate:"gte=0,lte=9999"`
}

// ReplaceCartRequest is the body of PUT /api/carts/{cartId}.
type ReplaceCartRequest struct {
	Items []LineRequest `json:"items" validate:"max=200,dive"`
}

// AddItemRequest is the body of POST /api/carts/{cartId}/items.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required,max=64"`
}

// SetQuantityRequest is the body of PATCH /api/carts/{cartId}/items/{productId}.
type SetQuantityRequest struct {
	Qty *int `json:"qty" validate:"required,lte=9999"`
}

type CartLine struct {
	ProductID string             `json:"productId"`
	Qty       int                `json:"qty"`
	Product   *inventory.Product `json:"product,omitempty"`
}

// Cart is the cart snapshot returned by every cart endpoint.
type Cart struct {
	CartID     string     `json:"cartId"`
	Items      []CartLine `json:"items"`
	TotalItems int        `json:"totalItems"`
}

type OrderSummary struct {
	CartID     string `json:"cartId"`
	Text       string `json:"text"`
	URL        string `json:"url"`
	TotalItems int    `json:"totalItems"`
}
