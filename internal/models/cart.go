package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a stored line item: a product reference plus a quantity.
// Prices are never stored on the line; the catalog is joined in whenever a
// priced view is built, so catalog changes apply retroactively.
type CartItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// Cart is the owning record. Exactly one per user, created lazily on the
// first read or add.
type Cart struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PricedProduct is the catalog snapshot embedded in a priced line item.
type PricedProduct struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Price    float64   `json:"price"`
	Discount float64   `json:"discount"`
	Picture  string    `json:"picture,omitempty"`
}

// PricedLineItem joins a stored line item with current catalog data. It is
// derived on every read and never persisted.
type PricedLineItem struct {
	Product   PricedProduct `json:"product"`
	Quantity  int           `json:"quantity"`
	UnitPrice float64       `json:"unit_price"`
	Total     float64       `json:"total"`
}

type CartView struct {
	Items []PricedLineItem `json:"items"`
	Total float64          `json:"total"`
}

type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity"   validate:"required,min=1"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}
