package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Product struct {
	ID          uuid.UUID `json:"id"`
	CategoryID  uuid.UUID `json:"category_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Discount    float64   `json:"discount"`
	Pictures    []string  `json:"pictures"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Category    *Category `json:"category,omitempty"`
}

// Thumbnail returns the first picture reference, if any.
func (p *Product) Thumbnail() string {
	if len(p.Pictures) == 0 {
		return ""
	}

	return p.Pictures[0]
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// Discount is a percentage and is validated to [0, 100] here, at the catalog
// boundary. The cart engine passes it through arithmetically.
type CreateProductRequest struct {
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
	Title       string    `json:"title" validate:"required,min=3,max=200"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price" validate:"gte=0"`
	Discount    float64   `json:"discount" validate:"gte=0,lte=100"`
	Pictures    []string  `json:"pictures,omitempty" validate:"omitempty,dive,max=500"`
}

type UpdateProductRequest struct {
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string    `json:"description,omitempty"`
	Price       *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	Discount    *float64   `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	Pictures    []string   `json:"pictures,omitempty" validate:"omitempty,dive,max=500"`
}

type ProductPage struct {
	Products    []*Product `json:"products"`
	TotalPages  int        `json:"total_pages"`
	CurrentPage int        `json:"current_page"`
}
