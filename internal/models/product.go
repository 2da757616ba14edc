package models

import "time"

// Product mirrors the storefront catalog rows: electrical goods with a
// struck-through original price and a percentage discount badge.
type Product struct {
	ID             string            `json:"id" bson:"product_id"`
	Name           string            `json:"name" bson:"name" validate:"required"`
	Description    string            `json:"description" bson:"description"`
	Category       string            `json:"category" bson:"category"`
	Price          float64           `json:"price" bson:"price" validate:"required,gt=0"`
	OriginalPrice  float64           `json:"originalPrice,omitempty" bson:"original_price,omitempty"`
	Discount       int               `json:"discount,omitempty" bson:"discount,omitempty"`
	ImageURL       string            `json:"imageUrl" bson:"image_url"`
	Features       []string          `json:"features,omitempty" bson:"features,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty" bson:"specifications,omitempty"`
	Rating         float64           `json:"rating,omitempty" bson:"rating,omitempty"`
	IsActive       bool              `json:"isActive" bson:"is_active"`
	CreatedAt      time.Time         `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time         `json:"updatedAt" bson:"updated_at"`
}

type UpdateProductInput struct {
	Name           string            `json:"name" bson:"name"`
	Description    string            `json:"description" bson:"description"`
	Category       string            `json:"category" bson:"category"`
	Price          float64           `json:"price" bson:"price"`
	OriginalPrice  float64           `json:"originalPrice" bson:"original_price"`
	Discount       int               `json:"discount" bson:"discount"`
	ImageURL       string            `json:"imageUrl" bson:"image_url"`
	Features       []string          `json:"features" bson:"features"`
	Specifications map[string]string `json:"specifications" bson:"specifications"`
	IsActive       bool              `json:"isActive" bson:"is_active"`
}
