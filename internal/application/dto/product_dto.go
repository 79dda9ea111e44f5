package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EcommerceLinkDTO enlace a marketplace.
type EcommerceLinkDTO struct {
	Platform string `json:"platform" validate:"required,max=50"`
	URL      string `json:"url" validate:"required,url"`
}

// CreateProductRequest entrada para crear un producto. El slug se genera desde el nombre.
type CreateProductRequest struct {
	Name           string             `json:"name" validate:"required,min=1,max=200"`
	Category       string             `json:"category" validate:"required,max=100"`
	Price          decimal.Decimal    `json:"price"`
	Stock          int                `json:"stock" validate:"min=0"`
	Description    string             `json:"description" validate:"max=5000"`
	Condition      string             `json:"condition" validate:"required,oneof=Baru Bekas"`
	Images         []string           `json:"images" validate:"max=10"`
	EcommerceLinks []EcommerceLinkDTO `json:"ecommerce_links" validate:"dive"`
}

// UpdateProductRequest entrada para actualizar un producto (nil = sin cambio).
type UpdateProductRequest struct {
	Name           *string             `json:"name" validate:"omitempty,min=1,max=200"`
	Category       *string             `json:"category" validate:"omitempty,max=100"`
	Price          *decimal.Decimal    `json:"price"`
	Description    *string             `json:"description" validate:"omitempty,max=5000"`
	Condition      *string             `json:"condition" validate:"omitempty,oneof=Baru Bekas"`
	Images         *[]string           `json:"images" validate:"omitempty,max=10"`
	EcommerceLinks *[]EcommerceLinkDTO `json:"ecommerce_links" validate:"omitempty,dive"`
}

// UpdateStockRequest ajuste directo del stock.
type UpdateStockRequest struct {
	Stock *int `json:"stock" validate:"required,min=0"`
}

// ProductListQuery parámetros del catálogo público.
type ProductListQuery struct {
	PageRequest
	Q         string `query:"q"`
	Category  string `query:"category"`
	Condition string `query:"condition"`
	MinPrice  string `query:"min_price"`
	MaxPrice  string `query:"max_price"`
	Sort      string `query:"sort"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Slug           string             `json:"slug"`
	Category       string             `json:"category"`
	Price          decimal.Decimal    `json:"price"`
	Stock          int                `json:"stock"`
	Description    string             `json:"description"`
	Condition      string             `json:"condition"`
	Images         []string           `json:"images"`
	EcommerceLinks []EcommerceLinkDTO `json:"ecommerce_links"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// UploadResponse URL pública de un archivo subido.
type UploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}
