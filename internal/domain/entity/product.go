package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Condiciones de producto mostradas en el catálogo.
const (
	ConditionNew  = "Baru"
	ConditionUsed = "Bekas"
)

// EcommerceLink enlace del producto en un marketplace externo (Tokopedia, Shopee...).
type EcommerceLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Product representa un artículo del catálogo.
// Slug se deriva del nombre al crear; no se garantiza único.
type Product struct {
	ID             string
	Name           string
	Slug           string
	Category       string
	Price          decimal.Decimal
	Stock          int
	Description    string
	Condition      string
	Images         []string
	EcommerceLinks []EcommerceLink
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
