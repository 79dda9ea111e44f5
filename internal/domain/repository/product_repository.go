package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
)

// Orden del catálogo.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortName      = "name"
)

// ProductFilter criterios de búsqueda del catálogo público y del panel.
type ProductFilter struct {
	Query     string // contiene, sobre nombre o descripción (sin distinguir mayúsculas)
	Category  string
	Condition string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Sort      string
	Limit     int
	Offset    int
}

// ProductSlug par mínimo para construir el sitemap.
type ProductSlug struct {
	Slug      string
	UpdatedAt int64 // unix
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Get* devuelve (nil, nil) cuando no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id string, stock int) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, f ProductFilter) ([]*entity.Product, int, error)
	Categories(ctx context.Context) ([]string, error)
	ListSlugs(ctx context.Context) ([]ProductSlug, error)
	Count(ctx context.Context) (int, error)
}
