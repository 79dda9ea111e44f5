package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var products = table[entity.Product]{
	name: "products",
	columns: []string{
		"id", "name", "slug", "category", "price", "stock", "description", "condition",
		"images", "ecommerce_links", "created_at", "updated_at",
	},
	scan: func(row pgx.Row) (*entity.Product, error) {
		var p entity.Product
		if err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Category, &p.Price, &p.Stock, &p.Description,
			&p.Condition, &p.Images, &p.EcommerceLinks, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		return &p, nil
	},
	values: func(p *entity.Product) []any {
		return []any{p.ID, p.Name, p.Slug, p.Category, p.Price, p.Stock, p.Description, p.Condition,
			nonNil(p.Images), nonNil(p.EcommerceLinks), p.CreatedAt, p.UpdatedAt}
	},
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return products.insert(ctx, r.q, p)
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return products.getByID(ctx, r.q, id)
}

// GetBySlug el slug no es único; devuelve el más reciente.
func (r *ProductRepo) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	return products.get(ctx, r.q, "slug = $1 ORDER BY created_at DESC LIMIT 1", slug)
}

// Update actualiza los campos editables; ErrNotFound si el producto no existe.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET name = $2, slug = $3, category = $4, price = $5, stock = $6, description = $7,
			condition = $8, images = $9, ecommerce_links = $10, updated_at = $11
		WHERE id = $1`,
		p.ID, p.Name, p.Slug, p.Category, p.Price, p.Stock, p.Description, p.Condition,
		nonNil(p.Images), nonNil(p.EcommerceLinks), p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock fija el stock del producto.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return products.deleteByID(ctx, r.q, id)
}

// Search filtra, ordena y pagina el catálogo. Devuelve también el total sin paginar.
func (r *ProductRepo) Search(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var w where
	w.add("TRUE")
	if f.Query != "" {
		pat := likePattern(f.Query)
		w.add("(name ILIKE ? OR description ILIKE ?)", pat, pat)
	}
	if f.Category != "" {
		w.add("category = ?", f.Category)
	}
	if f.Condition != "" {
		w.add("condition = ?", f.Condition)
	}
	if f.MinPrice != nil {
		w.add("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		w.add("price <= ?", *f.MaxPrice)
	}

	total, err := products.count(ctx, r.q, w.sql(), w.args...)
	if err != nil {
		return nil, 0, err
	}

	tail := fmt.Sprintf("WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d",
		w.sql(), productOrder(f.Sort), len(w.args)+1, len(w.args)+2)
	list, err := products.list(ctx, r.q, tail, append(w.args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func productOrder(sort string) string {
	switch sort {
	case repository.SortPriceAsc:
		return "price ASC, created_at DESC"
	case repository.SortPriceDesc:
		return "price DESC, created_at DESC"
	case repository.SortName:
		return "lower(name) ASC, created_at DESC"
	default:
		return "created_at DESC"
	}
}

// Categories categorías distintas en orden alfabético.
func (r *ProductRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// ListSlugs pares slug/fecha para el sitemap.
func (r *ProductRepo) ListSlugs(ctx context.Context) ([]repository.ProductSlug, error) {
	rows, err := r.q.Query(ctx, `SELECT slug, extract(epoch FROM updated_at)::bigint FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list slugs: %w", err)
	}
	defer rows.Close()
	var out []repository.ProductSlug
	for rows.Next() {
		var s repository.ProductSlug
		if err := rows.Scan(&s.Slug, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan slug: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Count total de productos.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	return products.count(ctx, r.q, "")
}
