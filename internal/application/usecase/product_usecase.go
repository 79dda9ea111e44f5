package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/dto"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/servicerequest"
	"github.com/irvanshandika/PUSCOM-sub000/pkg/slug"
)

// Paginación del catálogo.
const (
	CatalogDefaultLimit = 12
	CatalogMaxLimit     = 48
)

// ProductImagePrefix prefijo de las fotos de producto.
const ProductImagePrefix = "products/"

// ProductUseCase catálogo público y CRUD del panel de productos.
type ProductUseCase struct {
	repo       repository.ProductRepository
	storage    ports.ObjectStorage
	activities *ActivityUseCase
	log        zerolog.Logger
	now        func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, storage ports.ObjectStorage, activities *ActivityUseCase, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, storage: storage, activities: activities, log: log, now: time.Now}
}

// List busca en el catálogo con filtros, orden y paginación.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	q.Normalize(CatalogDefaultLimit, CatalogMaxLimit)

	f := repository.ProductFilter{
		Query:     strings.TrimSpace(q.Q),
		Category:  strings.TrimSpace(q.Category),
		Condition: strings.TrimSpace(q.Condition),
		Sort:      q.Sort,
		Limit:     q.Limit,
		Offset:    q.Offset(),
	}
	switch f.Sort {
	case repository.SortNewest, repository.SortPriceAsc, repository.SortPriceDesc, repository.SortName:
	case "":
		f.Sort = repository.SortNewest
	default:
		return nil, fmt.Errorf("%w: sort desconocido %q", domain.ErrInvalidInput, q.Sort)
	}
	var err error
	if f.MinPrice, err = parsePrice(q.MinPrice, "min_price"); err != nil {
		return nil, err
	}
	if f.MaxPrice, err = parsePrice(q.MaxPrice, "max_price"); err != nil {
		return nil, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return nil, fmt.Errorf("%w: min_price mayor que max_price", domain.ErrInvalidInput)
	}

	list, total, err := uc.repo.Search(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("buscar productos: %w", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.NewPageResponse(q.PageRequest, total)}, nil
}

func parsePrice(raw, field string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil, fmt.Errorf("%w: %s inválido", domain.ErrInvalidInput, field)
	}
	return &d, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// GetBySlug obtiene un producto por slug (página de detalle).
func (uc *ProductUseCase) GetBySlug(ctx context.Context, s string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetBySlug(ctx, s)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// Categories categorías distintas presentes en el catálogo.
func (uc *ProductUseCase) Categories(ctx context.Context) ([]string, error) {
	return uc.repo.Categories(ctx)
}

// Slugs lista de slugs para el sitemap.
func (uc *ProductUseCase) Slugs(ctx context.Context) ([]repository.ProductSlug, error) {
	return uc.repo.ListSlugs(ctx)
}

// Create crea un producto; el slug se genera desde el nombre.
func (uc *ProductUseCase) Create(ctx context.Context, actorUID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	id := uuid.New().String()
	s, err := uc.uniqueSlug(ctx, in.Name, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	p := &entity.Product{
		ID:             id,
		Name:           strings.TrimSpace(in.Name),
		Slug:           s,
		Category:       strings.TrimSpace(in.Category),
		Price:          in.Price,
		Stock:          in.Stock,
		Description:    in.Description,
		Condition:      in.Condition,
		Images:         nonNilStrings(in.Images),
		EcommerceLinks: toEntityLinks(in.EcommerceLinks),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.activities.Record(ctx, actorUID, "Produk ditambahkan", fmt.Sprintf("Produk %q ditambahkan ke katalog", p.Name))
	return toProductResponse(p), nil
}

// Update actualiza un producto; el slug se regenera si cambia el nombre.
func (uc *ProductUseCase) Update(ctx context.Context, actorUID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) != p.Name {
		s, err := uc.uniqueSlug(ctx, *in.Name, p.ID)
		if err != nil {
			return nil, err
		}
		p.Name = strings.TrimSpace(*in.Name)
		p.Slug = s
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
		}
		p.Price = *in.Price
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Condition != nil {
		p.Condition = *in.Condition
	}
	if in.Images != nil {
		p.Images = nonNilStrings(*in.Images)
	}
	if in.EcommerceLinks != nil {
		p.EcommerceLinks = toEntityLinks(*in.EcommerceLinks)
	}
	p.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.activities.Record(ctx, actorUID, "Produk diperbarui", fmt.Sprintf("Produk %q diperbarui", p.Name))
	return toProductResponse(p), nil
}

// uniqueSlug genera el slug del nombre; si ya lo usa otro producto añade los primeros
// caracteres del ID ("laptop-asus" -> "laptop-asus-3f9a1c2b").
func (uc *ProductUseCase) uniqueSlug(ctx context.Context, name, id string) (string, error) {
	s := slug.Generate(name)
	if s == "" {
		return "", fmt.Errorf("%w: el nombre no genera un slug válido", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetBySlug(ctx, s)
	if err != nil {
		return "", fmt.Errorf("buscar slug: %w", err)
	}
	if existing == nil || existing.ID == id {
		return s, nil
	}
	return slug.WithSuffix(name, strings.ReplaceAll(id, "-", "")[:8]), nil
}

// UpdateStock ajusta el stock de un producto.
func (uc *ProductUseCase) UpdateStock(ctx context.Context, id string, stock int) (*dto.ProductResponse, error) {
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock no puede ser negativo", domain.ErrInvalidInput)
	}
	if err := uc.repo.UpdateStock(ctx, id, stock); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina un producto y luego sus fotos almacenadas.
func (uc *ProductUseCase) Delete(ctx context.Context, actorUID, id string) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	for _, u := range p.Images {
		key, ok := uc.storage.KeyFromURL(u)
		if !ok {
			continue
		}
		if err := uc.storage.Delete(ctx, key); err != nil {
			// el barrido de huérfanos lo recogerá
			uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo eliminar la foto del producto")
		}
	}
	uc.activities.Record(ctx, actorUID, "Produk dihapus", fmt.Sprintf("Produk %q dihapus", p.Name))
	return nil
}

// UploadImage guarda una foto de producto bajo "products/{timestamp}_{filename}".
// La URL devuelta se asocia luego al producto con Create/Update.
func (uc *ProductUseCase) UploadImage(ctx context.Context, f dto.FileInput) (*dto.UploadResponse, error) {
	key := fmt.Sprintf("%s%d_%s", ProductImagePrefix, uc.now().UnixMilli(), servicerequest.SanitizeFilename(f.Filename))
	obj, err := putImage(ctx, uc.storage, key, f, servicerequest.MaxImageBytes)
	if err != nil {
		return nil, err
	}
	return &dto.UploadResponse{URL: obj.URL, Key: obj.Key}, nil
}

func nonNilStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func toEntityLinks(in []dto.EcommerceLinkDTO) []entity.EcommerceLink {
	out := make([]entity.EcommerceLink, 0, len(in))
	for _, l := range in {
		out = append(out, entity.EcommerceLink{Platform: l.Platform, URL: l.URL})
	}
	return out
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	links := make([]dto.EcommerceLinkDTO, 0, len(p.EcommerceLinks))
	for _, l := range p.EcommerceLinks {
		links = append(links, dto.EcommerceLinkDTO{Platform: l.Platform, URL: l.URL})
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Category:       p.Category,
		Price:          p.Price,
		Stock:          p.Stock,
		Description:    p.Description,
		Condition:      p.Condition,
		Images:         images,
		EcommerceLinks: links,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
