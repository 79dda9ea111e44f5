package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/usecase"
	"github.com/irvanshandika/PUSCOM-sub000/internal/infrastructure/sitemap"
)

// SitemapHandler GET /sitemap.xml con las páginas públicas y el catálogo.
type SitemapHandler struct {
	products *usecase.ProductUseCase
	builder  *sitemap.Builder
}

// NewSitemapHandler construye el handler.
func NewSitemapHandler(products *usecase.ProductUseCase, builder *sitemap.Builder) *SitemapHandler {
	return &SitemapHandler{products: products, builder: builder}
}

// Get genera el documento en cada request (el catálogo es pequeño).
func (h *SitemapHandler) Get(c *fiber.Ctx) error {
	slugs, err := h.products.Slugs(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	doc, err := h.builder.Build(slugs)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(doc)
}
