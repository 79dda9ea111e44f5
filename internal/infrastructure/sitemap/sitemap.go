// Package sitemap construye sitemap.xml con las páginas públicas y una entrada por producto.
package sitemap

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// StaticPages rutas públicas del frontend.
var StaticPages = []string{"/", "/products", "/service", "/contact", "/signin", "/signup"}

// Builder genera el documento para una URL base.
type Builder struct {
	baseURL string
}

// NewBuilder baseURL es la URL pública del frontend.
func NewBuilder(baseURL string) *Builder {
	return &Builder{baseURL: strings.TrimRight(baseURL, "/")}
}

// Build devuelve el XML. Los productos con el mismo slug aparecen una sola vez.
func (b *Builder) Build(products []repository.ProductSlug) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", sitemapNS)

	for _, p := range StaticPages {
		addURL(urlset, b.baseURL+p, "", "weekly")
	}

	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if p.Slug == "" {
			continue
		}
		if _, dup := seen[p.Slug]; dup {
			continue
		}
		seen[p.Slug] = struct{}{}
		var lastmod string
		if p.UpdatedAt > 0 {
			lastmod = time.Unix(p.UpdatedAt, 0).UTC().Format("2006-01-02")
		}
		addURL(urlset, b.baseURL+"/products/"+url.PathEscape(p.Slug), lastmod, "daily")
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("sitemap: serializar: %w", err)
	}
	return out.Bytes(), nil
}

func addURL(parent *etree.Element, loc, lastmod, changefreq string) {
	u := parent.CreateElement("url")
	u.CreateElement("loc").SetText(loc)
	if lastmod != "" {
		u.CreateElement("lastmod").SetText(lastmod)
	}
	u.CreateElement("changefreq").SetText(changefreq)
}
