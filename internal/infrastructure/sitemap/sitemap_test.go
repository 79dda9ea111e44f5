package sitemap

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
)

func TestBuild(t *testing.T) {
	updated := time.Date(2024, 6, 2, 15, 0, 0, 0, time.UTC).Unix()
	out, err := NewBuilder("https://puscom.id/").Build([]repository.ProductSlug{
		{Slug: "ram-ddr4-8gb", UpdatedAt: updated},
		{Slug: "ram-ddr4-8gb", UpdatedAt: updated},
		{Slug: ""},
	})
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.SelectElement("urlset")
	require.NotNil(t, root)
	assert.Equal(t, sitemapNS, root.SelectAttrValue("xmlns", ""))

	urls := root.SelectElements("url")
	require.Len(t, urls, len(StaticPages)+1)

	last := urls[len(urls)-1]
	assert.Equal(t, "https://puscom.id/products/ram-ddr4-8gb", last.SelectElement("loc").Text())
	assert.Equal(t, "2024-06-02", last.SelectElement("lastmod").Text())
	assert.Equal(t, "https://puscom.id/", urls[0].SelectElement("loc").Text())
}
