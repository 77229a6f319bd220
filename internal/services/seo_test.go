package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	homeJSON   = `{"company_name":"Royal Abyssinians","tagline":"Premium Breeder","description":"Healthy kittens.","logo_url":"/images/logo.jpg","affiliations":["CFA","TICA","ACFA"]}`
	aboutJSON  = `{"contact":{"email":"cats@example.com","phone":"(555) 123-4567","address":"123 Cattery Lane, Cat City, ST 12345"},"payment_methods":["Cash","Zelle"]}`
	socialJSON = `{"links":[{"platform":"Instagram","url":"https://instagram.com/cats"},{"platform":"Broken"},{"platform":"Facebook","url":"https://facebook.com/cats"}]}`
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		raw  string
		want Address
	}{
		{"123 Cattery Lane, Cat City, ST 12345", Address{"123 Cattery Lane", "Cat City", "ST", "12345"}},
		{"  1 Main St ,Springfield,  IL   62701  ", Address{"1 Main St", "Springfield", "IL", "62701"}},
		{"1 Main St, Springfield", Address{Street: "1 Main St", City: "Springfield"}},
		{"1 Main St, Springfield, IL", Address{"1 Main St", "Springfield", "IL", ""}},
		{"1 Main St, Springfield, ", Address{Street: "1 Main St", City: "Springfield"}},
		{"PO Box 7", Address{Street: "PO Box 7"}},
		{"", Address{}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAddress(tt.raw))
		})
	}
}

func TestReadSiteContent(t *testing.T) {
	site := ReadSiteContent(homeJSON, aboutJSON, socialJSON)

	assert.Equal(t, "Royal Abyssinians", site.Company)
	assert.Equal(t, "Premium Breeder", site.Tagline)
	assert.Equal(t, "/images/logo.jpg", site.LogoURL)
	assert.Equal(t, []string{"CFA", "TICA", "ACFA"}, site.Affiliations)
	assert.Equal(t, "cats@example.com", site.Email)
	assert.Equal(t, "123 Cattery Lane, Cat City, ST 12345", site.Address)
	assert.Equal(t, []string{"Cash", "Zelle"}, site.PaymentMethods)
	assert.Equal(t, []string{"https://instagram.com/cats", "https://facebook.com/cats"}, site.SocialURLs)
}

func TestReadSiteContentToleratesMissingAndMalformed(t *testing.T) {
	for _, raw := range []string{"", "{not json", "[1,2,3]", `"just a string"`} {
		site := ReadSiteContent(raw, raw, raw)
		assert.Equal(t, defaultCompany, site.Company, raw)
		assert.Equal(t, defaultLogo, site.LogoURL, raw)
		assert.Empty(t, site.Affiliations, raw)
		assert.NotNil(t, site.SocialURLs, raw)
		assert.Empty(t, site.Email, raw)
	}
}

func TestBuildSEOStructuredData(t *testing.T) {
	fragments, err := BuildSEO(ReadSiteContent(homeJSON, aboutJSON, socialJSON), "https://cats.example")
	require.NoError(t, err)

	scripts := strings.Split(fragments.StructuredData, "\n    ")
	require.Len(t, scripts, 4)

	var docs []map[string]interface{}
	for _, script := range scripts {
		require.True(t, strings.HasPrefix(script, `<script type="application/ld+json">`))
		body := strings.TrimSuffix(strings.TrimPrefix(script, `<script type="application/ld+json">`), `</script>`)
		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &doc))
		docs = append(docs, doc)
	}

	org := docs[0]
	assert.Equal(t, "Organization", org["@type"])
	assert.Equal(t, "https://cats.example/images/logo.jpg", org["logo"])
	assert.Equal(t, []interface{}{"https://instagram.com/cats", "https://facebook.com/cats"}, org["sameAs"])
	address := org["address"].(map[string]interface{})
	assert.Equal(t, "Cat City", address["addressLocality"])
	assert.Equal(t, "ST", address["addressRegion"])
	assert.Equal(t, "12345", address["postalCode"])

	business := docs[1]
	assert.Equal(t, "LocalBusiness", business["@type"])
	assert.Equal(t, "Premium Breeder. Healthy kittens.", business["description"])
	assert.Len(t, business["memberOf"], 3)
	assert.Equal(t, []interface{}{"Cash", "Zelle"}, business["paymentAccepted"])

	website := docs[2]
	assert.Equal(t, "Royal Abyssinians - Premium Breeder", website["description"])

	breadcrumb := docs[3]
	assert.Equal(t, "BreadcrumbList", breadcrumb["@type"])
	assert.Len(t, breadcrumb["itemListElement"], 4)
}

func TestBuildSEOWithoutContent(t *testing.T) {
	fragments, err := BuildSEO(ReadSiteContent("", "", ""), "https://cats.example")
	require.NoError(t, err)

	assert.Contains(t, fragments.StructuredData, `"sameAs": []`)
	assert.Contains(t, fragments.StructuredData, `"streetAddress": ""`)
	assert.Contains(t, fragments.MetaTags, "<title>Royal Abyssinians | Abyssinian Kittens for Sale | Abyssinian Cat Breeder</title>")
	assert.Contains(t, fragments.NoScript, "Payment methods accepted: Contact us")
}

func TestBuildSEOMetaAndNoScript(t *testing.T) {
	fragments, err := BuildSEO(ReadSiteContent(homeJSON, aboutJSON, socialJSON), "https://cats.example")
	require.NoError(t, err)

	assert.Contains(t, fragments.MetaTags, "healthy Abyssinian kittens for sale. CFA, TICA registered.")
	assert.NotContains(t, fragments.MetaTags, "ACFA")
	assert.Contains(t, fragments.MetaTags, `<meta property="og:image" content="https://cats.example/images/logo.jpg" />`)
	assert.Equal(t, 9, strings.Count(fragments.MetaTags, "\n    ")+1)

	assert.True(t, strings.HasPrefix(fragments.NoScript, "<noscript>"))
	assert.True(t, strings.HasSuffix(fragments.NoScript, "</noscript>"))
	assert.Contains(t, fragments.NoScript, "<ul><li>CFA</li><li>TICA</li><li>ACFA</li></ul>")
	assert.Contains(t, fragments.NoScript, `<a href="mailto:cats@example.com">cats@example.com</a>`)
	assert.Contains(t, fragments.NoScript, "Payment methods accepted: Cash, Zelle")
}

func TestBuildSEOEscapesContent(t *testing.T) {
	home := `{"company_name":"Cats <b>&</b> \"Co\"","description":"<script>alert(1)</script>"}`
	fragments, err := BuildSEO(ReadSiteContent(home, "", ""), "https://cats.example")
	require.NoError(t, err)

	assert.NotContains(t, fragments.MetaTags, "<b>")
	assert.Contains(t, fragments.MetaTags, "Cats &lt;b&gt;&amp;&lt;/b&gt; &#34;Co&#34;")
	assert.NotContains(t, fragments.NoScript, "<script>")
	assert.NotContains(t, fragments.StructuredData, "<script>alert")
}

func TestInjectSEO(t *testing.T) {
	doc := "<html><head>" + MarkerMetaTags + MarkerStructuredData + "</head><body>" + MarkerNoScript + "</body></html>"
	fragments := SEOFragments{StructuredData: "LD", MetaTags: "META", NoScript: "NOSCRIPT"}

	out, ok := InjectSEO(doc, fragments)
	assert.True(t, ok)
	assert.Equal(t, "<html><head>METALD</head><body>NOSCRIPT</body></html>", out)

	partial := "<html><head>" + MarkerMetaTags + "</head></html>"
	out, ok = InjectSEO(partial, fragments)
	assert.False(t, ok)
	assert.Equal(t, partial, out)
}

func TestSEORendererReadsStore(t *testing.T) {
	ctx := context.Background()
	store := NewContentStore(newTestDB(t))
	renderer := &SEORenderer{Content: store, SiteURL: "https://cats.example"}

	before, err := renderer.Render(ctx)
	require.NoError(t, err)
	assert.Contains(t, before.MetaTags, "<title>Royal Abyssinians |")

	_, err = store.Upsert(ctx, "home", `{"company_name":"Sunny Paws"}`)
	require.NoError(t, err)

	after, err := renderer.Render(ctx)
	require.NoError(t, err)
	assert.Contains(t, after.MetaTags, "<title>Sunny Paws |")
}
