package services

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	MarkerStructuredData = "<!-- DYNAMIC_STRUCTURED_DATA -->"
	MarkerMetaTags       = "<!-- DYNAMIC_META_TAGS -->"
	MarkerNoScript       = "<!-- DYNAMIC_NOSCRIPT -->"

	defaultCompany = "Royal Abyssinians"
	defaultLogo    = "/images/aby_photo1.jpg"
)

// SiteContent is what the SEO fragments need from the home, about and
// social_media pages.
type SiteContent struct {
	Company        string
	Tagline        string
	Description    string
	LogoURL        string
	Affiliations   []string
	Email          string
	Phone          string
	Address        string
	PaymentMethods []string
	SocialURLs     []string
}

type Address struct {
	Street     string
	City       string
	State      string
	PostalCode string
}

type SEOFragments struct {
	StructuredData string
	MetaTags       string
	NoScript       string
}

// ReadSiteContent pulls the fields it knows from raw page JSON. Missing or
// malformed documents read as empty objects.
func ReadSiteContent(home, about, social string) SiteContent {
	h := parseObject(home)
	a := parseObject(about)
	s := parseObject(social)

	site := SiteContent{
		Company:        stringOr(h.Get("company_name"), defaultCompany),
		Tagline:        h.Get("tagline").String(),
		Description:    h.Get("description").String(),
		LogoURL:        stringOr(h.Get("logo_url"), defaultLogo),
		Affiliations:   stringList(h.Get("affiliations")),
		Email:          a.Get("contact.email").String(),
		Phone:          a.Get("contact.phone").String(),
		Address:        a.Get("contact.address").String(),
		PaymentMethods: stringList(a.Get("payment_methods")),
		SocialURLs:     []string{},
	}
	for _, link := range s.Get("links").Array() {
		if url := link.Get("url").String(); url != "" {
			site.SocialURLs = append(site.SocialURLs, url)
		}
	}
	return site
}

func parseObject(raw string) gjson.Result {
	if !gjson.Valid(raw) {
		return gjson.Parse("{}")
	}
	result := gjson.Parse(raw)
	if !result.IsObject() {
		return gjson.Parse("{}")
	}
	return result
}

func stringOr(value gjson.Result, fallback string) string {
	if !value.Exists() {
		return fallback
	}
	return value.String()
}

func stringList(value gjson.Result) []string {
	items := []string{}
	if !value.IsArray() {
		return items
	}
	for _, item := range value.Array() {
		items = append(items, item.String())
	}
	return items
}

// ParseAddress splits "Street, City, ST ZIP". Parts that are not there come
// back empty.
func ParseAddress(raw string) Address {
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	var addr Address
	addr.Street = parts[0]
	if len(parts) > 1 {
		addr.City = parts[1]
	}
	if len(parts) > 2 {
		stateZip := strings.Fields(parts[2])
		if len(stateZip) > 0 {
			addr.State = stateZip[0]
		}
		if len(stateZip) > 1 {
			addr.PostalCode = stateZip[1]
		}
	}
	return addr
}

// SEORenderer builds fragments from the live content store on every call.
type SEORenderer struct {
	Content *ContentStore
	SiteURL string
}

func (r *SEORenderer) Render(ctx context.Context) (SEOFragments, error) {
	pages := make([]string, 3)
	for i, name := range []string{"home", "about", "social_media"} {
		raw, _, err := r.Content.Lookup(ctx, name)
		if err != nil {
			return SEOFragments{}, err
		}
		pages[i] = raw
	}
	return BuildSEO(ReadSiteContent(pages[0], pages[1], pages[2]), r.SiteURL)
}

type postalAddress struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress"`
	AddressLocality string `json:"addressLocality"`
	AddressRegion   string `json:"addressRegion"`
	PostalCode      string `json:"postalCode"`
	AddressCountry  string `json:"addressCountry"`
}

type contactPoint struct {
	Type              string `json:"@type"`
	Telephone         string `json:"telephone"`
	ContactType       string `json:"contactType"`
	Email             string `json:"email"`
	AvailableLanguage string `json:"availableLanguage"`
}

type organizationLD struct {
	Context      string        `json:"@context"`
	Type         string        `json:"@type"`
	Name         string        `json:"name"`
	URL          string        `json:"url"`
	Logo         string        `json:"logo"`
	Image        string        `json:"image"`
	Description  string        `json:"description"`
	ContactPoint contactPoint  `json:"contactPoint"`
	Address      postalAddress `json:"address"`
	SameAs       []string      `json:"sameAs"`
}

type namedThing struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type offeredProduct struct {
	Type        string     `json:"@type"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Brand       namedThing `json:"brand"`
	Category    string     `json:"category"`
}

type offer struct {
	Type          string         `json:"@type"`
	ItemOffered   offeredProduct `json:"itemOffered"`
	PriceCurrency string         `json:"priceCurrency"`
	Price         string         `json:"price"`
	Availability  string         `json:"availability"`
	Seller        namedThing     `json:"seller"`
}

type offerCatalog struct {
	Type            string  `json:"@type"`
	Name            string  `json:"name"`
	ItemListElement []offer `json:"itemListElement"`
}

type localBusinessLD struct {
	Context            string        `json:"@context"`
	Type               string        `json:"@type"`
	Name               string        `json:"name"`
	Description        string        `json:"description"`
	URL                string        `json:"url"`
	Image              []string      `json:"image"`
	Telephone          string        `json:"telephone"`
	Email              string        `json:"email"`
	Address            postalAddress `json:"address"`
	PriceRange         string        `json:"priceRange"`
	PaymentAccepted    []string      `json:"paymentAccepted"`
	CurrenciesAccepted string        `json:"currenciesAccepted"`
	HasOfferCatalog    offerCatalog  `json:"hasOfferCatalog"`
	MemberOf           []namedThing  `json:"memberOf"`
}

type websiteLD struct {
	Context     string `json:"@context"`
	Type        string `json:"@type"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type listItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

type breadcrumbLD struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	ItemListElement []listItem `json:"itemListElement"`
}

// BuildSEO renders the JSON-LD, meta and noscript fragments for site.
func BuildSEO(site SiteContent, siteURL string) (SEOFragments, error) {
	addr := ParseAddress(site.Address)
	postal := postalAddress{
		Type:            "PostalAddress",
		StreetAddress:   addr.Street,
		AddressLocality: addr.City,
		AddressRegion:   addr.State,
		PostalCode:      addr.PostalCode,
		AddressCountry:  "US",
	}
	fullLogo := site.LogoURL
	if strings.HasPrefix(fullLogo, "/") {
		fullLogo = siteURL + fullLogo
	}

	org := organizationLD{
		Context:     "https://schema.org",
		Type:        "Organization",
		Name:        site.Company,
		URL:         siteURL,
		Logo:        fullLogo,
		Image:       fullLogo,
		Description: site.Description,
		ContactPoint: contactPoint{
			Type:              "ContactPoint",
			Telephone:         site.Phone,
			ContactType:       "sales",
			Email:             site.Email,
			AvailableLanguage: "English",
		},
		Address: postal,
		SameAs:  site.SocialURLs,
	}

	businessDescription := site.Description
	if site.Tagline != "" {
		businessDescription = site.Tagline + ". " + site.Description
	}
	memberOf := make([]namedThing, 0, len(site.Affiliations))
	for _, affiliation := range site.Affiliations {
		memberOf = append(memberOf, namedThing{Type: "Organization", Name: affiliation})
	}
	business := localBusinessLD{
		Context:     "https://schema.org",
		Type:        "LocalBusiness",
		Name:        site.Company,
		Description: businessDescription,
		URL:         siteURL,
		Image: []string{
			siteURL + "/images/aby_photo1.jpg",
			siteURL + "/images/aby_photo2.jpg",
			siteURL + "/images/aby_kitten1.jpg",
		},
		Telephone:          site.Phone,
		Email:              site.Email,
		Address:            postal,
		PriceRange:         "$1100 - $1300",
		PaymentAccepted:    site.PaymentMethods,
		CurrenciesAccepted: "USD",
		HasOfferCatalog: offerCatalog{
			Type: "OfferCatalog",
			Name: "Abyssinian Kittens",
			ItemListElement: []offer{{
				Type: "Offer",
				ItemOffered: offeredProduct{
					Type:        "Product",
					Name:        "Abyssinian Kitten",
					Description: "Purebred Abyssinian kitten, health guaranteed, raised in a loving home. Available in Ruddy, Sorrel, Blue, and Fawn colors.",
					Image:       siteURL + "/images/aby_kitten1.jpg",
					Brand:       namedThing{Type: "Brand", Name: site.Company},
					Category:    "Pets > Cats > Abyssinian",
				},
				PriceCurrency: "USD",
				Price:         "1100.00",
				Availability:  "https://schema.org/InStock",
				Seller:        namedThing{Type: "Organization", Name: site.Company},
			}},
		},
		MemberOf: memberOf,
	}

	websiteDescription := site.Company
	if site.Tagline != "" {
		websiteDescription = site.Company + " - " + site.Tagline
	}
	website := websiteLD{
		Context:     "https://schema.org",
		Type:        "WebSite",
		Name:        site.Company,
		URL:         siteURL,
		Description: websiteDescription,
	}

	breadcrumb := breadcrumbLD{
		Context: "https://schema.org",
		Type:    "BreadcrumbList",
		ItemListElement: []listItem{
			{Type: "ListItem", Position: 1, Name: "Home", Item: siteURL + "/"},
			{Type: "ListItem", Position: 2, Name: "Available Kittens", Item: siteURL + "/kittens"},
			{Type: "ListItem", Position: 3, Name: "Care Guide", Item: siteURL + "/care"},
			{Type: "ListItem", Position: 4, Name: "About Us", Item: siteURL + "/about"},
		},
	}

	scripts := make([]string, 0, 4)
	for _, doc := range []interface{}{org, business, website, breadcrumb} {
		encoded, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return SEOFragments{}, WrapError(err, "encode structured data")
		}
		scripts = append(scripts, `<script type="application/ld+json">`+string(encoded)+`</script>`)
	}

	return SEOFragments{
		StructuredData: strings.Join(scripts, "\n    "),
		MetaTags:       buildMetaTags(site, fullLogo),
		NoScript:       buildNoScript(site),
	}, nil
}

func buildMetaTags(site SiteContent, fullLogo string) string {
	affiliations := site.Affiliations
	if len(affiliations) > 2 {
		affiliations = affiliations[:2]
	}
	company := html.EscapeString(site.Company)
	description := html.EscapeString(fmt.Sprintf(
		"%s is a trusted Abyssinian cat breeder offering beautiful, healthy Abyssinian kittens for sale. %s registered. Browse available kittens and join our waiting list.",
		site.Company, strings.Join(affiliations, ", ")))
	logo := html.EscapeString(fullLogo)

	lines := []string{
		fmt.Sprintf(`<title>%s | Abyssinian Kittens for Sale | Abyssinian Cat Breeder</title>`, company),
		fmt.Sprintf(`<meta name="description" content="%s" />`, description),
		fmt.Sprintf(`<meta property="og:title" content="%s | Abyssinian Kittens for Sale" />`, company),
		fmt.Sprintf(`<meta property="og:description" content="%s" />`, description),
		fmt.Sprintf(`<meta property="og:site_name" content="%s" />`, company),
		fmt.Sprintf(`<meta property="og:image" content="%s" />`, logo),
		fmt.Sprintf(`<meta name="twitter:title" content="%s | Abyssinian Kittens for Sale" />`, company),
		fmt.Sprintf(`<meta name="twitter:description" content="%s" />`, description),
		fmt.Sprintf(`<meta name="twitter:image" content="%s" />`, logo),
	}
	return strings.Join(lines, "\n    ")
}

func buildNoScript(site SiteContent) string {
	company := html.EscapeString(site.Company)
	email := html.EscapeString(site.Email)

	var affiliations strings.Builder
	for _, affiliation := range site.Affiliations {
		affiliations.WriteString("<li>" + html.EscapeString(affiliation) + "</li>")
	}
	payment := "Contact us"
	if len(site.PaymentMethods) > 0 {
		payment = strings.Join(site.PaymentMethods, ", ")
	}

	var b strings.Builder
	b.WriteString("<noscript>\n")
	b.WriteString(`      <div style="max-width:800px;margin:0 auto;padding:40px 20px;font-family:sans-serif;">` + "\n")
	b.WriteString("        <h1>" + company + " - Abyssinian Kittens for Sale</h1>\n")
	b.WriteString("        <p>" + html.EscapeString(site.Description) + "</p>\n")
	b.WriteString("        <h2>Available Abyssinian Kittens</h2>\n")
	b.WriteString(`        <p>We have purebred Abyssinian kittens available in Ruddy, Sorrel, Blue, and Fawn colors. Prices range from $1,100 to $1,300. All kittens come health-checked, vaccinated, and socialized. Visit our <a href="/kittens">kittens page</a> to see currently available Abyssinian kittens for sale and join our waiting list.</p>` + "\n")
	b.WriteString("        <h2>Our Affiliations</h2>\n")
	b.WriteString("        <ul>" + affiliations.String() + "</ul>\n")
	b.WriteString("        <h2>Contact " + company + "</h2>\n")
	b.WriteString("        <ul>\n")
	b.WriteString(`          <li>Email: <a href="mailto:` + email + `">` + email + "</a></li>\n")
	b.WriteString("          <li>Phone: " + html.EscapeString(site.Phone) + "</li>\n")
	b.WriteString("          <li>Address: " + html.EscapeString(site.Address) + "</li>\n")
	b.WriteString("        </ul>\n")
	b.WriteString("        <p>Payment methods accepted: " + html.EscapeString(payment) + "</p>\n")
	b.WriteString("        <h2>Quick Links</h2>\n")
	b.WriteString("        <ul>\n")
	b.WriteString(`          <li><a href="/">Home</a></li>` + "\n")
	b.WriteString(`          <li><a href="/kittens">Available Abyssinian Kittens for Sale</a></li>` + "\n")
	b.WriteString(`          <li><a href="/care">Abyssinian Cat Care Guide</a></li>` + "\n")
	b.WriteString(`          <li><a href="/about">About Us &amp; Contact</a></li>` + "\n")
	b.WriteString("        </ul>\n")
	b.WriteString("      </div>\n")
	b.WriteString("    </noscript>")
	return b.String()
}

// InjectSEO splices fragments into the entry document. ok is false when any
// marker is missing, in which case doc is returned untouched.
func InjectSEO(doc string, fragments SEOFragments) (string, bool) {
	replacements := []struct {
		marker string
		value  string
	}{
		{MarkerStructuredData, fragments.StructuredData},
		{MarkerMetaTags, fragments.MetaTags},
		{MarkerNoScript, fragments.NoScript},
	}
	for _, r := range replacements {
		if !strings.Contains(doc, r.marker) {
			return doc, false
		}
	}
	out := doc
	for _, r := range replacements {
		out = strings.ReplaceAll(out, r.marker, r.value)
	}
	return out, true
}
