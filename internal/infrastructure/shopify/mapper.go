package shopify

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/querygen/backend/internal/domain"
)

var (
	htmlTagRegex    = regexp.MustCompile(`<[^>]+>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// maxDescriptionRunes bounds the adapted description so prompts stay compact.
const maxDescriptionRunes = 512

// MapProduct adapts one Shopify-like product into the internal record.
// Returns false when the entry is unusable (missing id or title).
// Material is deliberately left unset; the model infers it from the
// description, tags, and product type.
func MapProduct(p *domain.ShopifyProduct) (domain.Product, bool) {
	if p == nil || p.ID.String() == "" || p.Title == "" {
		return domain.Product{}, false
	}

	tags := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		if t := strings.TrimSpace(tag); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		tags = nil
	}

	return domain.Product{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: htmlToText(p.BodyHTML),
		Price:       minVariantPrice(p.Variants),
		Size:        extractSize(p.Options),
		Vendor:      p.Vendor,
		ProductType: p.ProductType,
		Tags:        tags,
	}, true
}

// MapProducts adapts a batch of Shopify-like products, dropping unusable entries.
func MapProducts(products []domain.ShopifyProduct) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for i := range products {
		if mapped, ok := MapProduct(&products[i]); ok {
			out = append(out, mapped)
		}
	}
	return out
}

// htmlToText strips markup from a body_html field: unescape entities,
// drop tags, collapse whitespace, truncate at a word boundary.
func htmlToText(s string) string {
	if s == "" {
		return ""
	}

	s = html.UnescapeString(s)
	s = htmlTagRegex.ReplaceAllString(s, " ")
	s = strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))

	runes := []rune(s)
	if len(runes) <= maxDescriptionRunes {
		return s
	}

	truncated := string(runes[:maxDescriptionRunes])
	if cut := strings.LastIndex(truncated, " "); cut > 0 {
		truncated = truncated[:cut]
	}
	return strings.TrimRight(truncated, " ")
}

// minVariantPrice returns the lowest parseable variant price, or nil
// when no variant carries one.
func minVariantPrice(variants []domain.ShopifyVariant) *float64 {
	var min *float64
	for _, v := range variants {
		if v.Price == "" {
			continue
		}
		price, err := strconv.ParseFloat(v.Price, 64)
		if err != nil {
			continue
		}
		if min == nil || price < *min {
			p := price
			min = &p
		}
	}
	return min
}

// extractSize joins the values of the "Size" option into a comma-joined
// list, deduplicated in order.
func extractSize(options []domain.ShopifyOption) string {
	for _, opt := range options {
		if strings.ToLower(strings.TrimSpace(opt.Name)) != "size" {
			continue
		}

		seen := make(map[string]bool, len(opt.Values))
		ordered := make([]string, 0, len(opt.Values))
		for _, v := range opt.Values {
			cleaned := strings.TrimSpace(v)
			if cleaned == "" || seen[cleaned] {
				continue
			}
			seen[cleaned] = true
			ordered = append(ordered, cleaned)
		}
		if len(ordered) > 0 {
			return strings.Join(ordered, ",")
		}
	}
	return ""
}
