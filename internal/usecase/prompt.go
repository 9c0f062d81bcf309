package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/querygen/backend/internal/domain"
)

// supportedBuckets are the category labels queries may carry. Keep in
// sync with the instruction text below and the interpreter whitelist.
var supportedBuckets = map[string]bool{
	"price":    true,
	"occasion": true,
	"material": true,
	"fit":      true,
	"brand":    true,
	"rating":   true,
}

// validBucketOrMisc maps a model-emitted bucket label onto the supported
// set, falling back to misc for anything unknown.
func validBucketOrMisc(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == domain.BucketMisc || supportedBuckets[v] {
		return v
	}
	return domain.BucketMisc
}

// bucketList returns the supported buckets as a stable comma-joined string.
func bucketList() string {
	names := make([]string, 0, len(supportedBuckets))
	for name := range supportedBuckets {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// systemPrompt is the instruction shared by the first pass and the
// self-check pass.
func systemPrompt() string {
	return "You are a helpful assistant that generates human-like e-commerce search queries. " +
		"Produce a diverse mix of short keyword-style queries and natural language queries. " +
		"Queries must be relevant to the given product and reflect realistic user behavior."
}

// productBlock renders only the fields present on the product to keep
// the prompt concise.
func productBlock(product *domain.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "id: %s\n", product.ID)
	fmt.Fprintf(&b, "title: %s", product.Title)
	if product.Description != "" {
		fmt.Fprintf(&b, "\ndescription: %s", product.Description)
	}
	if product.Price != nil {
		fmt.Fprintf(&b, "\nprice: %g", *product.Price)
	}
	if product.Material != "" {
		fmt.Fprintf(&b, "\nmaterial: %s", product.Material)
	}
	if product.Size != "" {
		fmt.Fprintf(&b, "\nsize: %s", product.Size)
	}
	if product.Rating != nil {
		fmt.Fprintf(&b, "\nrating: %g", *product.Rating)
	}
	if product.Vendor != "" {
		fmt.Fprintf(&b, "\nvendor: %s", product.Vendor)
	}
	if product.ProductType != "" {
		fmt.Fprintf(&b, "\nproduct_type: %s", product.ProductType)
	}
	if len(product.Tags) > 0 {
		fmt.Fprintf(&b, "\ntags: %s", strings.Join(product.Tags, ", "))
	}
	return b.String()
}

// userPrompt builds the first-pass instruction asking the model to
// return queries grouped by bucket and labeled by style, as minified JSON.
func userPrompt(product *domain.Product, perBucket int) string {
	return fmt.Sprintf(
		"Given the product details below, generate realistic user search queries.\n"+
			"Product:\n%s\n\n"+
			"Buckets: %s. For each bucket that applies, generate up to %d queries,\n"+
			"balancing short keyword-style and natural-language styles.\n"+
			"Output strictly in minified JSON with this structure:\n"+
			`{"queries":[{"text":"string","style":"short"|"natural","bucket":"price|occasion|material|fit|brand|rating"}]}`+"\n"+
			"Use only fields present in the product. No explanations or extra keys.",
		productBlock(product), bucketList(), perBucket,
	)
}

// refinePrompt builds the self-check instruction: the model audits its
// first-pass queries against an explicit checklist and returns a
// corrected set in the same JSON shape.
func refinePrompt(product *domain.Product, firstPassJSON string) string {
	return fmt.Sprintf(
		"Review the candidate search queries for the product below and return an improved set.\n"+
			"Product:\n%s\n\n"+
			"Candidate queries (JSON): %s\n\n"+
			"Checklist:\n"+
			"1. Cover at least 3 different buckets when the product allows it.\n"+
			"2. Natural-style queries must read as full sentences or questions of roughly 5-12 words.\n"+
			"3. Keep at most 2 queries per bucket.\n"+
			"4. Price queries may use budget phrasing such as \"under $100\" when a price is present.\n"+
			"5. Drop duplicates and queries that do not match the product.\n"+
			"Output strictly in the same minified JSON structure. No explanations or extra keys.",
		productBlock(product), firstPassJSON,
	)
}
