package domain

// Query styles. Every generated query is normalized to one of these.
const (
	StyleShort   = "short"
	StyleNatural = "natural"
)

// BucketMisc is the fallback bucket for queries the model labeled with
// anything outside the supported bucket set.
const BucketMisc = "misc"

// GeneratedQuery is one search query produced by the model and accepted
// by the response interpreter. Style and Bucket are always members of
// their closed sets; raw model labels never leak through.
type GeneratedQuery struct {
	Text   string `json:"text"`
	Style  string `json:"style"`
	Bucket string `json:"bucket"`
}

// ProductQueries pairs a product with its accepted queries, ordered
// earliest-accepted-first with duplicates removed.
type ProductQueries struct {
	ProductID string           `json:"product_id"`
	Queries   []GeneratedQuery `json:"queries"`
}
