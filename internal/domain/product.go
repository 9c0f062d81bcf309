package domain

// Product is the normalized, immutable record for one catalog item.
// Callers must guarantee a non-empty ID and Title before the record
// enters the generation pipeline.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Material    string   `json:"material,omitempty"`
	Size        string   `json:"size,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	ProductType string   `json:"product_type,omitempty"`
	Vendor      string   `json:"vendor,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Validate checks the invariants every product must satisfy before generation.
func (p *Product) Validate() error {
	if p == nil || p.ID == "" || p.Title == "" {
		return ErrInvalidRequest
	}
	return nil
}

// BatchRequest is the request body for the generate endpoint.
type BatchRequest struct {
	Products []Product `json:"products"`
}

// BatchResponse pairs every input product with its generated queries,
// in input order.
type BatchResponse struct {
	Results []ProductQueries `json:"results"`
}
