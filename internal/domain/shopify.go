package domain

import "encoding/json"

// ShopifyProduct is the third-party product shape accepted by the
// /generate/shopify endpoint and the offline batch CLI. Only the fields
// the adapter reads are declared.
type ShopifyProduct struct {
	ID          json.Number      `json:"id"`
	Title       string           `json:"title"`
	BodyHTML    string           `json:"body_html,omitempty"`
	Vendor      string           `json:"vendor,omitempty"`
	ProductType string           `json:"product_type,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	Variants    []ShopifyVariant `json:"variants,omitempty"`
	Options     []ShopifyOption  `json:"options,omitempty"`
}

// ShopifyVariant carries the per-variant price as Shopify serializes it
// (a decimal string).
type ShopifyVariant struct {
	Price string `json:"price"`
}

// ShopifyOption is a product option such as Size or Color.
type ShopifyOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// ShopifyBatchRequest is the request body for the Shopify generate endpoint.
type ShopifyBatchRequest struct {
	Products []ShopifyProduct `json:"products"`
}
