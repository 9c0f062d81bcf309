package usecase

import "github.com/querygen/backend/internal/domain"

// ExportRecord is the persisted shape for offline batch tooling: the
// product's descriptive fields plus its generated queries. One-way
// export, never read back by the pipeline.
type ExportRecord struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	Description string                  `json:"description,omitempty"`
	Price       *float64                `json:"price,omitempty"`
	Material    string                  `json:"material,omitempty"`
	Size        string                  `json:"size,omitempty"`
	Rating      *float64                `json:"rating,omitempty"`
	ProductType string                  `json:"product_type,omitempty"`
	Vendor      string                  `json:"vendor,omitempty"`
	Tags        []string                `json:"tags,omitempty"`
	Queries     []domain.GeneratedQuery `json:"queries"`
}

// BuildExportRecords zips products with their batch results by index.
func BuildExportRecords(products []domain.Product, results []domain.ProductQueries) []ExportRecord {
	n := len(products)
	if len(results) < n {
		n = len(results)
	}

	records := make([]ExportRecord, 0, n)
	for i := 0; i < n; i++ {
		p := products[i]
		queries := results[i].Queries
		if queries == nil {
			queries = []domain.GeneratedQuery{}
		}
		records = append(records, ExportRecord{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Price:       p.Price,
			Material:    p.Material,
			Size:        p.Size,
			Rating:      p.Rating,
			ProductType: p.ProductType,
			Vendor:      p.Vendor,
			Tags:        p.Tags,
			Queries:     queries,
		})
	}
	return records
}
