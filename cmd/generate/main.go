package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/querygen/backend/config"
	"github.com/querygen/backend/internal/domain"
	"github.com/querygen/backend/internal/infrastructure/openai"
	"github.com/querygen/backend/internal/infrastructure/shopify"
	"github.com/querygen/backend/internal/usecase"
)

// Offline batch tool: load Shopify-like products from a JSON file, run
// the generation pipeline, save an export document, and print a preview.
func main() {
	path := flag.String("path", "data/products.json", "input JSON path")
	limit := flag.Int("limit", 2, "number of products to process")
	concurrency := flag.Int("concurrency", 1, "concurrency bound for generation")
	out := flag.String("out", "data/generated_queries.json", "output JSON path")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	products, err := loadProducts(*path, *limit)
	if err != nil {
		log.Fatalf("Failed to load products: %v", err)
	}
	if len(products) == 0 {
		log.Fatalf("No valid products found in %s", *path)
	}

	chatClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model)
	generator := usecase.NewGeneratorService(chatClient, usecase.GeneratorConfig{
		Temperature:    cfg.OpenAI.Temperature,
		MaxTokens:      cfg.OpenAI.MaxTokens,
		PerBucketLimit: cfg.Generation.PerBucketLimit,
		Concurrency:    *concurrency,
		SelfCheck:      cfg.Generation.SelfCheck,
	})

	results := generator.GenerateBatch(context.Background(), products)

	records := usecase.BuildExportRecords(products, results)
	if err := writeExport(*out, records); err != nil {
		log.Fatalf("Failed to write export: %v", err)
	}
	log.Printf("Saved %d records to %s", len(records), *out)

	printPreview(products, results)
}

// loadProducts reads a {"products": [...]} document and adapts the first
// limit entries into internal records.
func loadProducts(path string, limit int) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Products []domain.ShopifyProduct `json:"products"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	raw := doc.Products
	if limit > 0 && len(raw) > limit {
		raw = raw[:limit]
	}
	return shopify.MapProducts(raw), nil
}

func writeExport(path string, records []usecase.ExportRecord) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func printPreview(products []domain.Product, results []domain.ProductQueries) {
	for i, p := range products {
		if i >= len(results) {
			break
		}
		r := results[i]

		fmt.Println("\n=== Product ===")
		fmt.Println("id:", p.ID)
		fmt.Println("title:", p.Title)
		if p.Price != nil {
			fmt.Println("price:", *p.Price)
		}
		if p.Size != "" {
			fmt.Println("size:", p.Size)
		}
		if p.Vendor != "" {
			fmt.Println("vendor:", p.Vendor)
		}
		if p.ProductType != "" {
			fmt.Println("product_type:", p.ProductType)
		}
		if len(p.Tags) > 0 {
			fmt.Println("tags:", strings.Join(p.Tags, ", "))
		}
		fmt.Println("queries:", len(r.Queries))

		preview := r.Queries
		if len(preview) > 10 {
			preview = preview[:10]
		}
		for _, q := range preview {
			fmt.Printf("- %s -- %s -- %s\n", q.Style, q.Bucket, q.Text)
		}
	}
}
