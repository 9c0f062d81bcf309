package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/querygen/backend/internal/infrastructure/textclean"
)

// Standalone repair tool for product JSON files containing malformed
// Unicode or almost-JSON (smart quotes, control characters, trailing
// commas). No runtime dependency on the generation pipeline.
func main() {
	in := flag.String("in", "data/products.json", "input file path")
	out := flag.String("out", "data/products_clean.json", "output file path")
	flag.Parse()

	original, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *in, err)
	}

	// Step 1: report anomalies in the original file
	anomalies := textclean.Scan(string(original))
	report(*in, anomalies)

	// Step 2: clean. JSON-based cleaning first, raw text normalization as fallback.
	cleaned, result, err := textclean.CleanJSON(string(original))
	if err != nil {
		log.Printf("JSON-based cleaning failed: %v", err)
		log.Printf("Falling back to text normalization (quotes may still break JSON)")
		cleaned = []byte(textclean.CleanText(string(original)))
	} else {
		log.Printf("Products kept: %d / %d", result.ProductsAfter, result.ProductsBefore)
	}

	if err := os.WriteFile(*out, cleaned, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Cleaned file saved to %s", *out)

	// Step 3: validate the cleaned output and re-scan
	var check interface{}
	if err := json.Unmarshal(cleaned, &check); err != nil {
		log.Printf("Validation: cleaned output is still not valid JSON: %v", err)
	} else {
		log.Printf("Validation: cleaned JSON parsed OK")
	}

	remaining := textclean.Scan(string(cleaned))
	log.Printf("Summary: original anomalies=%d, cleaned anomalies=%d", len(anomalies), len(remaining))
}

func report(path string, anomalies []textclean.Anomaly) {
	if len(anomalies) == 0 {
		log.Printf("No non-ASCII characters found in %s", path)
		return
	}

	counts := textclean.CountByCategory(anomalies)
	log.Printf("Detected %d non-ASCII characters in %s: benign=%d needs_cleaning=%d other=%d",
		len(anomalies), path,
		counts[textclean.CategoryBenign],
		counts[textclean.CategoryNeedsCleaning],
		counts[textclean.CategoryOther])

	shown := 0
	for _, a := range anomalies {
		if a.Category != textclean.CategoryNeedsCleaning {
			continue
		}
		log.Printf("  line %d col %d: %q", a.Line, a.Col, a.Char)
		shown++
		if shown >= 30 {
			log.Printf("  ...and more")
			break
		}
	}
}
