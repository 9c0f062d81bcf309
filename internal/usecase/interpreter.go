package usecase

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/querygen/backend/internal/domain"
)

// queriesEnvelope mirrors the JSON object the model is instructed to return.
type queriesEnvelope struct {
	Queries []rawQuery `json:"queries"`
}

type rawQuery struct {
	Text   string `json:"text"`
	Style  string `json:"style"`
	Bucket string `json:"bucket"`
}

// parseQueries extracts a deduplicated query list from raw model output.
// Model output is untrusted free text that may wrap the JSON object in
// prose or markdown fencing; unusable input yields an empty slice, never
// an error.
func parseQueries(raw string) []domain.GeneratedQuery {
	content := strings.TrimSpace(raw)

	var envelope queriesEnvelope
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		envelope = reparseBraceWindow(content)
	}

	out := make([]domain.GeneratedQuery, 0, len(envelope.Queries))
	for _, q := range envelope.Queries {
		text := strings.TrimSpace(q.Text)
		if text == "" {
			continue
		}
		out = append(out, domain.GeneratedQuery{
			Text:   text,
			Style:  normalizeStyle(q.Style),
			Bucket: validBucketOrMisc(q.Bucket),
		})
	}

	return dedupeQueries(out)
}

// reparseBraceWindow recovers the common case of a JSON object embedded
// in surrounding text by reparsing the substring between the first '{'
// and the last '}'.
func reparseBraceWindow(content string) queriesEnvelope {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		log.Printf("[Interpreter] No JSON object found in model output")
		return queriesEnvelope{}
	}

	var envelope queriesEnvelope
	if err := json.Unmarshal([]byte(content[start:end+1]), &envelope); err != nil {
		log.Printf("[Interpreter] Failed to parse JSON after brace extraction: %v", err)
		return queriesEnvelope{}
	}
	return envelope
}

// normalizeStyle constrains a model-emitted style label to the closed
// style set. Only "natural" and "long" (and values beginning with them)
// count as long-form; everything else is short.
func normalizeStyle(style string) string {
	s := strings.ToLower(strings.TrimSpace(style))
	if strings.HasPrefix(s, "natural") || strings.HasPrefix(s, "long") {
		return domain.StyleNatural
	}
	return domain.StyleShort
}

type queryKey struct {
	text   string
	style  string
	bucket string
}

// dedupeQueries drops later duplicates of (lowercased text, style, bucket)
// while preserving first-seen order.
func dedupeQueries(queries []domain.GeneratedQuery) []domain.GeneratedQuery {
	seen := make(map[queryKey]bool, len(queries))
	deduped := make([]domain.GeneratedQuery, 0, len(queries))
	for _, q := range queries {
		key := queryKey{text: strings.ToLower(q.Text), style: q.Style, bucket: q.Bucket}
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, q)
	}
	return deduped
}

// capBuckets keeps at most max queries per bucket, preserving
// first-seen order and dropping the excess.
func capBuckets(queries []domain.GeneratedQuery, max int) []domain.GeneratedQuery {
	counts := make(map[string]int, len(supportedBuckets))
	capped := make([]domain.GeneratedQuery, 0, len(queries))
	for _, q := range queries {
		if counts[q.Bucket] >= max {
			continue
		}
		counts[q.Bucket]++
		capped = append(capped, q)
	}
	return capped
}
