package textclean

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Character categories reported by Scan.
const (
	CategoryBenign        = "benign"
	CategoryNeedsCleaning = "needs_cleaning"
	CategoryOther         = "other"
)

// Anomaly is one non-ASCII character found in a document.
type Anomaly struct {
	Line     int
	Col      int
	Char     rune
	Category string
}

// replacements maps ambiguous punctuation and invisible characters onto
// ASCII equivalents.
var replacements = map[rune]string{
	'“': `"`, '”': `"`, '„': `"`, '‟': `"`, '❝': `"`, '❞': `"`,
	'‘': "'", '’': "'", '‚': "'", '‛': "'", '❛': "'", '❜': "'",
	'–': "-", '—': "-", '―': "-",
	'…': "...", '•': "*",
	' ': " ", '​': "", '\uFEFF': "",
}

// benignRanges cover accented Latin characters that need no cleaning.
var benignRanges = [][2]rune{
	{0x00C0, 0x017F}, // Latin-1 Supplement + Extended-A
	{0x0180, 0x024F}, // Latin Extended-B
}

var (
	controlCharRegex   = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]")
	trailingCommaRegex = regexp.MustCompile(`,(\s*[}\]])`)
)

// classifyRune reports whether a non-ASCII rune is benign, needs
// cleaning, or is unclassified.
func classifyRune(ch rune) string {
	if _, ok := replacements[ch]; ok {
		return CategoryNeedsCleaning
	}
	for _, r := range benignRanges {
		if ch >= r[0] && ch <= r[1] {
			return CategoryBenign
		}
	}
	return CategoryOther
}

// Scan finds every non-ASCII character in the text and classifies it.
func Scan(text string) []Anomaly {
	var anomalies []Anomaly
	for lineNo, line := range strings.Split(text, "\n") {
		col := 0
		for _, ch := range line {
			col++
			if ch <= 127 {
				continue
			}
			anomalies = append(anomalies, Anomaly{
				Line:     lineNo + 1,
				Col:      col,
				Char:     ch,
				Category: classifyRune(ch),
			})
		}
	}
	return anomalies
}

// CountByCategory tallies scan results per category.
func CountByCategory(anomalies []Anomaly) map[string]int {
	counts := make(map[string]int, 3)
	for _, a := range anomalies {
		counts[a.Category]++
	}
	return counts
}

// NormalizeText applies NFKC normalization, replaces known ambiguous
// characters with ASCII equivalents, and strips control characters.
func NormalizeText(s string) string {
	s = norm.NFKC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, ch := range s {
		if repl, ok := replacements[ch]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(ch)
	}
	return controlCharRegex.ReplaceAllString(b.String(), "")
}

// StripTrailingCommas removes trailing commas before '}' or ']' so that
// almost-JSON becomes parseable.
func StripTrailingCommas(text string) string {
	return trailingCommaRegex.ReplaceAllString(text, "$1")
}

// normalizeValue walks a decoded JSON value and normalizes every string in it.
func normalizeValue(v interface{}) interface{} {
	switch value := v.(type) {
	case string:
		return NormalizeText(value)
	case []interface{}:
		for i := range value {
			value[i] = normalizeValue(value[i])
		}
		return value
	case map[string]interface{}:
		for k := range value {
			value[k] = normalizeValue(value[k])
		}
		return value
	default:
		return v
	}
}

// pruneProducts drops empty or non-object product entries. An entry
// without id/title survives only if it still carries some non-empty field.
func pruneProducts(products []interface{}) []interface{} {
	pruned := make([]interface{}, 0, len(products))
	for _, entry := range products {
		obj, ok := entry.(map[string]interface{})
		if !ok || len(obj) == 0 {
			continue
		}
		_, hasID := obj["id"]
		_, hasTitle := obj["title"]
		if hasID && hasTitle {
			pruned = append(pruned, obj)
			continue
		}
		if hasAnyValue(obj) {
			pruned = append(pruned, obj)
		}
	}
	return pruned
}

func hasAnyValue(obj map[string]interface{}) bool {
	for _, v := range obj {
		switch value := v.(type) {
		case nil:
			continue
		case string:
			if value != "" {
				return true
			}
		case []interface{}:
			if len(value) > 0 {
				return true
			}
		case map[string]interface{}:
			if len(value) > 0 {
				return true
			}
		default:
			return true
		}
	}
	return false
}

// Result summarizes a CleanJSON run.
type Result struct {
	ProductsBefore int
	ProductsAfter  int
}

// CleanJSON pre-cleans raw text so it parses as JSON, normalizes every
// string value, prunes a top-level products list when present, and
// returns the re-encoded document.
func CleanJSON(text string) ([]byte, Result, error) {
	pre := strings.TrimPrefix(text, "\uFEFF")
	pre = controlCharRegex.ReplaceAllString(pre, "")
	pre = StripTrailingCommas(pre)

	var data interface{}
	if err := json.Unmarshal([]byte(pre), &data); err != nil {
		return nil, Result{}, fmt.Errorf("JSON parse failed: %w", err)
	}

	data = normalizeValue(data)

	var result Result
	if obj, ok := data.(map[string]interface{}); ok {
		if products, ok := obj["products"].([]interface{}); ok {
			result.ProductsBefore = len(products)
			obj["products"] = pruneProducts(products)
			result.ProductsAfter = len(obj["products"].([]interface{}))
		}
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, Result{}, fmt.Errorf("failed to re-encode cleaned JSON: %w", err)
	}
	return out, result, nil
}

// CleanText is the fallback path when a document cannot be parsed as
// JSON at all: normalize the raw text and strip trailing commas. Quotes
// inside values may still break strict JSON.
func CleanText(text string) string {
	return StripTrailingCommas(NormalizeText(text))
}
