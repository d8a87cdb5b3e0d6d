package catalog

import (
	"strings"

	"shopsense/internal/sentiment"
)

// FilterAll is the wildcard value for category and bucket criteria.
const FilterAll = "all"

// Criteria is the conjunction of the three list-view predicates. The zero
// value matches every product.
type Criteria struct {
	SearchText string
	Category   string
	Bucket     string
}

// Matches reports whether a single product satisfies all three predicates.
func (c Criteria) Matches(p Product) bool {
	if q := strings.ToLower(strings.TrimSpace(c.SearchText)); q != "" {
		name := strings.ToLower(p.Name)
		desc := strings.ToLower(p.Description)
		if !strings.Contains(name, q) && !strings.Contains(desc, q) {
			return false
		}
	}
	if c.Category != "" && c.Category != FilterAll && p.Category != c.Category {
		return false
	}
	if c.Bucket != "" && c.Bucket != FilterAll {
		if string(sentiment.Classify(p.SentimentScore).Bucket) != c.Bucket {
			return false
		}
	}
	return true
}

// Filter returns the order-preserving subsequence of products matching the
// criteria. It never mutates its input; an empty result is a valid
// outcome, not an error.
func Filter(products []Product, c Criteria) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if c.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
