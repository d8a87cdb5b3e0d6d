package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testProducts = []Product{
	{ID: 1, Name: "Aurora Electric Kettle", Description: "fast-boil kettle", Category: "Kitchen", SentimentScore: 0.82},
	{ID: 2, Name: "Driftwood Ceramic Mug", Description: "hand-glazed mug", Category: "Kitchen", SentimentScore: 0.5},
	{ID: 3, Name: "Nimbus Headphones", Description: "wireless headphones", Category: "Audio", SentimentScore: 0.35},
}

func ids(products []Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestFilterZeroCriteriaMatchesAll(t *testing.T) {
	got := Filter(testProducts, Criteria{})
	if diff := cmp.Diff([]int{1, 2, 3}, ids(got)); diff != "" {
		t.Errorf("zero criteria mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterWildcardsMatchAll(t *testing.T) {
	got := Filter(testProducts, Criteria{Category: FilterAll, Bucket: FilterAll})
	if len(got) != len(testProducts) {
		t.Errorf("wildcard criteria returned %d products, want %d", len(got), len(testProducts))
	}
}

func TestFilterSearchText(t *testing.T) {
	// Case-insensitive, matches name or description, trimmed.
	tests := []struct {
		query string
		want  []int
	}{
		{"kettle", []int{1}},
		{"KETTLE", []int{1}},
		{"  mug  ", []int{2}},
		{"wireless", []int{3}},
		{"zzz", []int{}},
	}
	for _, tt := range tests {
		got := Filter(testProducts, Criteria{SearchText: tt.query})
		if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
			t.Errorf("search %q mismatch (-want +got):\n%s", tt.query, diff)
		}
	}
}

func TestFilterCategory(t *testing.T) {
	got := Filter(testProducts, Criteria{Category: "Kitchen"})
	if diff := cmp.Diff([]int{1, 2}, ids(got)); diff != "" {
		t.Errorf("category mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterBucket(t *testing.T) {
	// Bucket matching goes through the canonical product classifier:
	// 0.82 positive, 0.5 neutral, 0.35 negative.
	tests := []struct {
		bucket string
		want   []int
	}{
		{"positive", []int{1}},
		{"neutral", []int{2}},
		{"negative", []int{3}},
	}
	for _, tt := range tests {
		got := Filter(testProducts, Criteria{Bucket: tt.bucket})
		if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
			t.Errorf("bucket %q mismatch (-want +got):\n%s", tt.bucket, diff)
		}
	}
}

func TestFilterConjunction(t *testing.T) {
	c := Criteria{SearchText: "kettle", Category: "Kitchen", Bucket: "positive"}
	if got := ids(Filter(testProducts, c)); len(got) != 1 || got[0] != 1 {
		t.Errorf("conjunction returned %v, want [1]", got)
	}

	// Same search, wrong bucket: empty result, not an error.
	c.Bucket = "negative"
	if got := Filter(testProducts, c); len(got) != 0 {
		t.Errorf("contradictory criteria returned %v, want empty", ids(got))
	}
}

func TestFilterIdempotent(t *testing.T) {
	c := Criteria{Category: "Kitchen"}
	once := Filter(testProducts, c)
	twice := Filter(once, c)
	if diff := cmp.Diff(ids(once), ids(twice)); diff != "" {
		t.Errorf("filtering twice changed the result (-once +twice):\n%s", diff)
	}
}

func TestFilterDoesNotMutate(t *testing.T) {
	before := ids(testProducts)
	Filter(testProducts, Criteria{SearchText: "mug"})
	if diff := cmp.Diff(before, ids(testProducts)); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}
