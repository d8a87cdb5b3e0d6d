package store

import (
	"testing"

	"go.uber.org/goleak"

	"shopsense/internal/catalog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestStaleDetailDiscarded(t *testing.T) {
	s := New()

	// Select product 1, then move on to product 2 before the first fetch
	// lands. The late response for 1 must be rejected.
	s.SelectProduct(1)
	s.SelectProduct(2)

	if s.CommitDetail(1, &catalog.Product{ID: 1, Name: "stale"}) {
		t.Fatal("stale detail for product 1 was accepted")
	}
	if got := s.VisibleDetail(); got != nil {
		t.Fatalf("VisibleDetail = %v after rejected commit, want nil", got)
	}

	if !s.CommitDetail(2, &catalog.Product{ID: 2, Name: "fresh"}) {
		t.Fatal("fresh detail for product 2 was rejected")
	}
	if got := s.VisibleDetail(); got == nil || got.Name != "fresh" {
		t.Fatalf("VisibleDetail = %v, want fresh product 2", got)
	}
}

func TestStaleRecommendationsDiscarded(t *testing.T) {
	s := New()
	s.SelectProduct(1)
	s.SelectProduct(2)

	if s.CommitRecommendations(1, []catalog.Recommendation{{ID: 9}}) {
		t.Fatal("stale recommendations for product 1 were accepted")
	}
	if !s.CommitRecommendations(2, []catalog.Recommendation{{ID: 5}}) {
		t.Fatal("fresh recommendations for product 2 were rejected")
	}
	recs := s.Recommendations()
	if len(recs) != 1 || recs[0].ID != 5 {
		t.Fatalf("Recommendations = %v, want [{ID:5}]", recs)
	}
}

func TestCommitAfterClearSelectionRejected(t *testing.T) {
	s := New()
	s.SelectProduct(1)
	s.ClearSelection()

	if s.CommitDetail(1, &catalog.Product{ID: 1}) {
		t.Fatal("detail accepted after selection was cleared")
	}
	if s.CommitRecommendations(1, nil) {
		t.Fatal("recommendations accepted after selection was cleared")
	}
}

func TestSelectProductClearsPreviousDetail(t *testing.T) {
	s := New()
	s.SelectProduct(1)
	s.CommitDetail(1, &catalog.Product{ID: 1})
	s.CommitRecommendations(1, []catalog.Recommendation{{ID: 3}})

	// Selecting a new product clears the old detail synchronously so the
	// view never shows product 1's data under product 2's header.
	s.SelectProduct(2)
	if s.VisibleDetail() != nil {
		t.Error("previous detail survived a new selection")
	}
	if s.Recommendations() != nil {
		t.Error("previous recommendations survived a new selection")
	}
}

func TestRecommendationsNilMeansNotLoaded(t *testing.T) {
	s := New()
	s.SelectProduct(1)

	if s.Recommendations() != nil {
		t.Fatal("Recommendations should be nil before any commit")
	}
	s.CommitRecommendations(1, []catalog.Recommendation{})
	if s.Recommendations() == nil {
		t.Fatal("committed empty list should read back non-nil")
	}
}

func TestVisibleProductsAppliesCriteria(t *testing.T) {
	s := New()
	s.SetProducts([]catalog.Product{
		{ID: 1, Name: "Kettle", Category: "Kitchen", SentimentScore: 0.8},
		{ID: 2, Name: "Headphones", Category: "Audio", SentimentScore: 0.3},
	})

	if got := s.VisibleProducts(); len(got) != 2 {
		t.Fatalf("unfiltered VisibleProducts = %d items, want 2", len(got))
	}

	s.SetFilter(catalog.Criteria{Category: "Audio"})
	got := s.VisibleProducts()
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("filtered VisibleProducts = %v, want product 2 only", got)
	}

	// The underlying snapshot is untouched.
	if got := s.Products(); len(got) != 2 {
		t.Fatalf("Products = %d items after filtering, want 2", len(got))
	}
}

func TestUserAndErrorState(t *testing.T) {
	s := New()

	s.SetUser(&catalog.User{Username: "alice"})
	if u := s.CurrentUser(); u == nil || u.Username != "alice" {
		t.Fatalf("CurrentUser = %v, want alice", u)
	}
	s.SetUser(nil)
	if s.CurrentUser() != nil {
		t.Fatal("CurrentUser not cleared on sign-out")
	}

	s.ReportError("storefront unreachable")
	if got := s.LastError(); got != "storefront unreachable" {
		t.Fatalf("LastError = %q", got)
	}
	s.ClearError()
	if s.LastError() != "" {
		t.Fatal("LastError not cleared")
	}
}

func TestSelection(t *testing.T) {
	s := New()
	if _, ok := s.Selection(); ok {
		t.Fatal("fresh store reports a selection")
	}
	s.SelectProduct(7)
	if id, ok := s.Selection(); !ok || id != 7 {
		t.Fatalf("Selection = (%d, %v), want (7, true)", id, ok)
	}
	s.ClearSelection()
	if _, ok := s.Selection(); ok {
		t.Fatal("Selection still set after ClearSelection")
	}
}
