// Package store holds the canonical client-side application state. One
// Store instance is created at startup and passed by reference to every
// consumer; there is no package-level state. All mutation goes through the
// entry points below, and derived views are recomputed on read from the
// most recently committed snapshot.
package store

import (
	"sync"

	"shopsense/internal/catalog"
)

// Store is the canonical state holder. It is safe for concurrent use,
// though in the TUI all mutation happens on the update loop.
type Store struct {
	mu sync.Mutex

	products        []catalog.Product
	criteria        catalog.Criteria
	selectedID      int
	selected        bool
	detail          *catalog.Product
	recommendations []catalog.Recommendation
	currentUser     *catalog.User
	lastError       string
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// SetProducts commits a freshly fetched product snapshot.
func (s *Store) SetProducts(products []catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
}

// SetFilter replaces the list-view criteria.
func (s *Store) SetFilter(c catalog.Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = c
}

// SelectProduct marks a product as selected and synchronously clears the
// previous detail and recommendations, so nothing stale can flash on
// screen while the new fetches are in flight.
func (s *Store) SelectProduct(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
	s.selected = true
	s.detail = nil
	s.recommendations = nil
}

// ClearSelection returns to the list view and discards ephemeral detail
// state.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = 0
	s.selected = false
	s.detail = nil
	s.recommendations = nil
}

// CommitDetail stores a fetched product detail stamped with the product ID
// the fetch was issued for. It reports whether the response was accepted;
// a response for anything but the current selection is discarded.
func (s *Store) CommitDetail(id int, detail *catalog.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.selected || s.selectedID != id {
		return false
	}
	s.detail = detail
	return true
}

// CommitRecommendations stores a fetched recommendation list under the
// same stale-response rule as CommitDetail.
func (s *Store) CommitRecommendations(id int, recs []catalog.Recommendation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.selected || s.selectedID != id {
		return false
	}
	s.recommendations = recs
	return true
}

// SetUser records the authenticated user, or nil on sign-out.
func (s *Store) SetUser(u *catalog.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUser = u
}

// ReportError records the most recent user-visible failure message.
func (s *Store) ReportError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = msg
}

// ClearError dismisses the current failure message.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

// VisibleProducts applies the current criteria to the committed product
// snapshot. Filtering is synchronous and never races an in-flight fetch.
func (s *Store) VisibleProducts() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.Filter(s.products, s.criteria)
}

// Products returns the unfiltered committed snapshot.
func (s *Store) Products() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products
}

// Criteria returns the current filter criteria.
func (s *Store) Criteria() catalog.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// Categories lists the unique categories in the committed snapshot.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.Categories(s.products)
}

// Selection returns the selected product ID, if any.
func (s *Store) Selection() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedID, s.selected
}

// VisibleDetail returns the loaded detail for the current selection, or
// nil while it is loading.
func (s *Store) VisibleDetail() *catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detail
}

// Recommendations returns the recommendation list for the current
// selection. Nil means not loaded; an empty list means the recommender
// had nothing (or failed, which degrades silently).
func (s *Store) Recommendations() []catalog.Recommendation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recommendations
}

// CurrentUser returns the authenticated user, or nil.
func (s *Store) CurrentUser() *catalog.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentUser
}

// LastError returns the most recent failure message, or "".
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}
