// Package catalog defines the storefront data model and the predicates
// that operate on it. Everything here is read-only on the client: products
// and reviews are produced server-side and consumed as-is.
package catalog

// Product is a storefront product annotated with server-side sentiment
// analytics. Optional analytics fields may be absent on list responses;
// the detail endpoint populates them.
type Product struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          float64         `json:"price"`
	Category       string          `json:"category"`
	SentimentScore float64         `json:"sentiment_score"`
	Counts         SentimentCounts `json:"sentiment_counts"`
	Reviews        []Review        `json:"reviews,omitempty"`
	KeyAspects     *KeyAspects     `json:"key_aspects,omitempty"`
	HypeVsReality  *HypeVsReality  `json:"hype_vs_reality,omitempty"`
}

// SentimentCounts is the per-bucket review tally computed server-side.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Total returns the number of counted reviews.
func (c SentimentCounts) Total() int {
	return c.Positive + c.Neutral + c.Negative
}

// Review is a single customer review with its scored sentiment.
type Review struct {
	Author    string    `json:"author,omitempty"`
	Text      string    `json:"text"`
	Sentiment float64   `json:"sentiment"`
	Date      string    `json:"date,omitempty"`
	Keywords  []Keyword `json:"keywords,omitempty"`
}

// DisplayAuthor returns the review author, defaulting to "Anonymous".
func (r Review) DisplayAuthor() string {
	if r.Author == "" {
		return "Anonymous"
	}
	return r.Author
}

// Keyword is a sentiment-bearing phrase extracted from a review.
type Keyword struct {
	Keyword string `json:"keyword"`
}

// KeyAspects holds the aspect phrases extracted from strongly positive and
// strongly negative reviews.
type KeyAspects struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// HypeVsReality compares marketing claims from the product description
// against reviewer-confirmed or reviewer-contradicted statements.
type HypeVsReality struct {
	MarketingClaims []Claim         `json:"marketing_claims"`
	Matches         []Match         `json:"matches"`
	Contradictions  []Contradiction `json:"contradictions"`
}

// Claim is a marketing claim detected in the product description.
type Claim struct {
	Claim   string `json:"claim"`
	Context string `json:"context"`
}

// Match is a claim confirmed by reviewers.
type Match struct {
	Claim         string `json:"claim"`
	Context       string `json:"context"`
	Confirmations int    `json:"confirmations"`
}

// Contradiction is a claim contradicted by reviewers.
type Contradiction struct {
	Claim   string `json:"claim"`
	Context string `json:"context"`
	Denials int    `json:"denials"`
}

// RealityScore grades how well marketing claims match reviewer experience.
// The rate is the share of verified claims that reviewers confirmed; the
// grade thresholds follow the storefront's published scale.
func (h *HypeVsReality) RealityScore() (rate int, grade string) {
	total := len(h.Matches) + len(h.Contradictions)
	if total == 0 {
		return 0, ""
	}
	pct := float64(len(h.Matches)) / float64(total) * 100
	rate = int(pct + 0.5)
	switch {
	case pct >= 90:
		grade = "Excellent"
	case pct >= 70:
		grade = "Good"
	case pct >= 50:
		grade = "Fair"
	default:
		grade = "Poor"
	}
	return rate, grade
}

// Recommendation is the subset-shaped product returned by the similarity
// endpoint. Its sentiment_scores field carries per-bucket counts and must
// not be conflated with Product.sentiment_score.
type Recommendation struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Price       float64         `json:"price"`
	Scores      SentimentScores `json:"sentiment_scores"`
}

// SentimentScores is the per-bucket tally attached to a recommendation.
type SentimentScores struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// Dominant returns the bucket name with the strictly largest tally, or
// "neutral" on ties and "" when all tallies are zero.
func (s SentimentScores) Dominant() string {
	if s.Positive == 0 && s.Neutral == 0 && s.Negative == 0 {
		return ""
	}
	switch {
	case s.Positive > s.Negative && s.Positive > s.Neutral:
		return "positive"
	case s.Negative > s.Positive && s.Negative > s.Neutral:
		return "negative"
	default:
		return "neutral"
	}
}

// User is the authenticated account, if any. Session existence is the sole
// authorization signal; there are no roles.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Categories returns the unique categories of products in first-seen order.
func Categories(products []Product) []string {
	seen := make(map[string]bool, len(products))
	var out []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}
