package api

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"shopsense/internal/catalog"
)

// DefaultRecommendationLimit matches the detail view's carousel width.
const DefaultRecommendationLimit = 4

// Products fetches the full product list.
func (c *Client) Products(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.get(ctx, "/api/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches one product with its full sentiment detail.
func (c *Client) Product(ctx context.Context, id int) (*catalog.Product, error) {
	var p catalog.Product
	if err := c.get(ctx, fmt.Sprintf("/api/products/%d", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Recommendations fetches similar products for the given product. Failures
// degrade to an empty list so a broken recommender never blocks the detail
// view; the cause is logged and swallowed.
func (c *Client) Recommendations(ctx context.Context, id, limit int) []catalog.Recommendation {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	var payload struct {
		Recommendations []catalog.Recommendation `json:"recommendations"`
	}
	path := fmt.Sprintf("/api/products/%d/recommendations?limit=%d", id, limit)
	if err := c.get(ctx, path, &payload); err != nil {
		c.logger.Warn("recommendations degraded to empty",
			zap.Int("product_id", id), zap.Error(err))
		return nil
	}
	return payload.Recommendations
}

// CurrentUser probes the session. A rejection means "not signed in" and is
// reported as (nil, nil); only transport failures are errors.
func (c *Client) CurrentUser(ctx context.Context) (*catalog.User, error) {
	var payload struct {
		User *catalog.User `json:"user"`
	}
	err := c.get(ctx, "/api/auth/user", &payload)
	if err != nil {
		var remote *RemoteError
		if errors.As(err, &remote) {
			return nil, nil
		}
		return nil, err
	}
	return payload.User, nil
}

// Credentials is the login/register request body. Email is only sent on
// registration.
type Credentials struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// Login creates a session and returns the signed-in user.
func (c *Client) Login(ctx context.Context, creds Credentials) (*catalog.User, error) {
	var payload struct {
		User *catalog.User `json:"user"`
	}
	creds.Email = ""
	if err := c.post(ctx, "/api/auth/login", creds, &payload); err != nil {
		return nil, err
	}
	return payload.User, nil
}

// Register creates an account plus session and returns the new user.
func (c *Client) Register(ctx context.Context, creds Credentials) (*catalog.User, error) {
	var payload struct {
		User *catalog.User `json:"user"`
	}
	if err := c.post(ctx, "/api/auth/register", creds, &payload); err != nil {
		return nil, err
	}
	return payload.User, nil
}

// Logout destroys the session.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/api/auth/logout", nil, nil)
}

// Analysis is the ad-hoc sentiment scoring result.
type Analysis struct {
	Text           string  `json:"text"`
	SentimentScore float64 `json:"sentiment_score"`
}

// Analyze scores a free-form text.
func (c *Client) Analyze(ctx context.Context, text string) (*Analysis, error) {
	var result Analysis
	body := map[string]string{"text": text}
	if err := c.post(ctx, "/api/analyze", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
