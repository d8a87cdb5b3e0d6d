package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "name": "Kettle", "price": 49.99, "category": "Kitchen",
			 "sentiment_score": 0.82,
			 "sentiment_counts": {"positive": 34, "neutral": 6, "negative": 4}}
		]`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	products, err := client.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, "Kettle", products[0].Name)
	assert.Equal(t, 0.82, products[0].SentimentScore)
	assert.Equal(t, 44, products[0].Counts.Total())
}

func TestProductByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products/7", r.URL.Path)
		w.Write([]byte(`{"id": 7, "name": "Mug"}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	p, err := client.Product(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Mug", p.Name)
}

func TestRemoteErrorMessageExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "Product not found"}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.Product(context.Background(), 99)
	require.Error(t, err)

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusNotFound, remote.Status)
	assert.Equal(t, "Product not found", remote.Message)
}

func TestRemoteErrorGenericFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.Products(context.Background())

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "the request could not be completed", remote.Message)
}

func TestTransportError(t *testing.T) {
	// Point at a server that is already gone.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := New(srv.URL, WithTimeout(500*time.Millisecond))
	_, err := client.Products(context.Background())
	require.Error(t, err)

	var transport *TransportError
	assert.ErrorAs(t, err, &transport)
}

func TestCurrentUserSignedOut(t *testing.T) {
	// A rejected session probe is "signed out", not an error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Not authenticated"}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	user, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestCurrentUserSignedIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user": {"username": "alice", "email": "alice@example.com"}}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	user, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
}

func TestRecommendationsDegradeOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL)
	recs := client.Recommendations(context.Background(), 1, 4)
	assert.Nil(t, recs)
}

func TestRecommendationsLimit(t *testing.T) {
	var gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(`{"recommendations": [{"id": 2, "name": "Mug", "category": "Kitchen", "price": 18.5,
			"sentiment_scores": {"positive": 0.8, "neutral": 0.1, "negative": 0.1}}]}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	recs := client.Recommendations(context.Background(), 1, 0)
	assert.Equal(t, "4", gotLimit, "zero limit falls back to the default")
	require.Len(t, recs, 1)
	assert.Equal(t, "positive", recs[0].Scores.Dominant())
}

func TestLoginOmitsEmail(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"user": {"username": "alice"}}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	user, err := client.Login(context.Background(), Credentials{
		Username: "alice",
		Email:    "should-not-be-sent@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	_, hasEmail := body["email"]
	assert.False(t, hasEmail, "login body must not carry an email field")
}

func TestRegisterSendsEmail(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"user": {"username": "bob", "email": "bob@example.com"}}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	user, err := client.Register(context.Background(), Credentials{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.Equal(t, "bob@example.com", body["email"])
}

func TestAnalyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/analyze", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "great kettle", body["text"])
		w.Write([]byte(`{"text": "great kettle", "sentiment_score": 0.7}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	result, err := client.Analyze(context.Background(), "great kettle")
	require.NoError(t, err)
	assert.Equal(t, 0.7, result.SentimentScore)
}

func TestSessionCookiePersists(t *testing.T) {
	// The login response sets a cookie; the next request must carry it.
	var sawCookie bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
			w.Write([]byte(`{"user": {"username": "alice"}}`))
		case "/api/auth/user":
			if c, err := r.Cookie("session"); err == nil && c.Value == "abc" {
				sawCookie = true
			}
			w.Write([]byte(`{"user": {"username": "alice"}}`))
		}
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.Login(context.Background(), Credentials{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	_, err = client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.True(t, sawCookie, "session cookie was not replayed")
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := New(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Products(ctx)
	require.Error(t, err)

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.ErrorIs(t, transport.Err, context.DeadlineExceeded)
}
