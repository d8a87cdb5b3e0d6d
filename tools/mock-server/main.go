// Package main implements a mock storefront API server for local
// development. It serves a canned product catalog from a JSON fixture and
// fakes the auth, recommendation, and analysis endpoints so the TUI can be
// exercised without the real service.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shopsense/internal/catalog"
)

const sessionCookie = "shopsense_session"

type fixture struct {
	Products []catalog.Product `json:"products"`
}

type server struct {
	logger   *zap.Logger
	products []catalog.Product

	mu       sync.Mutex
	users    map[string]mockUser // by username
	sessions map[string]string   // session id -> username
}

type mockUser struct {
	Email    string
	Password string
}

func main() {
	port := flag.Int("port", 5000, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/catalog.json", "path to catalog fixture")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	fx, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Fatal("failed to load fixture", zap.String("path", *fixtureFile), zap.Error(err))
	}
	logger.Info("loaded fixture", zap.Int("products", len(fx.Products)))

	s := &server{
		logger:   logger,
		products: fx.Products,
		users:    map[string]mockUser{"demo": {Email: "demo@example.com", Password: "demo123"}},
		sessions: map[string]string{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", s.handleProducts)
	mux.HandleFunc("GET /api/products/{id}", s.handleProduct)
	mux.HandleFunc("GET /api/products/{id}/recommendations", s.handleRecommendations)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/auth/user", s.handleCurrentUser)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock storefront server", zap.String("addr", addr))

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &fx, nil
}

func requestLogger(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *server) handleProducts(w http.ResponseWriter, r *http.Request) {
	// The list view only needs summaries; strip the heavy detail fields.
	summaries := make([]catalog.Product, len(s.products))
	for i, p := range s.products {
		p.Reviews = nil
		p.KeyAspects = nil
		p.HypeVsReality = nil
		summaries[i] = p
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *server) handleProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	for _, p := range s.products {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Product not found")
}

func (s *server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	limit := 4
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}

	// Same-category products first, then the rest, excluding the subject.
	var subject *catalog.Product
	for i := range s.products {
		if s.products[i].ID == id {
			subject = &s.products[i]
			break
		}
	}
	if subject == nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	var recs []catalog.Recommendation
	appendRec := func(p catalog.Product) {
		recs = append(recs, catalog.Recommendation{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			Price:       p.Price,
			Scores:      scoresFromCounts(p.Counts),
		})
	}
	for _, p := range s.products {
		if p.ID != id && p.Category == subject.Category && len(recs) < limit {
			appendRec(p)
		}
	}
	for _, p := range s.products {
		if p.ID != id && p.Category != subject.Category && len(recs) < limit {
			appendRec(p)
		}
	}
	if recs == nil {
		recs = []catalog.Recommendation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
}

func scoresFromCounts(c catalog.SentimentCounts) catalog.SentimentScores {
	total := c.Total()
	if total == 0 {
		return catalog.SentimentScores{}
	}
	return catalog.SentimentScores{
		Positive: float64(c.Positive) / float64(total),
		Neutral:  float64(c.Neutral) / float64(total),
		Negative: float64(c.Negative) / float64(total),
	}
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[creds.Username]
	if !ok || user.Password != creds.Password {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	s.startSession(w, creds.Username)
	writeJSON(w, http.StatusOK, map[string]any{
		"user": catalog.User{Username: creds.Username, Email: user.Email},
	})
}

func (s *server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[creds.Username]; exists {
		writeError(w, http.StatusConflict, "Username already exists")
		return
	}
	s.users[creds.Username] = mockUser{Email: creds.Email, Password: creds.Password}
	s.startSession(w, creds.Username)
	writeJSON(w, http.StatusCreated, map[string]any{
		"user": catalog.User{Username: creds.Username, Email: creds.Email},
	})
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.mu.Lock()
		delete(s.sessions, cookie.Value)
		s.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", MaxAge: -1, Path: "/"})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (s *server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	username, ok := s.sessions[cookie.Value]
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user": catalog.User{Username: username, Email: s.users[username].Email},
	})
}

// startSession issues a session cookie. Caller holds the lock.
func (s *server) startSession(w http.ResponseWriter, username string) {
	id := uuid.NewString()
	s.sessions[id] = username
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: id, Path: "/"})
}

var (
	positiveWords = []string{"great", "love", "excellent", "amazing", "good", "perfect", "best"}
	negativeWords = []string{"bad", "terrible", "awful", "broken", "worst", "hate", "poor"}
)

// handleAnalyze scores text by keyword counting. Crude, but it gives the
// client a deterministic score to render.
func (s *server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Text) == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	text := strings.ToLower(body.Text)
	score := 0.5
	for _, word := range positiveWords {
		score += 0.1 * float64(strings.Count(text, word))
	}
	for _, word := range negativeWords {
		score -= 0.1 * float64(strings.Count(text, word))
	}
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"text":            body.Text,
		"sentiment_score": score,
	})
}
