//go:build unit || e2e

// Package carttest fakes the cart service the order service reads from and clears.
package carttest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

type Item struct {
	ProductID         int64           `json:"productId"`
	Name              string          `json:"name"`
	Quantity          int32           `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	AvailableQuantity int32           `json:"availableQuantity"`
}

type Server struct {
	URL string

	mu      sync.Mutex
	carts   map[string][]Item
	cleared map[string]int
	failing bool
}

func NewServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{carts: map[string][]Item{}, cleared: map[string]int{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/carts", func(w http.ResponseWriter, r *http.Request) {
		s.serve(w, r, "user:"+r.Header.Get("X-User-Id"))
	})
	mux.HandleFunc("/api/carts/anonymous", func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie("sessionId")
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		s.serve(w, r, "session:"+ck.Value)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	s.URL = srv.URL
	return s
}

func UserKey(userID int64) string        { return "user:" + strconv.FormatInt(userID, 10) }
func SessionKey(sessionID string) string { return "session:" + sessionID }

func (s *Server) Put(key string, items ...Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[key] = items
}

func (s *Server) Cleared(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleared[key]
}

// SetFailing makes every request answer 503.
func (s *Server) SetFailing(failing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = failing
}

func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts = map[string][]Item{}
	s.cleared = map[string]int{}
	s.failing = false
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failing {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	switch r.Method {
	case http.MethodGet:
		items, ok := s.carts[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
	case http.MethodDelete:
		delete(s.carts, key)
		s.cleared[key]++
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
