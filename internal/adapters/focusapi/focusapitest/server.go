// Package focusapitest provides an in-memory focus service for tests.
package focusapitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/xvierd/focuswatch/internal/domain"
)

// Server is a scripted stand-in for the focus service.
// All setters are safe to call while requests are being served.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	live     domain.LiveState
	stats    domain.Stats
	history  []domain.Session
	active   bool
	failures map[string]int
	calls    map[string]int
}

// NewServer starts a fake service with an idle CENTER state and no history.
func NewServer() *Server {
	s := &Server{
		live:     domain.LiveState{Direction: domain.DirectionCenter},
		history:  []domain.Session{},
		failures: make(map[string]int),
		calls:    make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/get_eye_state", s.handle(func() any { return s.live }))
	mux.HandleFunc("/get_stats", s.handle(func() any { return s.stats }))
	mux.HandleFunc("/get_history", s.handle(func() any { return s.history }))
	mux.HandleFunc("/start_session", s.handle(func() any {
		s.active = true
		return map[string]string{"status": "success", "message": "Session started"}
	}))
	mux.HandleFunc("/end_session", s.handle(func() any {
		s.active = false
		return map[string]string{"status": "success", "message": "Session ended"}
	}))
	s.Server = httptest.NewServer(mux)
	return s
}

func (s *Server) handle(body func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.URL.Path]++
		if s.failures[r.URL.Path] > 0 {
			s.failures[r.URL.Path]--
			s.mu.Unlock()
			http.Error(w, "injected failure", http.StatusInternalServerError)
			return
		}
		payload := body()
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// SetLiveState replaces the state returned by /get_eye_state.
func (s *Server) SetLiveState(state domain.LiveState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live = state
}

// SetStats replaces the stats returned by /get_stats.
func (s *Server) SetStats(stats domain.Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = stats
}

// SetHistory replaces the sessions returned by /get_history.
func (s *Server) SetHistory(history []domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = history
}

// FailNext makes the next n requests to path answer with status 500.
func (s *Server) FailNext(path string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = n
}

// Calls returns how many requests path has received.
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

// Active reports whether a session was started and not yet ended.
func (s *Server) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}
