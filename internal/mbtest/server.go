// Package mbtest runs an in-process, MusicBrainz-shaped web service for
// tests: canned entity documents, scriptable quota headers, and request
// recording.
package mbtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Request is one recorded inbound request.
type Request struct {
	Path      string
	RawQuery  string
	UserAgent string
	Accept    string
}

// Server is the fake web service.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	requests    []Request
	entities    map[string]any
	collections map[string]any
	headers     map[string]string
	forced      *forcedError
}

type forcedError struct {
	status  int
	message string
	help    string
}

// NewServer starts the fake service and registers cleanup on t.
func NewServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{
		entities:    make(map[string]any),
		collections: make(map[string]any),
		headers:     make(map[string]string),
	}

	r := chi.NewRouter()
	r.Get("/collection/{id}/{plural}", s.handleCollection)
	r.Get("/{kind}/{id}", s.handleLookup)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// BaseURL returns the service root, slash-terminated.
func (s *Server) BaseURL() string {
	return s.URL + "/"
}

// AddEntity registers a canned lookup document under kind/id.
func (s *Server) AddEntity(kind, id string, doc map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities[kind+"/"+id] = doc
}

// AddCollection registers a canned browse body under id/plural.
func (s *Server) AddCollection(id, plural string, body map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[id+"/"+plural] = body
}

// SetHeader scripts a response header (e.g. rate limit quota headers) for
// every subsequent response.
func (s *Server) SetHeader(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.headers[key] = value
}

// FailWith forces every subsequent response to the given error body.
func (s *Server) FailWith(status int, message, help string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forced = &forcedError{status: status, message: message, help: help}
}

// Requests returns the recorded requests in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestCount returns how many requests arrived.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "kind") + "/" + chi.URLParam(r, "id")
	s.serve(w, r, s.entities, key)
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "id") + "/" + chi.URLParam(r, "plural")
	s.serve(w, r, s.collections, key)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request, store map[string]any, key string) {
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Path:      r.URL.Path,
		RawQuery:  r.URL.RawQuery,
		UserAgent: r.UserAgent(),
		Accept:    r.Header.Get("Accept"),
	})
	for k, v := range s.headers {
		w.Header().Set(k, v)
	}
	forced := s.forced
	body, ok := store[key]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if forced != nil {
		writeJSON(w, forced.status, errorBody(forced.message, forced.help))
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("Not Found", "For usage, please see: https://musicbrainz.org/development/mmd"))
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func errorBody(message, help string) map[string]any {
	body := map[string]any{"error": message}
	if help != "" {
		body["help"] = help
	}
	return body
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
