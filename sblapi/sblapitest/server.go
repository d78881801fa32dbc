// Package sblapitest serves canned SBL API responses for handler and worker tests.
package sblapitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"sblbot/sblapi"
)

type route struct {
	status int
	body   any
}

// Recorded is one request the server received
type Recorded struct {
	Method   string
	Endpoint string
	Header   http.Header
	Body     []byte
}

// Server is an httptest server answering registered endpoints. Unknown
// endpoints get a JSON 404.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]route
	requests []Recorded
}

// New starts a server that is closed when the test ends
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{routes: make(map[string]route)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// key normalizes "path?query" so the query is sorted the way url.Values encodes it
func key(method, endpoint string) string {
	path, query, _ := strings.Cut(strings.TrimPrefix(endpoint, "/"), "?")
	if query != "" {
		if values, err := parseQuery(query); err == nil {
			query = values
		}
		return method + " " + path + "?" + query
	}
	return method + " " + path
}

func parseQuery(raw string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, "http://x/?"+raw, nil)
	if err != nil {
		return "", err
	}
	return req.URL.Query().Encode(), nil
}

// On registers a response. endpoint may carry a query, e.g. "season?id=3".
func (s *Server) On(method, endpoint string, status int, body any) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[key(method, endpoint)] = route{status: status, body: body}
	return s
}

// Get registers a 200 response for a GET endpoint
func (s *Server) Get(endpoint string, body any) *Server {
	return s.On(http.MethodGet, endpoint, http.StatusOK, body)
}

// Client returns an API client pointed at the server
func (s *Server) Client() *sblapi.Client {
	return sblapi.NewClient(sblapi.ClientConfig{
		BaseURL:    s.URL,
		HTTPClient: s.Server.Client(),
	})
}

// Requests returns what the server has received so far
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// Count reports how many requests hit method and endpoint
func (s *Server) Count(method, endpoint string) int {
	want := key(method, endpoint)
	n := 0
	for _, r := range s.Requests() {
		if key(r.Method, r.Endpoint) == want {
			n++
		}
	}
	return n
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	endpoint := strings.TrimPrefix(r.URL.Path, "/")
	if r.URL.RawQuery != "" {
		endpoint += "?" + r.URL.Query().Encode()
	}

	s.mu.Lock()
	s.requests = append(s.requests, Recorded{
		Method:   r.Method,
		Endpoint: endpoint,
		Header:   r.Header.Clone(),
		Body:     body,
	})
	rt, ok := s.routes[key(r.Method, endpoint)]
	s.mu.Unlock()

	if !ok {
		rt = route{status: http.StatusNotFound, body: map[string]string{"error": "Not found"}}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rt.status)
	if rt.body != nil {
		_ = json.NewEncoder(w).Encode(rt.body)
	}
}
