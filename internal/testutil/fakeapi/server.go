// Package fakeapi is an in-memory portfolio API for tests. It serves the
// same routes and envelopes as the real backend, filters and sorts lists on
// the server side, and lets tests inject failures and hold requests.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/portfolio/internal/client/models"
)

type account struct {
	user     models.User
	password string
}

type failure struct {
	status  int
	message string
	times   int
}

// Server is a running fake backend. All exported methods are safe for
// concurrent use.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	now      func() time.Time
	accounts map[string]*account // by email
	tokens   map[string]string   // token -> user id
	tokenSeq int
	userSeq  int

	projects     *collection
	posts        *collection
	skills       *collection
	certificates *collection
	messages     *collection
	abouts       map[string]record // by user id
	profiles     map[string]record // by user id

	failures map[string]*failure
	gate     *gate
	calls    map[string]int
}

// New starts a server seeded with one admin (a@b.com / secret, id u1) and
// closes it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		now:          func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) },
		accounts:     map[string]*account{},
		tokens:       map[string]string{},
		projects:     newCollection("pr", true),
		posts:        newCollection("p", true),
		skills:       newCollection("s", false),
		certificates: newCollection("c", false),
		messages:     newCollection("m", false),
		abouts:       map[string]record{},
		profiles:     map[string]record{},
		failures:     map[string]*failure{},
		calls:        map[string]int{},
	}
	s.AddUser("a@b.com", "secret", models.RoleAdmin)

	s.Server = httptest.NewServer(s.middleware(s.routes()))
	t.Cleanup(s.Close)
	return s
}

// AddUser registers an account and returns its id (u1, u2, ...).
func (s *Server) AddUser(email, password string, role models.Role) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(email, password, role).ID
}

func (s *Server) addUserLocked(email, password string, role models.Role) models.User {
	s.userSeq++
	now := s.now()
	u := models.User{ID: fmt.Sprintf("u%d", s.userSeq), Email: email, Role: role, CreatedAt: models.NewTimestamp(now), UpdatedAt: models.NewTimestamp(now)}
	s.accounts[email] = &account{user: u, password: password}
	return u
}

// IssueToken returns a valid token for userID without a login call.
func (s *Server) IssueToken(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueTokenLocked(userID)
}

func (s *Server) issueTokenLocked(userID string) string {
	s.tokenSeq++
	tok := fmt.Sprintf("t%d", s.tokenSeq)
	s.tokens[tok] = userID
	return tok
}

// Expire invalidates token; later requests carrying it get 401.
func (s *Server) Expire(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// Fail makes the next `times` requests matching "METHOD /path" answer with
// status. times <= 0 means forever.
func (s *Server) Fail(route string, status int, times int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = &failure{status: status, message: http.StatusText(status), times: times}
}

// Hold blocks the next n requests until all n have arrived, so they are
// processed together.
func (s *Server) Hold(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate = newGate(n)
}

// Calls reports how many times "METHOD /path" was requested.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.Path

		s.mu.Lock()
		s.calls[route]++
		g := s.gate
		if g != nil && g.join() {
			s.gate = nil
		}
		f := s.failures[route]
		var status int
		var message string
		if f != nil {
			status, message = f.status, f.message
			if f.times > 0 {
				f.times--
				if f.times == 0 {
					delete(s.failures, route)
				}
			}
		}
		s.mu.Unlock()

		if g != nil {
			g.wait(r.Context())
		}
		if status != 0 {
			writeError(w, status, message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// currentUser resolves the bearer token. ok is false when the request has
// no valid token.
func (s *Server) currentUser(r *http.Request) (models.User, bool) {
	tok, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found {
		return models.User{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[tok]
	if !ok {
		return models.User{}, false
	}
	for _, a := range s.accounts {
		if a.user.ID == id {
			return a.user, true
		}
	}
	return models.User{}, false
}

// authed wraps handlers that require a valid token.
func (s *Server) authed(h func(w http.ResponseWriter, r *http.Request, u models.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := s.currentUser(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		h(w, r, u)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data map[string]any) {
	writeJSON(w, status, map[string]any{"success": true, "data": data})
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": message})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}
