// Package brokertest provides an in-process stub broker for tests. It
// serves the same routes as the real broker with canned happy-path answers
// drawn from seeded user records, and lets tests override any route with a
// fixed status and body.
package brokertest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Token is the bearer token the stub accepts. Requests carrying anything
// else are answered with 401.
const Token = "brokertest-token"

type stub struct {
	status int
	body   string
}

// Server is a stub broker backed by httptest.Server.
type Server struct {
	*httptest.Server

	mu    sync.Mutex
	users map[string]map[string]any
	stubs map[string]stub
}

// New starts a stub broker. Callers must Close it.
func New() *Server {
	s := &Server{
		users: make(map[string]map[string]any),
		stubs: make(map[string]stub),
	}

	r := chi.NewRouter()
	r.Use(s.override, auth)

	r.Route("/api/v2", func(r chi.Router) {
		r.Get("/site/status", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"status": http.StatusOK})
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/auth", s.authenticate)
			r.Post("/auth/new", s.authenticate)
			r.Get("/", s.listUsers)
			r.Post("/", s.createUser)

			r.Route("/{employee_id}", func(r chi.Router) {
				r.Get("/", s.getUser)
				r.Put("/", s.createUser)
				r.Post("/deactivate", func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusOK)
				})
				r.Post("/password", func(w http.ResponseWriter, _ *http.Request) {
					writeJSON(w, http.StatusOK, map[string]any{
						"status":           http.StatusOK,
						"password_changed": true,
					})
				})

				r.Route("/mfa", func(r chi.Router) {
					r.Get("/", emptyObject)
					r.Post("/", emptyObject)
					r.Route("/{mfa_id}", func(r chi.Router) {
						r.Put("/", emptyObject)
						r.Delete("/", noContent)
						r.Post("/verify", noContent)
					})
				})

				r.Route("/methods", func(r chi.Router) {
					r.Get("/", emptyObject)
					r.Post("/", emptyObject)
					r.Route("/{method_id}", func(r chi.Router) {
						r.Get("/", emptyObject)
						r.Delete("/", noContent)
						r.Post("/verify", emptyObject)
						r.Post("/resend", noContent)
					})
				})
			})
		})
	})

	s.Server = httptest.NewServer(r)

	return s
}

// Seed registers a user record, keyed by its employee_id field.
func (s *Server) Seed(user map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := user["employee_id"].(string); ok {
		s.users[id] = user
	}
}

// Stub makes the given method and path answer with a fixed status and raw
// body, bypassing the default handlers and the auth check.
func (s *Server) Stub(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stubs[method+" "+path] = stub{status: status, body: body}
}

func (s *Server) override(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		st, ok := s.stubs[r.Method+" "+r.URL.Path]
		s.mu.Unlock()

		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(st.status)
		_, _ = w.Write([]byte(st.body))
	})
}

func auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+Token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) {
	var creds map[string]string
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u["username"] == creds["username"] && u["password"] == creds["password"] {
			writeJSON(w, http.StatusOK, withStatus(u))
			return
		}
	}

	w.WriteHeader(http.StatusBadRequest)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	u, ok := s.users[chi.URLParam(r, "employee_id")]
	s.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, withStatus(u))
}

func (s *Server) listUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	list := make([]map[string]any, 0, len(s.users))
	for _, u := range s.users {
		list = append(list, withStatus(u))
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var u map[string]any
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if id := chi.URLParam(r, "employee_id"); id != "" {
		u["employee_id"] = id
	}

	s.Seed(u)
	writeJSON(w, http.StatusOK, withStatus(u))
}

func emptyObject(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": http.StatusOK})
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func withStatus(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out["status"] = http.StatusOK

	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Headers are already out; an encode failure has nowhere to go.
	_ = json.NewEncoder(w).Encode(body)
}
