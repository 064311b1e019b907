// Package server exposes the expense tracker over a small JSON HTTP API.
// One running process serves one set of in-memory sessions; nothing about a
// session survives a restart.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/spendwise-dev/spendwise/internal/config"
	"github.com/spendwise-dev/spendwise/internal/expenses"
	"github.com/spendwise-dev/spendwise/internal/session"
	"github.com/spendwise-dev/spendwise/internal/users"
)

// TokenHeader carries the session token on authenticated requests.
const TokenHeader = "X-Session-Token"

// Server wires the stores, session manager and config behind the HTTP API.
type Server struct {
	dataDir  string
	cfg      *config.Config
	users    *users.Service
	expenses *expenses.Service
	sessions *session.Manager
}

// New creates a Server rooted at a data directory.
func New(dataDir string, cfg *config.Config) *Server {
	us := users.NewService(dataDir)
	return &Server{
		dataDir:  dataDir,
		cfg:      cfg,
		users:    us,
		expenses: expenses.NewService(dataDir),
		sessions: session.NewManager(us, session.NewMemoryStore()),
	}
}

// Router builds the chi route table.
func (s *Server) Router() *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(middleware.Logger)

	mux.Post("/auth/register", s.handleRegister)
	mux.Post("/auth/login", s.handleLogin)
	mux.Post("/auth/logout", s.handleLogout)

	mux.Route("/api", func(api chi.Router) {
		api.Get("/dashboard", s.handleDashboard)
		api.Get("/expenses", s.handleListExpenses)
		api.Post("/expenses", s.handleAddExpense)
		api.Get("/charts", s.handleCharts)
		api.Post("/charts/next", s.handleChartsNext)
		api.Post("/charts/prev", s.handleChartsPrev)
	})

	return mux
}

// ListenAndServe runs the API on the configured address.
func (s *Server) ListenAndServe() error {
	return http.ListenAndServe(s.cfg.Server.Addr, s.Router())
}

// currentSession resolves the request's token, writing a 401 on failure.
func (s *Server) currentSession(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	token := r.Header.Get(TokenHeader)
	if token == "" {
		http.Error(w, "Unauthorized: missing session token", http.StatusUnauthorized)
		return session.Session{}, false
	}
	sess, err := s.sessions.Current(token)
	if err != nil {
		http.Error(w, "Unauthorized: invalid session token", http.StatusUnauthorized)
		return session.Session{}, false
	}
	return sess, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
