package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/lotka"
	"github.com/aretw0/lotka/internal/presentation/graph"
	"github.com/aretw0/lotka/pkg/domain"
	"github.com/aretw0/lotka/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine is what the server needs from the story engine.
type Engine interface {
	NewSession(ctx context.Context) (ports.Navigator, error)
	Inspect(ctx context.Context) (*domain.Story, error)
}

// Server exposes reading sessions over JSON.
type Server struct {
	Engine   Engine
	Sessions *SessionStore

	logger    *slog.Logger
	registry  *prometheus.Registry
	storeOpts []StoreOption
}

// Option defines a functional option for configuring the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegistry serves reg on /metrics and registers the session gauge in it.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithSessionTTL evicts sessions left idle for longer than ttl.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.storeOpts = append(s.storeOpts, WithTTL(ttl))
	}
}

// WithStoreOptions passes options through to the session store.
func WithStoreOptions(opts ...StoreOption) Option {
	return func(s *Server) {
		s.storeOpts = append(s.storeOpts, opts...)
	}
}

// SessionResponse is the body of every session endpoint.
type SessionResponse struct {
	SessionID string      `json:"session_id"`
	View      domain.View `json:"view"`
	// Error carries the session failure, if any.
	Error string `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var (
	errSessionNotFound   = errors.New("session not found")
	errChoiceUnavailable = errors.New("choice not available")
	errNoHistory         = errors.New("nothing to go back to")
	errPromptClosed      = errors.New("restart prompt is not open")
)

// NewServer creates a Server over engine.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		Engine: engine,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Sessions = NewSessionStore(s.storeOpts...)
	if s.registry != nil {
		s.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "lotka",
			Subsystem: "http",
			Name:      "sessions",
			Help:      "Number of live reading sessions.",
		}, func() float64 {
			return float64(s.Sessions.Len())
		}))
	}
	return s
}

// NewHandler creates the router for a new Server over engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	return NewServer(engine, opts...).Routes()
}

// Routes builds the HTTP router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/graph", s.GetGraph)
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/choices/{index}", s.Choose)
			r.Post("/back", s.Back)
			r.Post("/restart", s.OpenRestart)
			r.Post("/restart/confirm", s.ConfirmRestart)
			r.Post("/restart/cancel", s.CancelRestart)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	nav, err := s.Engine.NewSession(r.Context())
	if nav == nil {
		s.logger.Error("CreateSession failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not start a session"})
		return
	}

	id := s.Sessions.Add(nav)

	resp := SessionResponse{SessionID: id, View: nav.View()}
	if err != nil {
		// The session exists and shows the load failure.
		s.logger.Warn("CreateSession: story failed to load", "session_id", id, "err", err)
		resp.Error = err.Error()
	} else {
		s.logger.Debug("session created", "session_id", id)
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(nav ports.Navigator) (domain.View, error) {
		return nav.View(), nil
	})
}

func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if !s.Sessions.Remove(id) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: errSessionNotFound.Error()})
		return
	}
	s.logger.Debug("session deleted", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) Choose(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "choice index must be a non-negative integer"})
		return
	}
	s.withSession(w, r, func(nav ports.Navigator) (domain.View, error) {
		view := nav.View()
		if view.RestartPrompt || index >= len(view.Choices) {
			return view, errChoiceUnavailable
		}
		return nav.Choose(index), nil
	})
}

func (s *Server) Back(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(nav ports.Navigator) (domain.View, error) {
		if view := nav.View(); !view.BackEnabled {
			return view, errNoHistory
		}
		return nav.Back(), nil
	})
}

func (s *Server) OpenRestart(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(nav ports.Navigator) (domain.View, error) {
		return nav.OpenRestart(), nil
	})
}

func (s *Server) ConfirmRestart(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(nav ports.Navigator) (domain.View, error) {
		if view := nav.View(); !view.RestartPrompt {
			return view, errPromptClosed
		}
		return nav.ConfirmRestart(), nil
	})
}

func (s *Server) CancelRestart(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(nav ports.Navigator) (domain.View, error) {
		return nav.CancelRestart(), nil
	})
}

// withSession runs op under the session lock. A rejected op answers 409 with
// the unchanged view.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, op func(ports.Navigator) (domain.View, error)) {
	id := chi.URLParam(r, "sessionID")
	sess, ok := s.Sessions.get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: errSessionNotFound.Error()})
		return
	}

	var opErr error
	view := sess.do(func(nav ports.Navigator) domain.View {
		var v domain.View
		v, opErr = op(nav)
		return v
	})

	resp := SessionResponse{SessionID: id, View: view}
	if opErr != nil {
		s.logger.Debug("session operation rejected", "session_id", id, "path", r.URL.Path, "err", opErr)
		resp.Error = opErr.Error()
		writeJSON(w, http.StatusConflict, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetGraph returns the story as JSON, or as a Mermaid flowchart with
// ?format=mermaid. A session_id parameter overlays that session's position.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	story, err := s.Engine.Inspect(r.Context())
	if err != nil {
		s.logger.Error("Inspect failed", "err", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	if !strings.EqualFold(r.URL.Query().Get("format"), "mermaid") {
		writeJSON(w, http.StatusOK, story)
		return
	}

	var overlay *graph.GraphOverlay
	if id := r.URL.Query().Get("session_id"); id != "" {
		if sess, ok := s.Sessions.get(id); ok {
			sess.mu.Lock()
			overlay = graph.OverlayFromState(sess.nav.State())
			sess.mu.Unlock()
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(story, overlay))
}

func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"app":      "lotka-http",
		"version":  strings.TrimSpace(lotka.Version),
		"sessions": s.Sessions.Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
