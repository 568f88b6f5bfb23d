// Package httpapi serves the read-only leaderboard over HTTP.
//
// Routes:
//
//	GET /health
//	GET /games
//	GET /scores/{game}?limit=N
//	GET /stats
//	GET /stats/{game}
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/hexfit/internal/registry"
	"github.com/vovakirdan/hexfit/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Server bundles the router with the score store.
type Server struct {
	r      *chi.Mux
	store  *storage.Store
	logger *log.Logger
	http   *http.Server
}

// New constructs a Server and registers routes. store may be nil, in which
// case score routes answer 503.
func New(store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{r: chi.NewRouter(), store: store, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/games", s.handleGames)
	s.r.Get("/scores/{game}", s.handleScores)
	s.r.Get("/stats", s.handleAllStats)
	s.r.Get("/stats/{game}", s.handleStats)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.r }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP API", "address", addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

type gameScores struct {
	Game   string               `json:"game"`
	Scores []storage.ScoreEntry `json:"scores"`
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, registry.List())
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	gameID, ok := s.gameParam(w, r)
	if !ok {
		return
	}

	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		limit = min(n, maxLimit)
	}

	scores, err := s.store.TopScores(gameID, limit)
	if err != nil {
		s.logger.Error("cannot load scores", "game", gameID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	if scores == nil {
		scores = []storage.ScoreEntry{}
	}
	s.writeJSON(w, http.StatusOK, gameScores{Game: gameID, Scores: scores})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	gameID, ok := s.gameParam(w, r)
	if !ok {
		return
	}
	stats, err := s.store.GetGameStats(gameID)
	if err != nil {
		s.logger.Error("cannot load stats", "game", gameID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleAllStats(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "no_storage")
		return
	}
	stats, err := s.store.GetAllGamesStats()
	if err != nil {
		s.logger.Error("cannot load stats", "error", err)
		s.writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

// gameParam validates the {game} URL parameter and the store.
func (s *Server) gameParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	gameID := chi.URLParam(r, "game")
	if !registry.Exists(gameID) {
		s.writeError(w, http.StatusNotFound, "unknown_game")
		return "", false
	}
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "no_storage")
		return "", false
	}
	return gameID, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := sonic.Marshal(v)
	if err != nil {
		s.logger.Error("cannot encode response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func (s *Server) writeError(w http.ResponseWriter, status int, code string) {
	s.writeJSON(w, status, map[string]string{"error": code})
}

// requestLogger logs one line per request with status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// jsonContentType defaults every response to JSON.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
