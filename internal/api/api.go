// Package api is the thin query surface: argument parsing, JSON encoding
// and error classification. All real work happens in the app package.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/adam-cott/nba7/internal/app"
	"github.com/adam-cott/nba7/internal/logger"
	"github.com/adam-cott/nba7/internal/metrics"
	"github.com/adam-cott/nba7/internal/store"
	"github.com/adam-cott/nba7/internal/teams"
)

type Server struct {
	app *app.App
	log *slog.Logger
}

func NewServer(a *app.App) *Server {
	return &Server{app: a, log: logger.With("api")}
}

// Router wires all routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.recoverer)

	r.Get("/api/news", s.handleGetNews)
	r.Get("/api/polls", s.handleGetPolls)
	r.Post("/api/polls/{id}/vote", s.handleVote)

	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)

	return r
}

func (s *Server) handleGetNews(w http.ResponseWriter, r *http.Request) {
	team := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("team")))
	if team != "" && !teams.IsKnown(team) {
		errorJSON(w, http.StatusBadRequest, "unknown team identifier")
		return
	}
	forceRefresh := r.URL.Query().Get("refresh") == "true"

	result, err := s.app.GetNews(r.Context(), team, forceRefresh)
	if err != nil {
		s.log.Error("news read failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to load news")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := s.app.GetPolls(r.Context())
	if err != nil {
		s.log.Error("poll read failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to load polls")
		return
	}
	writeJSON(w, http.StatusOK, polls)
}

type voteRequest struct {
	VoterKey    string `json:"voter_key"`
	OptionIndex *int   `json:"option_index"`
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	pollID := chi.URLParam(r, "id")

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.VoterKey == "" || req.OptionIndex == nil {
		errorJSON(w, http.StatusBadRequest, "voter_key and option_index are required")
		return
	}

	poll, err := s.app.Vote(r.Context(), pollID, req.VoterKey, *req.OptionIndex)
	switch {
	case errors.Is(err, store.ErrPollNotFound):
		errorJSON(w, http.StatusNotFound, "poll not found")
	case errors.Is(err, store.ErrInvalidOption):
		errorJSON(w, http.StatusBadRequest, "option index out of range")
	case errors.Is(err, store.ErrAlreadyVoted):
		errorJSON(w, http.StatusConflict, "already voted in this poll")
	case err != nil:
		s.log.Error("vote failed", "poll", pollID, "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to record vote")
	default:
		writeJSON(w, http.StatusOK, poll)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	code := http.StatusOK
	if healthy, ok := stats["is_healthy"].(bool); ok && !healthy {
		status = "error"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]interface{}{
		"status":       status,
		"last_refresh": stats["last_refresh_time"],
		"last_error":   stats["last_error"],
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, metrics.Global.GetStats())
}

// recoverer turns an unexpected pipeline panic into a server-error
// classification; internal detail stays in the log.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("panic in handler", "path", r.URL.Path, "panic", rec)
				metrics.Global.SetError("panic serving " + r.URL.Path)
				errorJSON(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
	}
}

func errorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
