// Package server exposes the read-only dashboard API over the store. It
// never writes; the pipeline may be appending to the same database while
// these endpoints are served.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/store"
)

// listLimit bounds every collection endpoint.
const listLimit = 500

// Server holds the dashboard API handlers.
type Server struct {
	store store.Store
}

// New creates a dashboard API server over the given store.
func New(st store.Store) *Server {
	return &Server{store: st}
}

// Router builds the chi router with all dashboard routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", s.handleStats)
		r.Get("/events", s.handleEvents)
		r.Get("/associations", s.handleAssociations)
		r.Get("/companies", s.handleCompanies)
		r.Get("/companies/{id}/people", s.handleCompanyPeople)
		r.Get("/people", s.handlePeople)
		r.Get("/messages", s.handleMessages)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statsResponse summarizes store contents for the dashboard landing view.
type statsResponse struct {
	Events       int `json:"events"`
	Associations int `json:"associations"`
	Companies    int `json:"companies"`
	People       int `json:"people"`
	Messages     int `json:"messages"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	events, err := s.store.TopEvents(ctx, listLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	assocs, err := s.store.TopAssociations(ctx, listLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	companies, err := s.store.ListCompanies(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	people, err := s.store.ListPeopleWithCompany(ctx, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	messages, err := s.store.ListMessagesByType(ctx, model.MessageTypeLinkedInConnect)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Events:       len(events),
		Associations: len(assocs),
		Companies:    len(companies),
		People:       len(people),
		Messages:     len(messages),
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.store.TopEvents(r.Context(), listLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(events))
}

func (s *Server) handleAssociations(w http.ResponseWriter, r *http.Request) {
	assocs, err := s.store.TopAssociations(r.Context(), listLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(assocs))
}

func (s *Server) handleCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.store.TopCompanies(r.Context(), listLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(companies))
}

func (s *Server) handleCompanyPeople(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	people, err := s.store.ListPeopleByCompany(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(people))
}

func (s *Server) handlePeople(w http.ResponseWriter, r *http.Request) {
	people, err := s.store.ListPeopleWithCompany(r.Context(), 0)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(people))
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := s.store.ListMessagesByType(r.Context(), model.MessageTypeLinkedInConnect)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(messages))
}

// orEmpty keeps nil slices marshaling as [] instead of null.
func orEmpty[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, err error) {
	zap.L().Error("dashboard query failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
