package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"templatehub/internal/catalog/models"
	"templatehub/internal/errors"
	"templatehub/internal/http/response"
	"templatehub/internal/tags"
	"templatehub/internal/view"
)

// entryJSON is an entry plus its resolved badges.
type entryJSON struct {
	models.Entry
	Badges []tags.Tag `json:"badges"`
}

// ListResponse is the body of GET /api/templates.
type ListResponse struct {
	Entries       []entryJSON `json:"entries"`
	AvailableTags []tags.Tag  `json:"available_tags"`
	SelectedTags  []string    `json:"selected_tags"`
	Query         string      `json:"query,omitempty"`
	State         string      `json:"state"`
	Total         int         `json:"total"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string    `json:"status"`
	Content  string    `json:"content"`
	Entries  int       `json:"entries"`
	Skipped  []string  `json:"skipped,omitempty"`
	LoadedAt time.Time `json:"loaded_at,omitzero"`
	Uptime   string    `json:"uptime"`
}

func (s *Server) handleAPIList(w http.ResponseWriter, r *http.Request) {
	cat, err := s.store.Get()
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	m := modelFor(cat, r)
	visible := m.VisibleEntries()
	entries := make([]entryJSON, len(visible))
	for i, e := range visible {
		entries[i] = entryJSON{Entry: e, Badges: nonNil(view.BadgesFor(e))}
	}

	response.Success(w, ListResponse{
		Entries:       entries,
		AvailableTags: nonNil(m.AvailableTags()),
		SelectedTags:  nonNil(m.SelectedTags()),
		Query:         m.Query(),
		State:         m.State().String(),
		Total:         len(m.Entries()),
	}, s.logger)
}

func (s *Server) handleAPIDetail(w http.ResponseWriter, r *http.Request) {
	cat, err := s.store.Get()
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	doc, err := cat.Resolve(chi.URLParam(r, "slug"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, struct {
		models.Document
		Badges []tags.Tag `json:"badges"`
	}{doc, nonNil(view.BadgesFor(doc.Entry))}, s.logger)
}

func (s *Server) handleAPITags(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, tags.All(), s.logger)
}

func (s *Server) handleRateLimited(w http.ResponseWriter, _ *http.Request) {
	response.HandleError(w, errors.New(errors.CodeRateLimited, "rate limit exceeded"), s.logger)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	health := HealthResponse{
		Status:  "ok",
		Content: s.store.Root(),
		Uptime:  time.Since(s.startedAt).Round(time.Second).String(),
	}

	cat, err := s.store.Get()
	if err != nil {
		health.Status = "unavailable"
		response.JSON(w, errors.CodeOf(err).HTTPStatus(), health, s.logger)
		return
	}

	health.Entries = cat.Len()
	health.Skipped = cat.Skipped()
	health.LoadedAt = cat.LoadedAt()
	if len(health.Skipped) > 0 {
		health.Status = "degraded"
	}
	response.Success(w, health, s.logger)
}

// nonNil keeps empty lists as [] rather than null in JSON.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
