package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/mockid/internal/core"
	"github.com/JonMunkholm/mockid/internal/logging"
	"github.com/JonMunkholm/mockid/internal/web/templates"
)

// LookupResponse is the success body of the lookup endpoints.
type LookupResponse struct {
	Success bool        `json:"success"`
	Data    core.Record `json:"data"`
}

// RecordsResponse is the body of the search and sample endpoints.
type RecordsResponse struct {
	Count   int           `json:"count"`
	Results []core.Record `json:"results"`
}

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status  string                 `json:"status"`
	Records int                    `json:"records"`
	Scans   core.ScanLimiterStatus `json:"scans"`
}

// handleLookup serves GET /api/lookup?aadhaar=<id>.
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, r, errMethodNotAllowed)
		return
	}
	s.lookup(w, r, r.URL.Query().Get("aadhaar"))
}

// handleGetRecord serves GET /api/records/{id}.
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	s.lookup(w, r, chi.URLParam(r, "id"))
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request, id string) {
	rec, err := s.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LookupResponse{Success: true, Data: rec})
}

// handleSearch serves GET /api/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := core.CriteriaInput{
		Name:   q.Get("name"),
		Gender: q.Get("gender"),
		State:  q.Get("state"),
		City:   q.Get("city"),
		MinAge: q.Get("minAge"),
		MaxAge: q.Get("maxAge"),
		Limit:  q.Get("limit"),
	}

	results, err := s.service.Search(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}

	logging.WithFields(r.Context(), "operation", "search").Debug("search complete", "results", len(results))
	writeJSON(w, http.StatusOK, RecordsResponse{Count: len(results), Results: results})
}

// handleSample serves GET /api/sample?count=<n>.
func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	count, err := parseCount(r.URL.Query().Get("count"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	results, err := s.service.Sample(r.Context(), count)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RecordsResponse{Count: len(results), Results: results})
}

// parseCount reads the optional sample size. Empty means the default.
func parseCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return core.DefaultSampleCount, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: count must be a positive integer, got %q", core.ErrInvalidCriteria, raw)
	}
	return n, nil
}

// handleStats serves GET /api/stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.service.Stats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// handleStates serves GET /api/states.
func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	states, err := s.service.States(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, states)
}

// handleCities serves GET /api/cities.
func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	cities, err := s.service.Cities(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cities)
}

// handleHealth serves GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Records: s.service.RecordCount(),
		Scans:   s.service.ScanStatus(),
	})
}

// handleDashboard renders the statistics page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	st, err := s.service.Stats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Dashboard(st).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render dashboard", "error", err)
	}
}
