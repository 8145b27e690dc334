package chi

import (
	"net/http"

	"github.com/kailas-cloud/advsearch/internal/domain/similarity"
	healthuc "github.com/kailas-cloud/advsearch/internal/usecase/health"
)

// Server serves the search HTTP API.
type Server struct {
	search        SearchService
	health        HealthChecker
	catalog       FilterCatalog
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search SearchService, health HealthChecker, catalog FilterCatalog) *Server {
	return &Server{
		search:        search,
		health:        health,
		catalog:       catalog,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Search handles GET /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	req, err := s.searchRequest(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	page, err := s.search.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Items:   documentItems(page.Documents),
		Total:   page.Total,
		HasMore: page.HasMore,
		Stats:   page.Stats,
	})
}

// SimilarTitles handles GET /similar-titles.
func (s *Server) SimilarTitles(w http.ResponseWriter, r *http.Request) {
	var (
		title    string
		ignoreID int64 = -1
	)
	if err := optionalQuery(r, paramTitle, &title); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if err := optionalQuery(r, paramIgnoreID, &ignoreID); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items, err := s.search.SimilarTitles(r.Context(), title, ignoreID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SimilarTitlesResponse{Items: items})
}

// SimilarDocuments handles GET /documents/{id}/similar.
func (s *Server) SimilarDocuments(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	var group string
	if err := optionalQuery(r, paramFieldGroup, &group); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	docs, terms, err := s.search.SimilarDocuments(r.Context(), id, group)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if terms == nil {
		terms = []similarity.TermWeight{}
	}
	writeJSON(w, http.StatusOK, SimilarDocumentsResponse{Items: documentItems(docs), Terms: terms})
}

// Suggest handles GET /fields/{field}/suggest.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	name, err := pathString(r, "field")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	var prefix string
	if err := optionalQuery(r, paramQuery, &prefix); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	values, err := s.search.Suggest(r.Context(), name, prefix)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if values == nil {
		values = []string{}
	}
	writeJSON(w, http.StatusOK, SuggestResponse{Values: values})
}

// HealthCheck handles GET /health. Only an unhealthy index answers 503.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(report.Status), Checks: checks})
}
