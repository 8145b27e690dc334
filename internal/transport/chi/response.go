package chi

import (
	"encoding/json"
	"net/http"

	"github.com/kailas-cloud/advsearch/internal/domain/search/aggregation"
	"github.com/kailas-cloud/advsearch/internal/domain/search/result"
	"github.com/kailas-cloud/advsearch/internal/domain/similarity"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.
const (
	ErrorCodeBadRequest   ErrorCode = "bad_request"
	ErrorCodeOutOfRange   ErrorCode = "out_of_range"
	ErrorCodeUnknownField ErrorCode = "unknown_field"
	ErrorCodeNotFound     ErrorCode = "not_found"
	ErrorCodeUnauthorized ErrorCode = "unauthorized"
	ErrorCodeInternal     ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// DocumentItem is one search hit.
type DocumentItem struct {
	ID       string         `json:"id"`
	Score    float64        `json:"score"`
	Document map[string]any `json:"document"`
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Items   []DocumentItem              `json:"items"`
	Total   int64                       `json:"total"`
	HasMore bool                        `json:"hasMore"`
	Stats   map[string]aggregation.Stat `json:"stats"`
}

// SimilarTitlesResponse is the body of GET /similar-titles.
type SimilarTitlesResponse struct {
	Items []result.Summary `json:"items"`
}

// SimilarDocumentsResponse is the body of GET /documents/{id}/similar.
type SimilarDocumentsResponse struct {
	Items []DocumentItem          `json:"items"`
	Terms []similarity.TermWeight `json:"terms"`
}

// SuggestResponse is the body of GET /fields/{field}/suggest.
type SuggestResponse struct {
	Values []string `json:"values"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func documentItems(docs []result.Document) []DocumentItem {
	items := make([]DocumentItem, len(docs))
	for i := range docs {
		src := docs[i].Source()
		if src == nil {
			src = map[string]any{}
		}
		items[i] = DocumentItem{
			ID:       docs[i].ID(),
			Score:    docs[i].Score(),
			Document: src,
		}
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
