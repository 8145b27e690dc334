package db

import (
	"encoding/json"

	"github.com/kailas-cloud/advsearch/internal/domain/search/aggregation"
	"github.com/kailas-cloud/advsearch/internal/domain/search/query"
	"github.com/kailas-cloud/advsearch/internal/domain/search/sorting"
)

// SearchRequest is the input of a search round trip.
type SearchRequest struct {
	Query query.Node
	From  int
	Size  int
	Sort  sorting.Spec
	Aggs  aggregation.Plan
	// Source lists the stored fields to return. Nil returns all of them.
	Source []string
	// NoSource suppresses document bodies entirely.
	NoSource bool
	// Highlight names a field to return plain highlighted fragments for.
	Highlight    string
	RequestCache bool
}

// SearchResponse is the output of a search round trip.
type SearchResponse struct {
	Total        int64
	Hits         []Hit
	Aggregations aggregation.Results
}

// Hit is one matching document.
type Hit struct {
	ID        string
	Score     float64
	Source    json.RawMessage
	Highlight map[string][]string
}

// TermVectorsRequest asks for the term statistics of one stored document.
type TermVectorsRequest struct {
	ID     string
	Fields []string
}
