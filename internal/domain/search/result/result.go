package result

import "github.com/kailas-cloud/advsearch/internal/domain/search/aggregation"

// Document is a single search hit.
type Document struct {
	id     string
	score  float64
	source map[string]any
}

// New creates a search hit.
func New(id string, score float64, source map[string]any) Document {
	return Document{id: id, score: score, source: source}
}

// ID returns the index document identifier.
func (d *Document) ID() string { return d.id }

// Score returns the relevance score.
func (d *Document) Score() float64 { return d.score }

// Source returns the stored document fields.
func (d *Document) Source() map[string]any { return d.source }

// Summary is the compact form returned by title lookups.
type Summary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Page is one page of search hits plus field statistics.
type Page struct {
	Documents []Document
	Total     int64
	HasMore   bool
	Stats     map[string]aggregation.Stat
}

// NewPage builds a page ending at result position end (page*pageSize).
func NewPage(docs []Document, total int64, end int, stats map[string]aggregation.Stat) Page {
	return Page{
		Documents: docs,
		Total:     total,
		HasMore:   total > int64(end),
		Stats:     stats,
	}
}
