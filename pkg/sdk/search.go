package advsearch

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/advsearch/internal/domain/search/aggregation"
	"github.com/kailas-cloud/advsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/advsearch/internal/domain/search/request"
	"github.com/kailas-cloud/advsearch/internal/domain/search/result"
	"github.com/kailas-cloud/advsearch/internal/domain/search/sorting"
	"github.com/kailas-cloud/advsearch/internal/domain/similarity"
)

// Search runs a faceted search and returns one page of hits with per-field
// statistics. Pages past the first 5000 results fail with ErrOutOfRange.
func (c *Client) Search(ctx context.Context, p SearchParams) (res SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	req, err := c.searchRequest(p)
	if err != nil {
		return SearchResult{}, err
	}

	page, err := c.search.Search(ctx, req)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w", err)
	}

	return SearchResult{
		Hits:    hitsFromDocuments(page.Documents),
		Total:   page.Total,
		HasMore: page.HasMore,
		Stats:   statsFromAggregation(page.Stats),
	}, nil
}

func (c *Client) searchRequest(p SearchParams) (request.Search, error) {
	filters := filter.NewSet()
	for _, f := range c.catalog.Filterable() {
		raw, ok := p.Filters[f.Name()]
		if !ok {
			continue
		}
		v, err := filter.Decode(f.FieldType(), raw)
		if err != nil {
			return request.Search{}, fmt.Errorf("search: filter %q: %w", f.Name(), err)
		}
		filters = filters.With(f.Name(), v)
	}

	page := p.Page
	if page == 0 {
		page = 1
	}
	req, err := request.New(p.Query, filters, page, request.DefaultPageSize, sorting.Key(p.SortBy), p.Seed)
	if err != nil {
		return request.Search{}, fmt.Errorf("search: %w", err)
	}
	return req, nil
}

// SimilarTitles finds up to ten documents whose title fuzzily contains every
// word of title. A negative excludeID excludes nothing.
func (c *Client) SimilarTitles(ctx context.Context, title string, excludeID int64) (matches []TitleMatch, err error) {
	start := time.Now()
	defer func() { c.obs.observe("similar_titles", start, err) }()

	summaries, err := c.search.SimilarTitles(ctx, title, excludeID)
	if err != nil {
		return nil, fmt.Errorf("similar titles: %w", err)
	}

	matches = make([]TitleMatch, len(summaries))
	for i, s := range summaries {
		matches[i] = TitleMatch{ID: s.ID, Title: s.Title, Slug: s.Slug}
	}
	return matches, nil
}

// SimilarDocuments finds up to six documents sharing the most distinctive
// terms of document id within a field group such as "items" or
// "title/description". Unknown groups and documents yield an empty result.
func (c *Client) SimilarDocuments(ctx context.Context, id int64, group string) (res SimilarResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("similar_documents", start, err) }()

	docs, weights, err := c.search.SimilarDocuments(ctx, id, group)
	if err != nil {
		return SimilarResult{}, fmt.Errorf("similar documents: %w", err)
	}
	return SimilarResult{Hits: hitsFromDocuments(docs), Terms: termsFromWeights(weights)}, nil
}

// Suggest returns up to twenty autocomplete values of a field. An empty
// prefix returns the field's most common values. Unknown fields fail with
// ErrUnknownField.
func (c *Client) Suggest(ctx context.Context, fieldName, prefix string) (values []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("suggest", start, err) }()

	values, err = c.search.Suggest(ctx, fieldName, prefix)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return values, nil
}

func hitsFromDocuments(docs []result.Document) []Hit {
	hits := make([]Hit, len(docs))
	for i := range docs {
		hits[i] = Hit{ID: docs[i].ID(), Score: docs[i].Score(), Source: docs[i].Source()}
	}
	return hits
}

func termsFromWeights(weights []similarity.TermWeight) []Term {
	terms := make([]Term, len(weights))
	for i, w := range weights {
		terms[i] = Term{Field: w.Field, Term: w.Term, Weight: w.Weight}
	}
	return terms
}

func statsFromAggregation(stats map[string]aggregation.Stat) map[string]FieldStat {
	out := make(map[string]FieldStat, len(stats))
	for name, s := range stats {
		switch st := s.(type) {
		case aggregation.IntegerStat:
			out[name] = FieldStat{Type: FieldInteger, Min: st.Min, Max: st.Max, CountUnknown: st.CountUnknown}
		case aggregation.BooleanStat:
			out[name] = FieldStat{
				Type:         FieldBoolean,
				CountUnknown: st.CountUnknown,
				CountAll:     st.CountAll,
				CountNo:      st.CountNo,
				CountYes:     st.CountYes,
			}
		case aggregation.StringStat:
			buckets := make([]Bucket, len(st.Buckets))
			for i, b := range st.Buckets {
				buckets[i] = Bucket{Value: b.Key, Count: b.DocCount}
			}
			out[name] = FieldStat{Type: FieldString, CountUnknown: st.CountUnknown, Buckets: buckets}
		}
	}
	return out
}
