package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/advsearch/internal/db"
	"github.com/kailas-cloud/advsearch/internal/domain/search/aggregation"
	"github.com/kailas-cloud/advsearch/internal/domain/search/query"
	"github.com/kailas-cloud/advsearch/internal/domain/search/result"
	"github.com/kailas-cloud/advsearch/internal/domain/similarity"
)

// store is the consumer interface for index operations (ISP).
type store interface {
	Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResponse, error)
	TermVectors(ctx context.Context, req *db.TermVectorsRequest) ([]similarity.FieldStats, error)
}

// Repo implements usecase/search.Repository over the document index.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Search runs a built query and returns one page of hits with raw aggregations.
func (r *Repo) Search(ctx context.Context, q query.Search) ([]result.Document, int64, aggregation.Results, error) {
	resp, err := r.store.Search(ctx, &db.SearchRequest{
		Query: q.Query,
		From:  q.From,
		Size:  q.Size,
		Sort:  q.Sort,
		Aggs:  q.Aggregations,
	})
	if err != nil {
		return nil, 0, nil, fmt.Errorf("search documents: %w", err)
	}

	docs, err := toDocuments(resp.Hits)
	if err != nil {
		return nil, 0, nil, err
	}
	return docs, resp.Total, resp.Aggregations, nil
}

// FindDocuments returns up to limit documents matching node, in score order.
func (r *Repo) FindDocuments(ctx context.Context, node query.Node, limit int) ([]result.Document, error) {
	resp, err := r.store.Search(ctx, &db.SearchRequest{Query: node, Size: limit})
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}
	return toDocuments(resp.Hits)
}

// FindSummaries returns the id, title and slug of up to limit documents matching node.
func (r *Repo) FindSummaries(ctx context.Context, node query.Node, limit int) ([]result.Summary, error) {
	resp, err := r.store.Search(ctx, &db.SearchRequest{
		Query:  node,
		Size:   limit,
		Source: similarity.TitleSource,
	})
	if err != nil {
		return nil, fmt.Errorf("find summaries: %w", err)
	}

	out := make([]result.Summary, 0, len(resp.Hits))
	for _, h := range resp.Hits {
		var s result.Summary
		if err := json.Unmarshal(h.Source, &s); err != nil {
			return nil, fmt.Errorf("decode summary %s: %w", h.ID, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// LookupInternalID resolves an external document id to the index id.
// It reports false when no document carries the id.
func (r *Repo) LookupInternalID(ctx context.Context, externalID int64) (string, bool, error) {
	resp, err := r.store.Search(ctx, &db.SearchRequest{
		Query:    similarity.ByID(externalID),
		Size:     1,
		NoSource: true,
	})
	if err != nil {
		return "", false, fmt.Errorf("lookup document %d: %w", externalID, err)
	}
	if len(resp.Hits) != 1 {
		return "", false, nil
	}
	return resp.Hits[0].ID, true, nil
}

// TermStatistics fetches per-field term statistics of an indexed document.
// A document that disappeared since lookup yields no statistics.
func (r *Repo) TermStatistics(ctx context.Context, internalID string, fields []string) ([]similarity.FieldStats, error) {
	stats, err := r.store.TermVectors(ctx, &db.TermVectorsRequest{ID: internalID, Fields: fields})
	if err != nil {
		if errors.Is(err, db.ErrDocumentNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("term vectors %s: %w", internalID, err)
	}
	return stats, nil
}

// MostCommonValues returns up to size values of an aggregation field, most frequent first.
func (r *Repo) MostCommonValues(ctx context.Context, aggField string, size int) ([]string, error) {
	resp, err := r.store.Search(ctx, &db.SearchRequest{
		Query:        query.MatchAll{},
		Size:         0,
		Aggs:         aggregation.MostCommon(aggField, aggField, size),
		RequestCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("most common values %s: %w", aggField, err)
	}

	buckets := resp.Aggregations[aggField].Buckets
	out := make([]string, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, b.Key)
	}
	return out, nil
}

// PrefixFragments runs a phrase-prefix match on fieldName and returns the
// plain highlighted fragments of each hit, in hit order.
func (r *Repo) PrefixFragments(ctx context.Context, fieldName, prefix string, size int) ([][]string, error) {
	resp, err := r.store.Search(ctx, &db.SearchRequest{
		Query:     query.MatchPhrasePrefix{Field: fieldName, Query: prefix},
		Size:      size,
		NoSource:  true,
		Highlight: fieldName,
	})
	if err != nil {
		return nil, fmt.Errorf("prefix fragments %s: %w", fieldName, err)
	}

	out := make([][]string, 0, len(resp.Hits))
	for _, h := range resp.Hits {
		if frags := h.Highlight[fieldName]; len(frags) > 0 {
			out = append(out, frags)
		}
	}
	return out, nil
}

func toDocuments(hits []db.Hit) ([]result.Document, error) {
	docs := make([]result.Document, 0, len(hits))
	for _, h := range hits {
		var source map[string]any
		if len(h.Source) > 0 {
			if err := json.Unmarshal(h.Source, &source); err != nil {
				return nil, fmt.Errorf("decode document %s: %w", h.ID, err)
			}
		}
		docs = append(docs, result.New(h.ID, h.Score, source))
	}
	return docs, nil
}
