package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/advsearch/internal/domain/search/aggregation"
	"github.com/kailas-cloud/advsearch/internal/domain/search/query"
	"github.com/kailas-cloud/advsearch/internal/domain/search/request"
	"github.com/kailas-cloud/advsearch/internal/domain/search/result"
	"github.com/kailas-cloud/advsearch/internal/domain/similarity"
	"github.com/kailas-cloud/advsearch/internal/logger"
)

// SuggestLimit caps autocomplete results.
const SuggestLimit = 20

// Service handles document search, similarity lookups and autocomplete.
type Service struct {
	repo    Repository
	values  ValueSource
	catalog Catalog
	groups  similarity.Groups
	seeds   SeedSource
}

// New creates a search service. A nil groups map uses similarity.DefaultGroups.
func New(repo Repository, values ValueSource, catalog Catalog, groups similarity.Groups, seeds SeedSource) *Service {
	if groups == nil {
		groups = similarity.DefaultGroups()
	}
	return &Service{repo: repo, values: values, catalog: catalog, groups: groups, seeds: seeds}
}

// Search runs a faceted search and returns one page of hits with field statistics.
func (s *Service) Search(ctx context.Context, req request.Search) (result.Page, error) {
	if req.Seed() == "" && s.seeds != nil {
		req = req.WithSeed(s.seeds.Seed())
	}

	q, err := query.Build(req, s.catalog)
	if err != nil {
		return result.Page{}, fmt.Errorf("build query: %w", err)
	}
	if len(q.Skipped) > 0 {
		logger.FromContext(ctx).Debug("Ignoring unknown filter fields", zap.Strings("fields", q.Skipped))
	}

	docs, total, aggs, err := s.repo.Search(ctx, q)
	if err != nil {
		return result.Page{}, err
	}

	stats, err := aggregation.Format(s.catalog.Filterable(), aggs)
	if err != nil {
		return result.Page{}, fmt.Errorf("format aggregations: %w", err)
	}

	return result.NewPage(docs, total, req.Page()*req.PageSize(), stats), nil
}

// SimilarTitles finds documents whose title fuzzily contains every word of title.
// A negative excludeID excludes nothing. An empty title yields no results.
func (s *Service) SimilarTitles(ctx context.Context, title string, excludeID int64) ([]result.Summary, error) {
	if title == "" {
		return []result.Summary{}, nil
	}
	return s.repo.FindSummaries(ctx, similarity.TitlesLike(title, excludeID), similarity.TitleMaxResults)
}

// SimilarDocuments finds documents sharing the most distinctive terms of
// document id within a field group. It also returns the terms used.
// Unknown groups, unknown documents and documents without usable terms yield empty results.
func (s *Service) SimilarDocuments(
	ctx context.Context, id int64, group string,
) ([]result.Document, []similarity.TermWeight, error) {
	ctx = logger.With(ctx, zap.Int64("document_id", id), zap.String("field_group", group))

	fields, ok := s.groups.Fields(group)
	if !ok {
		logger.FromContext(ctx).Debug("Unknown field group")
		return []result.Document{}, []similarity.TermWeight{}, nil
	}

	internalID, found, err := s.repo.LookupInternalID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		logger.FromContext(ctx).Debug("Source document not found")
		return []result.Document{}, []similarity.TermWeight{}, nil
	}

	stats, err := s.repo.TermStatistics(ctx, internalID, fields)
	if err != nil {
		return nil, nil, err
	}

	terms := similarity.Rank(stats)
	if len(terms) == 0 {
		logger.FromContext(ctx).Debug("Source document has no weighted terms")
		return []result.Document{}, []similarity.TermWeight{}, nil
	}

	docs, err := s.repo.FindDocuments(ctx, similarity.DocumentsLike(terms, id), similarity.MaxResults)
	if err != nil {
		return nil, nil, err
	}
	return docs, terms, nil
}

// Suggest returns autocomplete values for a field. An empty prefix returns
// the field's most common values, otherwise values matching the prefix.
func (s *Service) Suggest(ctx context.Context, fieldName, prefix string) ([]string, error) {
	f, err := s.catalog.Get(fieldName)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	if prefix == "" {
		if !f.Aggregatable() {
			return []string{}, nil
		}
		values, err := s.values.MostCommonValues(ctx, f.AggregationTarget(), SuggestLimit)
		if err != nil {
			return nil, err
		}
		return values, nil
	}

	fragments, err := s.repo.PrefixFragments(ctx, f.Name(), prefix, SuggestLimit)
	if err != nil {
		return nil, err
	}
	return dedupe(fragments), nil
}

// dedupe flattens per-hit fragments keeping the first occurrence of each value.
func dedupe(perHit [][]string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, frags := range perHit {
		for _, f := range frags {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}
	return out
}
