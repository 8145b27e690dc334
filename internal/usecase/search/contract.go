package search

import (
	"context"

	"github.com/kailas-cloud/advsearch/internal/domain/search/aggregation"
	"github.com/kailas-cloud/advsearch/internal/domain/search/query"
	"github.com/kailas-cloud/advsearch/internal/domain/search/result"
	"github.com/kailas-cloud/advsearch/internal/domain/similarity"
)

// Repository defines the index contract for search operations.
type Repository interface {
	Search(ctx context.Context, q query.Search) ([]result.Document, int64, aggregation.Results, error)
	FindDocuments(ctx context.Context, node query.Node, limit int) ([]result.Document, error)
	FindSummaries(ctx context.Context, node query.Node, limit int) ([]result.Summary, error)
	LookupInternalID(ctx context.Context, externalID int64) (string, bool, error)
	TermStatistics(ctx context.Context, internalID string, fields []string) ([]similarity.FieldStats, error)
	PrefixFragments(ctx context.Context, fieldName, prefix string, size int) ([][]string, error)
}

// ValueSource returns the most frequent values of an aggregation field.
type ValueSource interface {
	MostCommonValues(ctx context.Context, aggField string, size int) ([]string, error)
}

// Catalog looks up searchable fields.
type Catalog interface {
	query.Catalog
}

// SeedSource supplies the default random-order seed.
type SeedSource interface {
	Seed() string
}
