package chi

import (
	"context"

	"github.com/kailas-cloud/advsearch/internal/domain/field"
	"github.com/kailas-cloud/advsearch/internal/domain/search/request"
	"github.com/kailas-cloud/advsearch/internal/domain/search/result"
	"github.com/kailas-cloud/advsearch/internal/domain/similarity"
	healthuc "github.com/kailas-cloud/advsearch/internal/usecase/health"
)

// SearchService is the search use case as seen by the HTTP layer.
type SearchService interface {
	Search(ctx context.Context, req request.Search) (result.Page, error)
	SimilarTitles(ctx context.Context, title string, excludeID int64) ([]result.Summary, error)
	SimilarDocuments(ctx context.Context, id int64, group string) ([]result.Document, []similarity.TermWeight, error)
	Suggest(ctx context.Context, fieldName, prefix string) ([]string, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// FilterCatalog lists the fields whose raw query parameters are decoded as filters.
type FilterCatalog interface {
	Filterable() []field.Descriptor
}
