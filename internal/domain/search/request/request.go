package request

import (
	"fmt"

	"github.com/kailas-cloud/advsearch/internal/domain"
	"github.com/kailas-cloud/advsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/advsearch/internal/domain/search/sorting"
)

// Search parameter limits.
const (
	// MaxResults is the deepest result position a search may page to.
	MaxResults      = 5000
	DefaultPageSize = 20
)

// Search is a validated, immutable search request.
type Search struct {
	query    string
	filters  filter.Set
	page     int
	pageSize int
	sortKey  sorting.Key
	seed     string
}

// New validates a search request.
// The page must be positive and page*pageSize must not pass MaxResults.
func New(
	query string,
	filters filter.Set,
	page, pageSize int,
	sortKey sorting.Key,
	seed string,
) (Search, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		return Search{}, fmt.Errorf("%w: page %d must be at least 1", domain.ErrOutOfRange, page)
	}
	// page*pageSize > MaxResults, without overflowing int.
	if page > MaxResults/pageSize {
		return Search{}, fmt.Errorf("%w: page %d exceeds the first %d results", domain.ErrOutOfRange, page, MaxResults)
	}

	return Search{
		query:    query,
		filters:  filters,
		page:     page,
		pageSize: pageSize,
		sortKey:  sortKey,
		seed:     seed,
	}, nil
}

// Query returns the free-text query.
func (s *Search) Query() string { return s.query }

// Filters returns the decoded per-field filters.
func (s *Search) Filters() filter.Set { return s.filters }

// Page returns the 1-based page number.
func (s *Search) Page() int { return s.page }

// PageSize returns the number of hits per page.
func (s *Search) PageSize() int { return s.pageSize }

// Offset returns the index of the first hit of the page.
func (s *Search) Offset() int { return (s.page - 1) * s.pageSize }

// SortKey returns the requested ordering.
func (s *Search) SortKey() sorting.Key { return s.sortKey }

// Seed returns the random-order seed.
func (s *Search) Seed() string { return s.seed }

// WithSeed returns a copy of the request using seed for random ordering.
func (s *Search) WithSeed(seed string) Search {
	c := *s
	c.seed = seed
	return c
}
