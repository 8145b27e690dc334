package query

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/advsearch/internal/domain/field"
	"github.com/kailas-cloud/advsearch/internal/domain/search/aggregation"
	"github.com/kailas-cloud/advsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/advsearch/internal/domain/search/request"
	"github.com/kailas-cloud/advsearch/internal/domain/search/sorting"
)

// Free-text matching parameters.
const (
	ClauseSeparator   = " OR "
	MultiMatchType    = "most_fields"
	Fuzziness         = "AUTO"
	FuzzyPrefixLength = 2
	// RandomScoreField is the per-document input of the random score.
	RandomScoreField = "id"
)

// Catalog is the field lookup the builder needs.
type Catalog interface {
	Freetext() []field.Descriptor
	Filterable() []field.Descriptor
	Get(name string) (field.Descriptor, error)
}

// Search is a fully built index query.
type Search struct {
	Query        Node
	HasQuery     bool
	From         int
	Size         int
	Sort         sorting.Spec
	Aggregations aggregation.Plan
	// Skipped lists filter names missing from the catalog.
	Skipped []string
}

// Build turns a validated request into an index query.
func Build(req request.Search, catalog Catalog) (Search, error) {
	aggs, err := aggregation.PlanFor(catalog.Filterable())
	if err != nil {
		return Search{}, fmt.Errorf("plan aggregations: %w", err)
	}

	var must []Node
	text, hasQuery := FreeText(req.Query(), catalog.Freetext())
	if hasQuery {
		must = append(must, text)
	}

	var skipped []string
	for _, e := range req.Filters().Entries() {
		f, err := catalog.Get(e.Field)
		if err != nil {
			skipped = append(skipped, e.Field)
			continue
		}
		if clause, ok := FilterClause(f, e.Value); ok {
			must = append(must, clause)
		}
	}

	var root Node = MatchAll{}
	if len(must) > 0 {
		root = AllOf(must...)
	}

	sortKey := req.SortKey()
	if sortKey == sorting.Random || !hasQuery {
		root = RandomScore{Query: root, Seed: req.Seed(), Field: RandomScoreField}
	}

	return Search{
		Query:        root,
		HasQuery:     hasQuery,
		From:         req.Offset(),
		Size:         req.PageSize(),
		Sort:         sorting.Resolve(sortKey),
		Aggregations: aggs,
		Skipped:      skipped,
	}, nil
}

// FreeText parses "a b OR c" into OR-ed clauses of AND-ed fuzzy terms.
// It reports false when the text holds no terms.
func FreeText(text string, fields []field.Descriptor) (Node, bool) {
	boosted := make([]BoostedField, 0, len(fields))
	for _, f := range fields {
		boosted = append(boosted, BoostedField{Name: f.Name(), Boost: f.SearchBoost()})
	}

	var clauses []Node
	for _, part := range strings.Split(text, ClauseSeparator) {
		var terms []Node
		for _, term := range strings.Split(part, " ") {
			if strings.TrimSpace(term) == "" {
				continue
			}
			terms = append(terms, MultiMatch{
				Query:        term,
				Fields:       boosted,
				Type:         MultiMatchType,
				Fuzziness:    Fuzziness,
				PrefixLength: FuzzyPrefixLength,
			})
		}
		if len(terms) > 0 {
			clauses = append(clauses, AllOf(terms...))
		}
	}
	if len(clauses) == 0 {
		return nil, false
	}
	return AnyOf(clauses...), true
}

// FilterClause renders one decoded filter. It reports false for an empty filter.
func FilterClause(f field.Descriptor, v filter.Value) (Node, bool) {
	if v == nil || v.IsEmpty() {
		return nil, false
	}

	var (
		clause         Node
		includeUnknown bool
	)
	switch fv := v.(type) {
	case filter.IntRange:
		var ranges []Node
		if fv.Min() != nil {
			ranges = append(ranges, Range{Field: f.TermField(), GTE: fv.Min()})
		}
		if fv.Max() != nil {
			ranges = append(ranges, Range{Field: f.TermField(), LTE: fv.Max()})
		}
		clause, includeUnknown = AllOf(ranges...), fv.IncludeUnknown()
	case filter.BoolChoice:
		clause, includeUnknown = Term{Field: f.TermField(), Value: *fv.Value()}, fv.IncludeUnknown()
	case filter.StringSet:
		alts := make([]Node, 0, len(fv.Values())+1)
		for _, s := range fv.Values() {
			alts = append(alts, Term{Field: f.TermField(), Value: s})
		}
		if fv.IncludeUnknown() {
			alts = append(alts, Absent(f.Name()))
		}
		return AnyOf(alts...), true
	default:
		return nil, false
	}

	if includeUnknown {
		return AnyOf(clause, Absent(f.Name())), true
	}
	return clause, true
}
