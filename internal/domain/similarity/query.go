package similarity

import "github.com/kailas-cloud/advsearch/internal/domain/search/query"

// Query parameters of the similarity searches.
const (
	MinimumShouldMatch = "25%"
	MaxResults         = 6
	TitleMaxResults    = 10
	IDField            = "id"
	TitleField         = "title"
)

// TitleSource lists the stored fields returned by title lookups.
var TitleSource = []string{"id", "title", "slug"}

// DocumentsLike matches documents sharing at least a quarter of the
// weighted terms, boosted by weight, excluding the document itself.
func DocumentsLike(terms []TermWeight, excludeID int64) query.Node {
	should := make([]query.Node, 0, len(terms))
	for _, t := range terms {
		should = append(should, query.Match{Field: t.Field, Query: t.Term, Boost: t.Weight})
	}
	return query.AllOf(
		query.Bool{Should: should, MinimumShouldMatch: MinimumShouldMatch},
		query.Bool{MustNot: []query.Node{query.Term{Field: IDField, Value: excludeID}}},
	)
}

// TitlesLike matches titles containing every word of title, fuzzily.
// A negative ignoreID excludes nothing.
func TitlesLike(title string, ignoreID int64) query.Node {
	match := query.Match{Field: TitleField, Query: title, Operator: "and", Fuzziness: "AUTO"}
	if ignoreID < 0 {
		return match
	}
	return query.Bool{
		Must:    []query.Node{match},
		MustNot: []query.Node{query.Term{Field: IDField, Value: ignoreID}},
	}
}

// ByID looks a document up by its external id.
func ByID(id int64) query.Node {
	return query.Term{Field: IDField, Value: id}
}
