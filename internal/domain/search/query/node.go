package query

// Node is one element of the boolean query tree.
type Node interface {
	isNode()
}

// MatchAll matches every document with a constant score.
type MatchAll struct{}

// Bool combines child clauses. An empty MinimumShouldMatch leaves the index default.
type Bool struct {
	Must               []Node
	Should             []Node
	MustNot            []Node
	MinimumShouldMatch string
}

// Term matches an exact value.
type Term struct {
	Field string
	Value any
}

// Range bounds an integer field. A nil bound is open.
type Range struct {
	Field string
	GTE   *int64
	LTE   *int64
}

// Exists matches documents where the field has a value.
type Exists struct {
	Field string
}

// BoostedField is a field name with a relative score weight.
type BoostedField struct {
	Name  string
	Boost float64
}

// MultiMatch runs one fuzzy match across several fields.
type MultiMatch struct {
	Query        string
	Fields       []BoostedField
	Type         string
	Fuzziness    string
	PrefixLength int
}

// Match is a full-text match on a single field.
type Match struct {
	Field     string
	Query     string
	Operator  string
	Fuzziness string
	Boost     float64
}

// MatchPhrasePrefix matches a phrase whose last word is a prefix.
type MatchPhrasePrefix struct {
	Field string
	Query string
}

// RandomScore replaces the scores of Query with a deterministic random
// value derived from Seed and the document's Field.
type RandomScore struct {
	Query Node
	Seed  string
	Field string
}

func (MatchAll) isNode()          {}
func (Bool) isNode()              {}
func (Term) isNode()              {}
func (Range) isNode()             {}
func (Exists) isNode()            {}
func (MultiMatch) isNode()        {}
func (Match) isNode()             {}
func (MatchPhrasePrefix) isNode() {}
func (RandomScore) isNode()       {}

// AnyOf matches when at least one clause matches.
func AnyOf(clauses ...Node) Bool {
	return Bool{Should: clauses, MinimumShouldMatch: "1"}
}

// AllOf matches when every clause matches.
func AllOf(clauses ...Node) Bool {
	return Bool{Must: clauses}
}

// Absent matches documents without a value for the field.
func Absent(fieldName string) Bool {
	return Bool{MustNot: []Node{Exists{Field: fieldName}}}
}
