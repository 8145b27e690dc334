package advsearch

// FieldType is the value type of a catalog field.
type FieldType string

// Field type constants.
const (
	FieldInteger FieldType = "integer"
	FieldString  FieldType = "string"
	FieldBoolean FieldType = "boolean"
	FieldText    FieldType = "text"
	FieldURL     FieldType = "url"
)

// Field describes one searchable field of the index.
type Field struct {
	Name               string
	Type               FieldType
	Filterable         bool
	FreetextSearchable bool
	SearchBoost        float64
	// AggregationTarget is the index field used for statistics and
	// suggestions. Empty disables both.
	AggregationTarget string
}

// TextField is a freetext-searchable prose field.
func TextField(name string, boost float64) Field {
	return Field{Name: name, Type: FieldText, FreetextSearchable: true, SearchBoost: boost}
}

// IntegerField is a filterable integer field.
func IntegerField(name, aggregationTarget string) Field {
	return Field{Name: name, Type: FieldInteger, Filterable: true, AggregationTarget: aggregationTarget}
}

// StringField is a filterable, freetext-searchable keyword field.
func StringField(name, aggregationTarget string) Field {
	return Field{
		Name:               name,
		Type:               FieldString,
		Filterable:         true,
		FreetextSearchable: true,
		AggregationTarget:  aggregationTarget,
	}
}

// BooleanField is a filterable yes/no field.
func BooleanField(name, aggregationTarget string) Field {
	return Field{Name: name, Type: FieldBoolean, Filterable: true, AggregationTarget: aggregationTarget}
}

// SearchParams are the inputs of Client.Search.
type SearchParams struct {
	Query string
	// Filters maps field names to wire-encoded filter values, see IntRange,
	// OneOf and YesNo. Names that are not filterable catalog fields are ignored.
	Filters map[string]string
	// SortBy is one of "title", "numPages-asc", "numPages-desc",
	// "createdAt-asc", "createdAt-desc", "reviews" or "random".
	// Empty sorts by relevance, or randomly without a query.
	SortBy string
	// Page is 1-based. Zero means the first page.
	Page int
	// Seed pins random ordering. Empty uses the client's seed source.
	Seed string
}

// Hit is one matching document.
type Hit struct {
	ID     string
	Score  float64
	Source map[string]any
}

// Bucket is one value of a string field with its document count.
type Bucket struct {
	Value string
	Count int64
}

// FieldStat summarizes one filterable field over the matching documents.
// Integer fields fill Min and Max, boolean fields the Count* fields and
// string fields Buckets. CountUnknown is always set.
type FieldStat struct {
	Type         FieldType
	Min          int64
	Max          int64
	CountUnknown int64
	CountAll     int64
	CountNo      int64
	CountYes     int64
	Buckets      []Bucket
}

// SearchResult is one page of hits.
type SearchResult struct {
	Hits    []Hit
	Total   int64
	HasMore bool
	Stats   map[string]FieldStat
}

// TitleMatch is a document whose title resembles the one looked up.
type TitleMatch struct {
	ID    int64
	Title string
	Slug  string
}

// Term is a distinctive term of a document with its tf-idf weight.
type Term struct {
	Field  string
	Term   string
	Weight float64
}

// SimilarResult holds documents similar to a given one and the terms that matched.
type SimilarResult struct {
	Hits  []Hit
	Terms []Term
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}
