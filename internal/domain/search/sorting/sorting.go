package sorting

import "math"

// Key is the user-facing sort choice.
type Key string

// Sort keys.
const (
	Title         Key = "title"
	NumPagesAsc   Key = "numPages-asc"
	NumPagesDesc  Key = "numPages-desc"
	CreatedAtAsc  Key = "createdAt-asc"
	CreatedAtDesc Key = "createdAt-desc"
	Reviews       Key = "reviews"
	// Random is ordered by the query's random score, see query.RandomScore.
	Random Key = "random"
)

// Index fields used by the sort specifications.
const (
	TitleExactField     = "title.keyword"
	NumPagesField       = "numPages"
	CreatedAtField      = "createdAt"
	PositiveReviewField = "positiveReviews"
	NegativeReviewField = "negativeReviews"
)

// Order is a sort direction.
type Order string

// Sort directions.
const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Criterion is one level of a multi-criterion sort: ByField, ByScore or ByScript.
type Criterion interface {
	isCriterion()
}

// ByField sorts on an indexed field value.
type ByField struct {
	Field string
	Order Order
}

// ByScore sorts on relevance score, highest first.
type ByScore struct{}

// ByScript sorts on a numeric value computed per document at query time.
type ByScript struct {
	Source string
	Params map[string]any
	Order  Order
}

func (ByField) isCriterion()  {}
func (ByScore) isCriterion()  {}
func (ByScript) isCriterion() {}

// Spec is an ordered list of sort criteria.
type Spec []Criterion

// wilsonScript computes the lower bound of the Wilson score interval at 95% confidence.
// It must stay equivalent to WilsonScore.
const wilsonScript = `double p = doc[params.positive].value;
double n = doc[params.negative].value;
return p + n > 0 ? ((p + 1.9208) / (p + n) - 1.96 * Math.sqrt((p * n) / (p + n) + 0.9604) / (p + n)) / (1 + 3.8416 / (p + n)) : 0;`

// Resolve maps a sort key to its specification. Unknown, empty and random keys sort by score.
func Resolve(k Key) Spec {
	switch k {
	case Title:
		return Spec{ByField{Field: TitleExactField, Order: Asc}}
	case NumPagesAsc:
		return Spec{ByField{Field: NumPagesField, Order: Asc}, ByScore{}}
	case NumPagesDesc:
		return Spec{ByField{Field: NumPagesField, Order: Desc}, ByScore{}}
	case CreatedAtAsc:
		return Spec{ByField{Field: CreatedAtField, Order: Asc}}
	case CreatedAtDesc:
		return Spec{ByField{Field: CreatedAtField, Order: Desc}}
	case Reviews:
		return Spec{ReviewScript(), ByScore{}}
	default:
		return Spec{ByScore{}}
	}
}

// ReviewScript returns the descending Wilson-score sort criterion.
func ReviewScript() ByScript {
	return ByScript{
		Source: wilsonScript,
		Params: map[string]any{
			"positive": PositiveReviewField,
			"negative": NegativeReviewField,
		},
		Order: Desc,
	}
}

// WilsonScore returns the Wilson lower bound for p positive and n negative reviews.
// It is 0 without reviews and stays below 1.
func WilsonScore(p, n int64) float64 {
	total := float64(p + n)
	if total <= 0 {
		return 0
	}
	pf, nf := float64(p), float64(n)
	return ((pf+1.9208)/total - 1.96*math.Sqrt((pf*nf)/total+0.9604)/total) / (1 + 3.8416/total)
}
