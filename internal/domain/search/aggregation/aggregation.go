package aggregation

import (
	"fmt"

	"github.com/kailas-cloud/advsearch/internal/domain"
	"github.com/kailas-cloud/advsearch/internal/domain/field"
)

// Bucket size caps for terms aggregations.
const (
	BooleanTermsSize = 2
	StringTermsSize  = 1000
)

// Kind is the statistic an aggregation computes.
type Kind string

// Aggregation kinds.
const (
	Missing Kind = "missing"
	Min     Kind = "min"
	Max     Kind = "max"
	Terms   Kind = "terms"
)

// Request asks the index for one named statistic over a field.
type Request struct {
	Name  string
	Kind  Kind
	Field string
	// Size caps the number of buckets (terms only).
	Size int
}

// Plan is the ordered set of aggregations attached to a search.
type Plan []Request

// Names of the per-field aggregations.
func missingName(f field.Descriptor) string { return f.Name() + "_missing" }
func minName(f field.Descriptor) string     { return f.Name() + "_min" }
func maxName(f field.Descriptor) string     { return f.Name() + "_max" }
func termsName(f field.Descriptor) string   { return f.Name() + "_terms" }

// PlanFor builds the aggregations for the given filterable fields.
// Fields without an aggregation target are skipped.
func PlanFor(fields []field.Descriptor) (Plan, error) {
	plan := make(Plan, 0, len(fields)*3)
	for _, f := range fields {
		if !f.Aggregatable() {
			continue
		}
		target := f.AggregationTarget()
		plan = append(plan, Request{Name: missingName(f), Kind: Missing, Field: target})

		switch f.FieldType() {
		case field.Integer:
			plan = append(plan,
				Request{Name: maxName(f), Kind: Max, Field: target},
				Request{Name: minName(f), Kind: Min, Field: target},
			)
		case field.Boolean:
			plan = append(plan, Request{Name: termsName(f), Kind: Terms, Field: target, Size: BooleanTermsSize})
		case field.String:
			plan = append(plan, Request{Name: termsName(f), Kind: Terms, Field: target, Size: StringTermsSize})
		default:
			return nil, unsupported(f)
		}
	}
	return plan, nil
}

// MostCommon builds a single terms aggregation returning the most frequent values first.
func MostCommon(name, target string, size int) Plan {
	return Plan{{Name: name, Kind: Terms, Field: target, Size: size}}
}

func unsupported(f field.Descriptor) error {
	return fmt.Errorf("%w: field %s has unsupported type for aggregation: %s", domain.ErrLogic, f.Name(), f.FieldType())
}
