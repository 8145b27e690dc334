package field

import (
	"fmt"

	"github.com/kailas-cloud/advsearch/internal/domain"
)

// Type is the value type of a searchable field.
type Type string

// Field type constants.
const (
	Integer Type = "integer"
	String  Type = "string"
	Boolean Type = "boolean"
	// Text is analyzed prose; never filterable or aggregatable.
	Text Type = "text"
	URL  Type = "url"
)

// IsValid checks if the type is one of the supported values.
func (t Type) IsValid() bool {
	switch t {
	case Integer, String, Boolean, Text, URL:
		return true
	}
	return false
}

// CanFilter reports whether fields of this type can carry a filter.
func (t Type) CanFilter() bool {
	return t == Integer || t == String || t == Boolean
}

// Descriptor is an immutable value object describing one searchable field.
type Descriptor struct {
	name              string
	fieldType         Type
	filterable        bool
	freetext          bool
	searchBoost       float64
	aggregationTarget string
}

// Options holds the optional descriptor attributes.
type Options struct {
	Filterable         bool
	FreetextSearchable bool
	SearchBoost        float64
	AggregationTarget  string
}

// New validates and creates a Descriptor.
// Filterable fields must be integer, string or boolean.
// Freetext fields get a boost of 1 unless a positive boost is given.
func New(name string, ft Type, opts Options) (Descriptor, error) {
	if name == "" {
		return Descriptor{}, fmt.Errorf("field name is required")
	}
	if !ft.IsValid() {
		return Descriptor{}, fmt.Errorf("invalid field type %q for %q", ft, name)
	}
	if opts.Filterable && !ft.CanFilter() {
		return Descriptor{}, fmt.Errorf("%w: field %q of type %s cannot be a filter", domain.ErrLogic, name, ft)
	}
	if opts.SearchBoost < 0 {
		return Descriptor{}, fmt.Errorf("search boost for %q must be positive", name)
	}
	if opts.AggregationTarget != "" && !ft.CanFilter() {
		return Descriptor{}, fmt.Errorf("%w: field %q of type %s cannot be aggregated", domain.ErrLogic, name, ft)
	}

	boost := opts.SearchBoost
	if opts.FreetextSearchable && boost == 0 {
		boost = 1
	}
	if !opts.FreetextSearchable {
		boost = 0
	}

	return Descriptor{
		name:              name,
		fieldType:         ft,
		filterable:        opts.Filterable,
		freetext:          opts.FreetextSearchable,
		searchBoost:       boost,
		aggregationTarget: opts.AggregationTarget,
	}, nil
}

// Reconstruct creates a Descriptor without validation (tests and trusted sources).
func Reconstruct(name string, ft Type, opts Options) Descriptor {
	return Descriptor{
		name:              name,
		fieldType:         ft,
		filterable:        opts.Filterable,
		freetext:          opts.FreetextSearchable,
		searchBoost:       opts.SearchBoost,
		aggregationTarget: opts.AggregationTarget,
	}
}

// Name returns the field name.
func (d Descriptor) Name() string { return d.name }

// FieldType returns the field's value type.
func (d Descriptor) FieldType() Type { return d.fieldType }

// Filterable reports whether the field is offered as a search filter.
func (d Descriptor) Filterable() bool { return d.filterable }

// FreetextSearchable reports whether free text is matched against this field.
func (d Descriptor) FreetextSearchable() bool { return d.freetext }

// SearchBoost returns the free-text weight of the field.
func (d Descriptor) SearchBoost() float64 { return d.searchBoost }

// AggregationTarget returns the index field used for aggregations.
// Empty means the field cannot be aggregated.
func (d Descriptor) AggregationTarget() string { return d.aggregationTarget }

// Aggregatable reports whether the field has an aggregation target.
func (d Descriptor) Aggregatable() bool { return d.aggregationTarget != "" }

// TermField returns the non-analyzed index field used for exact matches.
func (d Descriptor) TermField() string {
	if d.fieldType == String {
		return d.name + ".keyword"
	}
	return d.name
}
