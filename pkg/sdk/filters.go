package advsearch

import "github.com/kailas-cloud/advsearch/internal/domain/search/filter"

// IntRange encodes an inclusive integer filter. Nil bounds are open.
func IntRange(minValue, maxValue *int64, includeUnknown bool) string {
	return filter.Encode(filter.NewIntRange(minValue, maxValue, includeUnknown))
}

// OneOf encodes a filter matching any of values.
func OneOf(values []string, includeUnknown bool) string {
	return filter.Encode(filter.NewStringSet(values, includeUnknown))
}

// YesNo encodes a boolean filter. A nil value matches either.
func YesNo(value *bool, includeUnknown bool) string {
	return filter.Encode(filter.NewBoolChoice(value, includeUnknown))
}
