package filter

// MaxIntValue is the largest accepted integer bound (2^30).
const MaxIntValue int64 = 1 << 30

// Value is a decoded filter for one field. The concrete type is one of
// IntRange, StringSet or BoolChoice.
type Value interface {
	// IsEmpty reports whether the filter constrains nothing.
	IsEmpty() bool
	isValue()
}

// IntRange is an inclusive integer bound filter.
type IntRange struct {
	min            *int64
	max            *int64
	includeUnknown bool
}

// NewIntRange creates an IntRange. Without any bound includeUnknown is forced false.
func NewIntRange(lo, hi *int64, includeUnknown bool) IntRange {
	if lo == nil && hi == nil {
		includeUnknown = false
	}
	return IntRange{min: lo, max: hi, includeUnknown: includeUnknown}
}

// Min returns the lower inclusive bound.
func (r IntRange) Min() *int64 { return r.min }

// Max returns the upper inclusive bound.
func (r IntRange) Max() *int64 { return r.max }

// IncludeUnknown reports whether documents without the field also match.
func (r IntRange) IncludeUnknown() bool { return r.includeUnknown }

// IsEmpty reports whether no bound is set.
func (r IntRange) IsEmpty() bool { return r.min == nil && r.max == nil }

func (IntRange) isValue() {}

// StringSet matches any of the listed values. Order and duplicates are preserved.
type StringSet struct {
	values         []string
	includeUnknown bool
}

// NewStringSet creates a StringSet, dropping empty values.
func NewStringSet(values []string, includeUnknown bool) StringSet {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			kept = append(kept, v)
		}
	}
	return StringSet{values: kept, includeUnknown: includeUnknown}
}

// Values returns the accepted values.
func (s StringSet) Values() []string { return s.values }

// IncludeUnknown reports whether documents without the field also match.
func (s StringSet) IncludeUnknown() bool { return s.includeUnknown }

// IsEmpty reports whether the set neither lists values nor accepts unknown.
func (s StringSet) IsEmpty() bool { return len(s.values) == 0 && !s.includeUnknown }

func (StringSet) isValue() {}

// BoolChoice matches one boolean value.
type BoolChoice struct {
	value          *bool
	includeUnknown bool
}

// NewBoolChoice creates a BoolChoice. Without a value includeUnknown is forced false.
func NewBoolChoice(value *bool, includeUnknown bool) BoolChoice {
	if value == nil {
		includeUnknown = false
	}
	return BoolChoice{value: value, includeUnknown: includeUnknown}
}

// Value returns the required value, nil if unset.
func (b BoolChoice) Value() *bool { return b.value }

// IncludeUnknown reports whether documents without the field also match.
func (b BoolChoice) IncludeUnknown() bool { return b.includeUnknown }

// IsEmpty reports whether no value is set.
func (b BoolChoice) IsEmpty() bool { return b.value == nil }

func (BoolChoice) isValue() {}

// Entry is one field filter inside a Set.
type Entry struct {
	Field string
	Value Value
}

// Set maps field names to filters, keeping insertion order.
type Set struct {
	entries []Entry
	index   map[string]int
}

// NewSet creates an empty Set.
func NewSet() Set {
	return Set{index: make(map[string]int)}
}

// With returns a copy of the set with the field's filter added or replaced.
func (s Set) With(fieldName string, v Value) Set {
	out := Set{
		entries: make([]Entry, len(s.entries), len(s.entries)+1),
		index:   make(map[string]int, len(s.index)+1),
	}
	copy(out.entries, s.entries)
	for k, i := range s.index {
		out.index[k] = i
	}
	if i, ok := out.index[fieldName]; ok {
		out.entries[i].Value = v
		return out
	}
	out.index[fieldName] = len(out.entries)
	out.entries = append(out.entries, Entry{Field: fieldName, Value: v})
	return out
}

// Get returns the filter for a field.
func (s Set) Get(fieldName string) (Value, bool) {
	i, ok := s.index[fieldName]
	if !ok {
		return nil, false
	}
	return s.entries[i].Value, true
}

// Entries returns the filters in insertion order.
func (s Set) Entries() []Entry { return s.entries }

// Len returns the number of fields with a filter.
func (s Set) Len() int { return len(s.entries) }
