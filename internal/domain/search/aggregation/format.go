package aggregation

import (
	"github.com/kailas-cloud/advsearch/internal/domain/field"
)

// Bucket is one value of a terms aggregation with its document count.
type Bucket struct {
	Key      string `json:"key"`
	DocCount int64  `json:"doc_count"`
}

// Result is the raw outcome of one aggregation.
// Value is set for min/max (nil when no document had the field),
// DocCount for missing, Buckets for terms.
type Result struct {
	Value    *float64
	DocCount int64
	Buckets  []Bucket
}

// Results maps aggregation names to their raw outcome.
type Results map[string]Result

// Stat is the formatted statistic of one filterable field:
// IntegerStat, BooleanStat or StringStat.
type Stat interface {
	isStat()
}

// IntegerStat holds the bounds of an integer field.
type IntegerStat struct {
	Min          int64 `json:"min"`
	Max          int64 `json:"max"`
	CountUnknown int64 `json:"countUnknown"`
}

// BooleanStat holds yes/no/unknown counts of a boolean field.
type BooleanStat struct {
	CountAll     int64 `json:"countAll"`
	CountUnknown int64 `json:"countUnknown"`
	CountNo      int64 `json:"countNo"`
	CountYes     int64 `json:"countYes"`
}

// StringStat holds the value histogram of a string field.
type StringStat struct {
	CountUnknown int64    `json:"countUnknown"`
	Buckets      []Bucket `json:"buckets"`
}

func (IntegerStat) isStat() {}
func (BooleanStat) isStat() {}
func (StringStat) isStat()  {}

// Format reshapes raw aggregation results into per-field statistics.
// It is the inverse of PlanFor over the same fields.
func Format(fields []field.Descriptor, results Results) (map[string]Stat, error) {
	stats := make(map[string]Stat, len(fields))
	for _, f := range fields {
		if !f.Aggregatable() {
			continue
		}
		countUnknown := results[missingName(f)].DocCount

		switch f.FieldType() {
		case field.Integer:
			stats[f.Name()] = IntegerStat{
				Min:          valueOrZero(results[minName(f)].Value),
				Max:          valueOrZero(results[maxName(f)].Value),
				CountUnknown: countUnknown,
			}
		case field.Boolean:
			s := BooleanStat{CountUnknown: countUnknown}
			for _, b := range results[termsName(f)].Buckets {
				switch b.Key {
				case "0":
					s.CountNo = b.DocCount
				case "1":
					s.CountYes = b.DocCount
				}
			}
			s.CountAll = s.CountUnknown + s.CountNo + s.CountYes
			stats[f.Name()] = s
		case field.String:
			buckets := results[termsName(f)].Buckets
			if buckets == nil {
				buckets = []Bucket{}
			}
			stats[f.Name()] = StringStat{CountUnknown: countUnknown, Buckets: buckets}
		default:
			return nil, unsupported(f)
		}
	}
	return stats, nil
}

func valueOrZero(v *float64) int64 {
	if v == nil {
		return 0
	}
	return int64(*v)
}
