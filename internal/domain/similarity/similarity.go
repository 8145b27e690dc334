package similarity

import (
	"math"
	"sort"
	"unicode/utf8"
)

// Ranking limits.
const (
	MinTermLength = 3
	MaxTerms      = 20
)

// TermStat holds the statistics of one term in one document field.
type TermStat struct {
	Term     string
	TermFreq int64
	DocFreq  int64
}

// FieldStats holds the term statistics of one field of a document.
type FieldStats struct {
	Field    string
	DocCount int64
	Terms    []TermStat
}

// TermWeight is a term picked to describe a document.
type TermWeight struct {
	Field  string  `json:"field"`
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// Weight is sqrt(tf) * (ln((docCount+1)/(df+1)) + 1).
func Weight(termFreq, docFreq, docCount int64) float64 {
	tf := math.Sqrt(float64(termFreq))
	idf := math.Log(float64(docCount+1)/float64(docFreq+1)) + 1
	return tf * idf
}

// Rank weights every term of at least MinTermLength characters and
// returns the MaxTerms heaviest, heaviest first. Equal weights keep field
// order, then lexical term order.
func Rank(stats []FieldStats) []TermWeight {
	var out []TermWeight
	for _, fs := range stats {
		terms := make([]TermStat, len(fs.Terms))
		copy(terms, fs.Terms)
		sort.Slice(terms, func(i, j int) bool { return terms[i].Term < terms[j].Term })

		for _, ts := range terms {
			if utf8.RuneCountInString(ts.Term) < MinTermLength {
				continue
			}
			out = append(out, TermWeight{
				Field:  fs.Field,
				Term:   ts.Term,
				Weight: Weight(ts.TermFreq, ts.DocFreq, fs.DocCount),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Weight > out[j].Weight })
	if len(out) > MaxTerms {
		out = out[:MaxTerms]
	}
	return out
}
