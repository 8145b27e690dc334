package elastic

import (
	"fmt"
	"strconv"

	"github.com/kailas-cloud/advsearch/internal/db"
	"github.com/kailas-cloud/advsearch/internal/domain/search/aggregation"
	"github.com/kailas-cloud/advsearch/internal/domain/search/query"
	"github.com/kailas-cloud/advsearch/internal/domain/search/sorting"
)

type object = map[string]any

// renderQuery converts a query tree into Elasticsearch query DSL.
func renderQuery(n query.Node) (object, error) {
	switch q := n.(type) {
	case query.MatchAll:
		return object{"match_all": object{}}, nil
	case query.Bool:
		return renderBool(q)
	case query.Term:
		return object{"term": object{q.Field: q.Value}}, nil
	case query.Range:
		bounds := object{}
		if q.GTE != nil {
			bounds["gte"] = *q.GTE
		}
		if q.LTE != nil {
			bounds["lte"] = *q.LTE
		}
		return object{"range": object{q.Field: bounds}}, nil
	case query.Exists:
		return object{"exists": object{"field": q.Field}}, nil
	case query.MultiMatch:
		fields := make([]string, 0, len(q.Fields))
		for _, f := range q.Fields {
			fields = append(fields, f.Name+"^"+strconv.FormatFloat(f.Boost, 'f', -1, 64))
		}
		mm := object{"query": q.Query, "fields": fields}
		setIf(mm, "type", q.Type)
		setIf(mm, "fuzziness", q.Fuzziness)
		if q.PrefixLength > 0 {
			mm["prefix_length"] = q.PrefixLength
		}
		return object{"multi_match": mm}, nil
	case query.Match:
		m := object{"query": q.Query}
		setIf(m, "operator", q.Operator)
		setIf(m, "fuzziness", q.Fuzziness)
		if q.Boost != 0 {
			m["boost"] = q.Boost
		}
		return object{"match": object{q.Field: m}}, nil
	case query.MatchPhrasePrefix:
		return object{"match_phrase_prefix": object{q.Field: q.Query}}, nil
	case query.RandomScore:
		inner, err := renderQuery(q.Query)
		if err != nil {
			return nil, err
		}
		return object{"function_score": object{
			"query":        inner,
			"random_score": object{"seed": q.Seed, "field": q.Field},
		}}, nil
	case nil:
		return object{"match_all": object{}}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported query node %T", db.ErrBadRequest, n)
	}
}

func renderBool(b query.Bool) (object, error) {
	body := object{}
	for _, part := range []struct {
		key   string
		nodes []query.Node
	}{
		{"must", b.Must},
		{"should", b.Should},
		{"must_not", b.MustNot},
	} {
		if len(part.nodes) == 0 {
			continue
		}
		rendered := make([]object, 0, len(part.nodes))
		for _, n := range part.nodes {
			r, err := renderQuery(n)
			if err != nil {
				return nil, err
			}
			rendered = append(rendered, r)
		}
		body[part.key] = rendered
	}
	setIf(body, "minimum_should_match", b.MinimumShouldMatch)
	return object{"bool": body}, nil
}

// renderSort converts a sort specification into the sort array.
func renderSort(spec sorting.Spec) ([]any, error) {
	out := make([]any, 0, len(spec))
	for _, c := range spec {
		switch s := c.(type) {
		case sorting.ByField:
			out = append(out, object{s.Field: string(s.Order)})
		case sorting.ByScore:
			out = append(out, "_score")
		case sorting.ByScript:
			out = append(out, object{"_script": object{
				"type":   "number",
				"order":  string(s.Order),
				"script": object{"source": s.Source, "params": s.Params},
			}})
		default:
			return nil, fmt.Errorf("%w: unsupported sort criterion %T", db.ErrBadRequest, c)
		}
	}
	return out, nil
}

// renderAggs converts an aggregation plan into the aggs object.
func renderAggs(plan aggregation.Plan) (object, error) {
	out := make(object, len(plan))
	for _, a := range plan {
		switch a.Kind {
		case aggregation.Missing, aggregation.Min, aggregation.Max:
			out[a.Name] = object{string(a.Kind): object{"field": a.Field}}
		case aggregation.Terms:
			terms := object{"field": a.Field}
			if a.Size > 0 {
				terms["size"] = a.Size
			}
			out[a.Name] = object{"terms": terms}
		default:
			return nil, fmt.Errorf("%w: unsupported aggregation kind %q", db.ErrBadRequest, a.Kind)
		}
	}
	return out, nil
}

// renderBody assembles the full _search request body.
func renderBody(req *db.SearchRequest) (object, error) {
	q, err := renderQuery(req.Query)
	if err != nil {
		return nil, err
	}
	body := object{"query": q, "size": req.Size}
	if req.From > 0 {
		body["from"] = req.From
	}
	if len(req.Sort) > 0 {
		sort, err := renderSort(req.Sort)
		if err != nil {
			return nil, err
		}
		body["sort"] = sort
	}
	if len(req.Aggs) > 0 {
		aggs, err := renderAggs(req.Aggs)
		if err != nil {
			return nil, err
		}
		body["aggs"] = aggs
	}
	switch {
	case req.NoSource:
		body["_source"] = false
	case req.Source != nil:
		body["_source"] = req.Source
	}
	if req.Highlight != "" {
		body["highlight"] = object{
			"pre_tags":  []string{""},
			"post_tags": []string{""},
			"fields":    object{req.Highlight: object{}},
		}
	}
	return body, nil
}

func setIf(m object, key, value string) {
	if value != "" {
		m[key] = value
	}
}
