package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/kailas-cloud/advsearch/internal/db"
	"github.com/kailas-cloud/advsearch/internal/domain/search/aggregation"
	"github.com/kailas-cloud/advsearch/internal/domain/similarity"
	"github.com/kailas-cloud/advsearch/internal/metrics"
)

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID        string              `json:"_id"`
			Score     *float64            `json:"_score"`
			Source    json.RawMessage     `json:"_source"`
			Highlight map[string][]string `json:"highlight"`
		} `json:"hits"`
	} `json:"hits"`
	Aggregations map[string]aggResult `json:"aggregations"`
}

type aggResult struct {
	Value    *float64 `json:"value"`
	DocCount int64    `json:"doc_count"`
	Buckets  []struct {
		Key      json.RawMessage `json:"key"`
		DocCount int64           `json:"doc_count"`
	} `json:"buckets"`
}

// Search runs one _search request against the index.
func (s *Store) Search(ctx context.Context, req *db.SearchRequest) (resp *db.SearchResponse, err error) {
	start := time.Now()
	defer func() { metrics.ObserveIndexRequest(db.OpSearch, start, err) }()

	body, err := renderBody(req)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("encode body: %w", err)}
	}

	opts := []func(*esapi.SearchRequest){
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(s.index),
		s.es.Search.WithBody(bytes.NewReader(payload)),
	}
	if req.RequestCache {
		opts = append(opts, s.es.Search.WithRequestCache(true))
	}

	res, err := s.es.Search(opts...)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	defer closeBody(res)
	if res.IsError() {
		return nil, responseError(db.OpSearch, res)
	}

	var raw searchResponse
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("%w: %w", db.ErrBadResponse, err)}
	}

	resp = &db.SearchResponse{
		Total:        raw.Hits.Total.Value,
		Hits:         make([]db.Hit, 0, len(raw.Hits.Hits)),
		Aggregations: make(aggregation.Results, len(raw.Aggregations)),
	}
	for _, h := range raw.Hits.Hits {
		hit := db.Hit{ID: h.ID, Source: h.Source, Highlight: h.Highlight}
		if h.Score != nil {
			hit.Score = *h.Score
		}
		resp.Hits = append(resp.Hits, hit)
	}
	for name, a := range raw.Aggregations {
		r := aggregation.Result{Value: a.Value, DocCount: a.DocCount}
		for _, b := range a.Buckets {
			r.Buckets = append(r.Buckets, aggregation.Bucket{Key: bucketKey(b.Key), DocCount: b.DocCount})
		}
		resp.Aggregations[name] = r
	}
	metrics.IndexHitsReturned.WithLabelValues(db.OpSearch).Observe(float64(len(resp.Hits)))
	return resp, nil
}

// bucketKey renders a bucket key as text. Numeric keys (booleans and
// integers are keyed by number) keep their JSON spelling.
func bucketKey(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

type termVectorsResponse struct {
	Found       bool `json:"found"`
	TermVectors map[string]struct {
		FieldStatistics struct {
			DocCount int64 `json:"doc_count"`
		} `json:"field_statistics"`
		Terms map[string]struct {
			TermFreq int64 `json:"term_freq"`
			DocFreq  int64 `json:"doc_freq"`
		} `json:"terms"`
	} `json:"term_vectors"`
}

// TermVectors fetches the term statistics of one document, in requested field order.
// Fields without terms in the document are omitted.
func (s *Store) TermVectors(ctx context.Context, req *db.TermVectorsRequest) (stats []similarity.FieldStats, err error) {
	start := time.Now()
	defer func() { metrics.ObserveIndexRequest(db.OpTermVectors, start, err) }()

	tv := s.es.Termvectors
	res, err := tv(s.index,
		tv.WithContext(ctx),
		tv.WithDocumentID(req.ID),
		tv.WithFields(req.Fields...),
		tv.WithPositions(false),
		tv.WithOffsets(false),
		tv.WithPayloads(false),
		tv.WithTermStatistics(true),
		tv.WithRealtime(false),
	)
	if err != nil {
		return nil, &db.Error{Op: db.OpTermVectors, Err: err}
	}
	defer closeBody(res)
	if res.StatusCode == 404 {
		return nil, &db.Error{Op: db.OpTermVectors, Err: db.ErrDocumentNotFound}
	}
	if res.IsError() {
		return nil, responseError(db.OpTermVectors, res)
	}

	var raw termVectorsResponse
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, &db.Error{Op: db.OpTermVectors, Err: fmt.Errorf("%w: %w", db.ErrBadResponse, err)}
	}
	if !raw.Found {
		return nil, &db.Error{Op: db.OpTermVectors, Err: db.ErrDocumentNotFound}
	}

	for _, name := range req.Fields {
		fv, ok := raw.TermVectors[name]
		if !ok {
			continue
		}
		fs := similarity.FieldStats{Field: name, DocCount: fv.FieldStatistics.DocCount}
		for term, ts := range fv.Terms {
			fs.Terms = append(fs.Terms, similarity.TermStat{Term: term, TermFreq: ts.TermFreq, DocFreq: ts.DocFreq})
		}
		stats = append(stats, fs)
	}
	return stats, nil
}
